package hash

import (
	"errors"
	"strings"
	"testing"
)

func mustNew(t *testing.T, algo Algo, opts Options) Hash {
	t.Helper()

	h, err := New(algo, opts)
	if err != nil {
		t.Fatalf("New(%q): %v", algo, err)
	}
	return h
}

func TestNewUnsupportedAlgo(t *testing.T) {
	_, err := New("md8", Options{})
	if !errors.Is(err, ErrUnsupportedAlgo) {
		t.Fatalf("expected ErrUnsupportedAlgo, got %v", err)
	}
	if !strings.Contains(err.Error(), "md8") {
		t.Fatal("expected error to carry the algorithm name")
	}

	if _, err := ParseAlgo("rot13"); !errors.Is(err, ErrUnsupportedAlgo) {
		t.Fatalf("expected ErrUnsupportedAlgo, got %v", err)
	}
	if a, err := ParseAlgo("scryptMod"); err != nil || a != AlgoScryptModified {
		t.Fatalf("ParseAlgo(scryptMod) = %q, %v", a, err)
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	scryptOpts := ScryptOptions{Salt: "some-salt", Length: 64, CostCPU: 16384, CostMemory: 12, CostParallel: 2}
	scryptModOpts := ScryptModifiedOptions{
		Salt:          "56dFqW+kswqktw==",
		SaltSeparator: "Bw==",
		SignerKey:     "XyEKE9RcTDeLEsL/RjwPDBv/RqDl8fb3gpYEOQaPihbxf1ZAtSOHCjuAAa7Q3oHpCYhXSN9tizHgVOwn6krflQ==",
	}

	tests := []struct {
		algo Algo
		opts Options
	}{
		{AlgoMD5, Options{}},
		{AlgoSHA, Options{}},
		{AlgoBcrypt, Options{BcryptCost: 8}},
		{AlgoPHPass, Options{}},
		{AlgoArgon2, Options{}},
		{AlgoScrypt, Options{Scrypt: scryptOpts}},
		{AlgoScryptModified, Options{ScryptModified: scryptModOpts}},
	}

	for _, tc := range tests {
		t.Run(string(tc.algo), func(t *testing.T) {
			h := mustNew(t, tc.algo, tc.opts)

			hashed, err := h.Hash("correct horse battery staple")
			if err != nil {
				t.Fatalf("Hash: %v", err)
			}
			if !h.Verify(string(hashed), "correct horse battery staple") {
				t.Fatal("expected generated hash to verify")
			}
			if h.Verify(string(hashed), "wrongPassword") {
				t.Fatal("expected wrong plaintext to fail")
			}
		})
	}
}

// Fixtures produced by other implementations; they pin wire compatibility for
// imported accounts.
func TestVerifyKnownHashes(t *testing.T) {
	tests := []struct {
		name  string
		algo  Algo
		opts  Options
		plain string
		hash  string
	}{
		{"bcrypt 2y", AlgoBcrypt, Options{}, "secret", "$2y$08$PDbMtV18J1KOBI9tIYabBuyUwBrtXPGhLxCy9pWP6xkldVOKLrLKy"},
		{"bcrypt 2a", AlgoBcrypt, Options{}, "test123", "$2a$12$3f2ZaARQ1AmhtQWx2nmQpuXcWfTj1YV2/Hl54e8uKxIzJe3IfwLiu"},
		{"bcrypt cost 5", AlgoBcrypt, Options{}, "hello-world", "$2a$05$IjrtSz6SN7UJ6Sh3l.b5jODEvEG2LMJTPAHIaLWRvlWx7if3VMkFO"},
		{"bcrypt cost 15", AlgoBcrypt, Options{}, "super-secret-password", "$2a$15$DS0ZzbsFZYumH/E4Qj5oeOHnBcM3nCCsCA2m4Goigat/0iMVQC4Na"},
		{"md5 short", AlgoMD5, Options{}, "appwrite", "144fa7eaa4904e8ee120651997f70dcc"},
		{"md5 long", AlgoMD5, Options{}, "AppwriteIsAwesomeBackendAsAServiceThatIsAlsoOpenSourced", "8410e96cf7ac64e0b84c3f8517a82616"},
		{"phpass", AlgoPHPass, Options{}, "pass123", "$P$BVKPmJBZuLch27D4oiMRTEykGLQ9tX0"},
		{"phpass blog export", AlgoPHPass, Options{}, "your-password", "$P$BkiNDJTpAWXtpaMhEUhUdrv7M0I1g6."},
		{"sha", AlgoSHA, Options{}, "developersAreAwesome!", "2455118438cb125354b89bb5888346e9bd23355462c40df393fab514bf2220b5a08e4e2d7b85d7327595a450d0ac965cc6661152a46a157c66d681bed20a4735"},
		{"argon2", AlgoArgon2, Options{}, "safe-argon-password", "$argon2id$v=19$m=2048,t=3,p=4$MWc5NWRmc2QxZzU2$41mp7rSgBZ49YxLbbxIac7aRaxfp5/e1G45ckwnK0g8"},
		{
			"scrypt", AlgoScrypt,
			Options{Scrypt: ScryptOptions{Salt: "some-salt", Length: 64, CostCPU: 16384, CostMemory: 12, CostParallel: 2}},
			"some-scrypt-password",
			"b448ad7ba88b653b5b56b8053a06806724932d0751988bc9cd0ef7ff059e8ba8a020e1913b7069a650d3f99a1559aba0221f2c277826919513a054e76e339028",
		},
		{
			"scryptMod firebase export", AlgoScryptModified,
			Options{ScryptModified: ScryptModifiedOptions{
				Salt:          "56dFqW+kswqktw==",
				SaltSeparator: "Bw==",
				SignerKey:     "XyEKE9RcTDeLEsL/RjwPDBv/RqDl8fb3gpYEOQaPihbxf1ZAtSOHCjuAAa7Q3oHpCYhXSN9tizHgVOwn6krflQ==",
			}},
			"users-password",
			"EPKgfALpS9Tvgr/y1ki7ubY4AEGJeWL3teakrnmOacN4XGiyD00lkzEHgqCQ71wGxoi/zb7Y9a4orOtvMV3/Jw==",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := mustNew(t, tc.algo, tc.opts)

			if !h.Verify(tc.hash, tc.plain) {
				t.Fatal("expected external fixture to verify")
			}
			if h.Verify(tc.hash, "wrongPassword") {
				t.Fatal("expected wrong plaintext to fail against fixture")
			}
		})
	}
}

// Changing any scrypt option between hash and verify must fail verification,
// because the options are not embedded in the digest.
func TestScryptOptionSensitivity(t *testing.T) {
	base := ScryptOptions{Salt: "some-salt", Length: 64, CostCPU: 16384, CostMemory: 12, CostParallel: 2}

	hashed, err := NewScrypt(base).Hash("some-scrypt-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	wrongSalt := base
	wrongSalt.Salt = "some-wrong-salt"
	if NewScrypt(wrongSalt).Verify(string(hashed), "some-scrypt-password") {
		t.Fatal("expected different salt to fail")
	}

	wrongMemory := base
	wrongMemory.CostMemory = 10
	if NewScrypt(wrongMemory).Verify(string(hashed), "some-scrypt-password") {
		t.Fatal("expected different memory cost to fail")
	}
}

// Stored hashes are attacker-reachable data: malformed values must fail
// verification, never panic.
func TestVerifyMalformedStoredHash(t *testing.T) {
	malformed := []string{"", "$", "not-a-hash", "$2y$zz$short", "$P$1short", "$argon2id$v=19$m=bogus$x$y"}

	for _, algo := range []Algo{AlgoBcrypt, AlgoPHPass, AlgoArgon2} {
		h := mustNew(t, algo, Options{})
		for _, stored := range malformed {
			if h.Verify(stored, "whatever") {
				t.Fatalf("%s: expected malformed hash %q to fail", algo, stored)
			}
		}
	}
}
