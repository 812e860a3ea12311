package usecase

import (
	"testing"

	"github.com/shandysiswandi/gotrust/internal/access/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/hash"
	"github.com/shandysiswandi/gotrust/internal/pkg/valueobject"
)

// Imported accounts ship their hash options in the exporting system's flat
// key shape, so the overlay must read flat keys, not this repo's nested
// Options struct.
func TestDecodePasswordOptionsFlatShape(t *testing.T) {
	base := hash.Options{BcryptCost: 10, Pepper: "pep"}

	opts := decodePasswordOptions(valueobject.JSONMap{
		"salt":         "some-salt",
		"length":       float64(64),
		"costCpu":      float64(16384),
		"costMemory":   float64(12),
		"costParallel": float64(2),
	}, base)

	if opts.Scrypt.Salt != "some-salt" || opts.Scrypt.Length != 64 {
		t.Fatalf("scrypt salt/length not overlaid: %+v", opts.Scrypt)
	}
	if opts.Scrypt.CostCPU != 16384 || opts.Scrypt.CostMemory != 12 || opts.Scrypt.CostParallel != 2 {
		t.Fatalf("scrypt costs not overlaid: %+v", opts.Scrypt)
	}
	if opts.BcryptCost != 10 || opts.Pepper != "pep" {
		t.Fatalf("base options must survive the overlay: %+v", opts)
	}

	opts = decodePasswordOptions(valueobject.JSONMap{
		"salt":          "56dFqW+kswqktw==",
		"saltSeparator": "Bw==",
		"signerKey":     "XyEKE9RcTDeLEsL/RjwPDBv/RqDl8fb3gpYEOQaPihbxf1ZAtSOHCjuAAa7Q3oHpCYhXSN9tizHgVOwn6krflQ==",
	}, base)

	if opts.ScryptModified.Salt != "56dFqW+kswqktw==" {
		t.Fatalf("scryptMod salt not overlaid: %+v", opts.ScryptModified)
	}
	if opts.ScryptModified.SaltSeparator != "Bw==" || opts.ScryptModified.SignerKey == "" {
		t.Fatalf("scryptMod parameters not overlaid: %+v", opts.ScryptModified)
	}
}

// A full imported-account check: a digest produced elsewhere with flat-shaped
// options must verify without any rehash.
func TestVerifyPasswordImportedScryptAccount(t *testing.T) {
	s := &Usecase{
		passwordAlgo: hash.AlgoBcrypt,
		passwordOpts: hash.Options{BcryptCost: 8},
	}

	user := &entity.User{
		ID:             "imported-1",
		PasswordAlgo:   hash.AlgoScrypt,
		PasswordDigest: "b448ad7ba88b653b5b56b8053a06806724932d0751988bc9cd0ef7ff059e8ba8a020e1913b7069a650d3f99a1559aba0221f2c277826919513a054e76e339028",
		PasswordOptions: valueobject.JSONMap{
			"salt":         "some-salt",
			"length":       float64(64),
			"costCpu":      float64(16384),
			"costMemory":   float64(12),
			"costParallel": float64(2),
		},
	}

	if !s.verifyPassword(user, "some-scrypt-password") {
		t.Fatal("expected imported scrypt account to verify")
	}
	if s.verifyPassword(user, "wrongPassword") {
		t.Fatal("expected wrong plaintext to fail")
	}
}
