package secret

import (
	"strings"
	"testing"
)

func TestDigest(t *testing.T) {
	const want = "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b"

	if got := Digest("secret"); got != want {
		t.Fatalf("Digest(secret) = %q, want %q", got, want)
	}
	if got := Digest("secret"); got != want {
		t.Fatal("Digest must be deterministic")
	}
	if len(Digest("anything else")) != 64 {
		t.Fatal("Digest must always be 64 hex characters")
	}
}

func TestPasswordGenerator(t *testing.T) {
	p, err := PasswordGenerator(0)
	if err != nil {
		t.Fatalf("PasswordGenerator: %v", err)
	}
	if len(p) != DefaultPasswordLength {
		t.Fatalf("default password length = %d, want %d", len(p), DefaultPasswordLength)
	}

	p, err = PasswordGenerator(5)
	if err != nil {
		t.Fatalf("PasswordGenerator: %v", err)
	}
	if len(p) != 5 {
		t.Fatalf("password length = %d, want 5", len(p))
	}
}

func TestTokenGenerator(t *testing.T) {
	tok, err := TokenGenerator(0)
	if err != nil {
		t.Fatalf("TokenGenerator: %v", err)
	}
	if len(tok) != DefaultTokenLength {
		t.Fatalf("default token length = %d, want %d", len(tok), DefaultTokenLength)
	}

	tok, err = TokenGenerator(12)
	if err != nil {
		t.Fatalf("TokenGenerator: %v", err)
	}
	if len(tok) != 12 {
		t.Fatalf("token length = %d, want 12", len(tok))
	}
}

func TestCodeGenerator(t *testing.T) {
	code, err := CodeGenerator(0)
	if err != nil {
		t.Fatalf("CodeGenerator: %v", err)
	}
	if len(code) != DefaultCodeLength {
		t.Fatalf("default code length = %d, want %d", len(code), DefaultCodeLength)
	}

	for _, length := range []int{5, 10, 256} {
		code, err := CodeGenerator(length)
		if err != nil {
			t.Fatalf("CodeGenerator(%d): %v", length, err)
		}
		if len(code) != length {
			t.Fatalf("code length = %d, want %d", len(code), length)
		}
		for _, r := range code {
			if !strings.ContainsRune(digits, r) {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
	}
}
