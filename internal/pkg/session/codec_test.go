package session

import (
	"errors"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	// Fixture shared with other implementations of the same packing.
	const packed = "eyJpZCI6ImlkIiwic2VjcmV0Ijoic2VjcmV0In0="

	if got := Encode("id", "secret"); got != packed {
		t.Fatalf("Encode = %q, want %q", got, packed)
	}

	id, sec, err := Decode(packed)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if id != "id" || sec != "secret" {
		t.Fatalf("Decode = (%q, %q), want (id, secret)", id, sec)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct{ id, secret string }{
		{"5f2e...", "s3cr3t"},
		{"user-123", "aVeryLongRandomSecretString0123456789"},
		{"a", "b"},
	}

	for _, tc := range tests {
		id, sec, err := Decode(Encode(tc.id, tc.secret))
		if err != nil {
			t.Fatalf("Decode(Encode(%q, %q)): %v", tc.id, tc.secret, err)
		}
		if id != tc.id || sec != tc.secret {
			t.Fatalf("round trip = (%q, %q), want (%q, %q)", id, sec, tc.id, tc.secret)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, token := range []string{"%%%not-base64%%%", "bm90LWpzb24=", ""} {
		if _, _, err := Decode(token); token != "" && !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("Decode(%q) err = %v, want ErrMalformedToken", token, err)
		}
	}
}
