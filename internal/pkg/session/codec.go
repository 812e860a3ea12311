package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ErrMalformedToken is returned by Decode for input that is not a validly
// packed token. Callers surface it as a generic invalid session.
var ErrMalformedToken = errors.New("session: malformed token")

type payload struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

// Encode packs id and secret into a single transport token.
func Encode(id, secret string) string {
	b, err := json.Marshal(payload{ID: id, Secret: secret})
	if err != nil {
		// Marshaling two strings cannot fail.
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}

// Decode unpacks a transport token produced by Encode.
func Decode(token string) (id, secret string, err error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", ErrMalformedToken
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", "", ErrMalformedToken
	}

	return p.ID, p.Secret, nil
}
