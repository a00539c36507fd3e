// Package token serializes the authoritative round answer into a
// tamper-evident opaque string. The payload is readable by anyone who
// base64-decodes it; the HMAC signature only guarantees that no byte
// was altered. Keeping the answer in the token is what lets the server
// stay stateless.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/CodeAndHammer/kantoludo/internal/models"
)

// ErrInvalidToken covers every decode failure: bad structure, bad
// encoding, and signature mismatch.
var ErrInvalidToken = errors.New("invalid or tampered game token")

// Codec signs and verifies round tokens with a single process-wide
// secret. Tokens carry no expiry; they are a tamper-evidence mechanism,
// not a capability grant.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Encode produces base64url(payload) + "." + base64url(signature).
func (c *Codec) Encode(answer models.RoundAnswer) (string, error) {
	payload, err := json.Marshal(answer)
	if err != nil {
		return "", fmt.Errorf("marshal round answer: %w", err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + c.sign(encoded), nil
}

// Decode verifies the signature and unpacks the answer. Any alteration
// of the token, including single-character flips, yields ErrInvalidToken.
func (c *Codec) Decode(token string) (models.RoundAnswer, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok || encoded == "" || sig == "" {
		return models.RoundAnswer{}, ErrInvalidToken
	}
	if !hmac.Equal([]byte(c.sign(encoded)), []byte(sig)) {
		return models.RoundAnswer{}, ErrInvalidToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return models.RoundAnswer{}, ErrInvalidToken
	}
	var answer models.RoundAnswer
	if err := json.Unmarshal(payload, &answer); err != nil {
		return models.RoundAnswer{}, ErrInvalidToken
	}
	return answer, nil
}

func (c *Codec) sign(encoded string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
