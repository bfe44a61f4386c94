// Package token implements the stateless session-token codec: a two-part
// HMAC-SHA256 token carrying its own expiry. Persistence and the single-use
// guarantee live in the service layer.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rechunk/rechunk/internal/errs"
	"github.com/rechunk/rechunk/internal/keys"
)

// Payload is the claims carried inside a session token.
type Payload struct {
	ID  string `json:"id"`
	Exp int64  `json:"exp"` // Unix seconds
}

// Generate produces a token of the form
//
//	base64url(JSON{id,exp}) "." base64url(HMAC-SHA256(secret, base64url(JSON{id,exp})))
//
// with a random 128-bit hex identifier and exp = now + ttl.
func Generate(secret []byte, ttl time.Duration) (string, error) {
	id, err := keys.RandHex(16)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(Payload{ID: id, Exp: time.Now().Add(ttl).Unix()})
	if err != nil {
		return "", err
	}
	body := base64.RawURLEncoding.EncodeToString(raw)
	return body + "." + signature(secret, body), nil
}

// Verify checks the token's shape, HMAC, and expiry, and returns the decoded
// payload. Failures map onto the error taxonomy: malformed input is
// errs.ErrInvalidFormat, a signature mismatch is errs.ErrUnauthorized, and a
// stale exp is errs.ErrExpired.
func Verify(tok string, secret []byte) (Payload, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Payload{}, fmt.Errorf("%w: token must have two parts", errs.ErrInvalidFormat)
	}

	if !hmac.Equal([]byte(signature(secret, parts[0])), []byte(parts[1])) {
		return Payload{}, fmt.Errorf("%w: token signature mismatch", errs.ErrUnauthorized)
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Payload{}, fmt.Errorf("%w: bad payload encoding", errs.ErrInvalidFormat)
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: bad payload json", errs.ErrInvalidFormat)
	}

	if p.Exp < time.Now().Unix() {
		return Payload{}, errs.ErrExpired
	}
	return p, nil
}

// signature computes the base64url HMAC-SHA256 of body.
func signature(secret []byte, body string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
