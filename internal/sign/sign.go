// Package sign implements the chunk signing envelope shared by the server read
// path, the dev server, and the client verifier: a compact JWS whose payload is
// the hex-encoded SHA-256 digest of the chunk bytes, signed with RS256.
//
// Exactly one wire format exists; both signing paths produce it and a single
// client verifier accepts it.
package sign

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rechunk/rechunk/internal/errs"
)

// header is the fixed JOSE header of every chunk envelope.
type header struct {
	Alg string `json:"alg"`
}

const alg = "RS256"

// Digest returns the lowercase hex SHA-256 digest of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Sign computes the digest of data and wraps it in a compact JWS signed with
// the project's PEM-encoded PKCS8 private key. Any key or signing error wraps
// errs.ErrSigningFailure; a partially-signed envelope is never returned.
func Sign(data []byte, privatePEM string) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privatePEM))
	if err != nil {
		return "", fmt.Errorf("%w: parse private key: %v", errs.ErrSigningFailure, err)
	}

	hdr, err := json.Marshal(header{Alg: alg})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrSigningFailure, err)
	}
	signing := base64.RawURLEncoding.EncodeToString(hdr) + "." +
		base64.RawURLEncoding.EncodeToString([]byte(Digest(data)))

	sig, err := jwt.SigningMethodRS256.Sign(signing, key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrSigningFailure, err)
	}
	return signing + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify checks envelope against the project's PEM-encoded SPKI public key and
// against data itself: the RSA signature must be valid AND the signed payload
// must equal the recomputed digest of data. Any failure is errs.ErrIntegrity;
// callers must treat it as terminal for the chunk.
func Verify(data []byte, envelope, publicPEM string) error {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicPEM))
	if err != nil {
		return fmt.Errorf("%w: parse public key: %v", errs.ErrIntegrity, err)
	}

	parts := strings.Split(envelope, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return fmt.Errorf("%w: malformed envelope", errs.ErrIntegrity)
	}

	hdrRaw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return fmt.Errorf("%w: bad header encoding", errs.ErrIntegrity)
	}
	var hdr header
	if err := json.Unmarshal(hdrRaw, &hdr); err != nil || hdr.Alg != alg {
		return fmt.Errorf("%w: unexpected algorithm", errs.ErrIntegrity)
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return fmt.Errorf("%w: bad signature encoding", errs.ErrIntegrity)
	}
	if err := jwt.SigningMethodRS256.Verify(parts[0]+"."+parts[1], sig, key); err != nil {
		return fmt.Errorf("%w: signature mismatch", errs.ErrIntegrity)
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return fmt.Errorf("%w: bad payload encoding", errs.ErrIntegrity)
	}
	if subtle.ConstantTimeCompare(payload, []byte(Digest(data))) != 1 {
		return fmt.Errorf("%w: digest mismatch", errs.ErrIntegrity)
	}
	return nil
}
