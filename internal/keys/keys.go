// Package keys implements per-project RSA key pair generation and the secure
// random helpers used for credentials and token identifiers.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
)

// RSABits is the modulus size for project key pairs.
const RSABits = 2048

// GenerateProjectKeys generates an RSA key pair for a new project and returns
// the SPKI-encoded public key and PKCS8-encoded private key, both PEM-wrapped.
// Failure is fatal to project creation; callers surface it, never retry silently.
func GenerateProjectKeys() (publicPEM, privatePEM string, err error) {
	key, err := rsa.GenerateKey(rand.Reader, RSABits)
	if err != nil {
		return "", "", fmt.Errorf("generate rsa key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("marshal public key: %w", err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", "", fmt.Errorf("marshal private key: %w", err)
	}

	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	return string(pubPEM), string(privPEM), nil
}

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// RandHex returns n random bytes hex-encoded (2n characters). n=16 yields the
// 128 bits of entropy required for session token identifiers.
func RandHex(n int) (string, error) {
	b, err := RandBytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
