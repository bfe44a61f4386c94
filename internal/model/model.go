// Package model defines domain entities used by services and repositories.
package model

import "time"

// Project is a tenant boundary owning its own chunks, key pair, and credentials.
// The key pair and credential strings are generated exactly once at creation and
// are immutable afterwards.
type Project struct {
	ID         string    `json:"id"`
	ReadKey    string    `json:"readKey,omitempty"`
	WriteKey   string    `json:"writeKey,omitempty"`
	PublicKey  string    `json:"publicKey"`            // SPKI, PEM-wrapped
	PrivateKey string    `json:"privateKey,omitempty"` // PKCS8, PEM-wrapped; never leaves the server after creation
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Sanitized returns a copy safe to expose on read endpoints: the private key
// and both credential keys are stripped. Only the one-time creation response
// carries the full record.
func (p Project) Sanitized() Project {
	p.PrivateKey = ""
	p.ReadKey = ""
	p.WriteKey = ""
	return p
}

// Chunk is an opaque, project-scoped, independently fetchable code payload.
// Identity is the composite key (ProjectID, ID); a chunk is never addressed by
// ID alone.
type Chunk struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SignedChunk is the read-path response envelope: the payload plus a compact
// JWS over its SHA-256 digest, freshly produced on every read.
type SignedChunk struct {
	Data  string `json:"data"`
	Token string `json:"token"`
}

// SessionToken is a short-lived, single-use credential row. Expiry lives inside
// the token string itself, not in a separate column.
type SessionToken struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}
