package service

import (
	"github.com/rechunk/rechunk/internal/model"
	"github.com/rechunk/rechunk/internal/sign"
)

// Issuer produces signed envelopes for chunk payloads on the read path.
type Issuer interface {
	// Issue signs a fresh digest of the chunk payload with the project's
	// private key. No signature is ever cached or reused, so a server-side key
	// rotation takes effect on the next read.
	Issue(chunk *model.Chunk, privateKeyPEM string) (*model.SignedChunk, error)
}

type IssuerImpl struct{}

// NewIssuer constructs the signing issuer.
func NewIssuer() *IssuerImpl { return &IssuerImpl{} }

// Issue computes digest + RS256 JWS for the payload. A signing error is fatal
// for the request; no partially-signed response is ever returned.
func (IssuerImpl) Issue(chunk *model.Chunk, privateKeyPEM string) (*model.SignedChunk, error) {
	env, err := sign.Sign(chunk.Data, privateKeyPEM)
	if err != nil {
		return nil, err
	}
	return &model.SignedChunk{Data: string(chunk.Data), Token: env}, nil
}
