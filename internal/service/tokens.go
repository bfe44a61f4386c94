package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/rechunk/rechunk/internal/model"
	"github.com/rechunk/rechunk/internal/repository"
	"github.com/rechunk/rechunk/internal/token"
)

// DefaultTokenTTL is the lifetime of a freshly issued session token.
const DefaultTokenTTL = time.Hour

// TokenService issues and single-use-redeems session tokens used to bootstrap
// a dashboard session from a write-key-authenticated request.
type TokenService interface {
	// CreateProjectToken issues a token and persists its row.
	CreateProjectToken(ctx context.Context, projectID string) (string, error)
	// VerifyAndConsume validates the token then atomically deletes its row.
	// A second call with the same token fails with errs.ErrNotFound.
	VerifyAndConsume(ctx context.Context, projectID, tok string) (token.Payload, error)
}

type TokenServiceImpl struct {
	tokens repository.TokenRepository
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs TokenService with the process-wide HMAC secret.
func NewTokenService(tokens repository.TokenRepository, secret []byte, ttl time.Duration) *TokenServiceImpl {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenServiceImpl{tokens: tokens, secret: secret, ttl: ttl}
}

// CreateProjectToken generates a signed token and stores the (projectID, token)
// row that VerifyAndConsume later deletes.
func (s *TokenServiceImpl) CreateProjectToken(ctx context.Context, projectID string) (string, error) {
	if projectID == "" {
		return "", errors.New("validation: empty projectID")
	}
	tok, err := token.Generate(s.secret, s.ttl)
	if err != nil {
		return "", err
	}
	rowID, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	row := &model.SessionToken{ID: rowID.String(), ProjectID: projectID, Token: tok}
	if err := s.tokens.Create(ctx, row); err != nil {
		return "", err
	}
	return tok, nil
}

// VerifyAndConsume checks signature and expiry first, then consumes the stored
// row. The repository delete is atomic with respect to concurrent attempts, so
// at most one caller ever sees success for a given token.
func (s *TokenServiceImpl) VerifyAndConsume(ctx context.Context, projectID, tok string) (token.Payload, error) {
	payload, err := token.Verify(tok, s.secret)
	if err != nil {
		return token.Payload{}, err
	}
	if err := s.tokens.Consume(ctx, projectID, tok); err != nil {
		return token.Payload{}, err
	}
	return payload, nil
}
