package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rechunk/rechunk/internal/errs"
	"github.com/rechunk/rechunk/internal/model"
	"github.com/rechunk/rechunk/internal/repository"
)

type fakeTokens struct {
	rows map[string]string // token -> projectID

	createErr error
}

var _ repository.TokenRepository = (*fakeTokens)(nil)

func (f *fakeTokens) Create(_ context.Context, t *model.SessionToken) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.rows == nil {
		f.rows = map[string]string{}
	}
	f.rows[t.Token] = t.ProjectID
	return nil
}

func (f *fakeTokens) Consume(_ context.Context, projectID, tok string) error {
	if pid, ok := f.rows[tok]; ok && pid == projectID {
		delete(f.rows, tok)
		return nil
	}
	return errs.ErrNotFound
}

var tokenSecret = []byte("secret")

func TestTokenService_VerifyAndConsume_Once(t *testing.T) {
	repo := &fakeTokens{}
	svc := NewTokenService(repo, tokenSecret, time.Hour)
	ctx := context.Background()

	tok, err := svc.CreateProjectToken(ctx, "proj-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	payload, err := svc.VerifyAndConsume(ctx, "proj-1", tok)
	if err != nil {
		t.Fatalf("first consume: %v", err)
	}
	if payload.ID == "" {
		t.Fatal("empty payload id")
	}

	// Replay must fail: the row is gone.
	if _, err := svc.VerifyAndConsume(ctx, "proj-1", tok); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("replay: want ErrNotFound, got %v", err)
	}
}

func TestTokenService_VerifyAndConsume_WrongProject(t *testing.T) {
	repo := &fakeTokens{}
	svc := NewTokenService(repo, tokenSecret, time.Hour)
	ctx := context.Background()

	tok, err := svc.CreateProjectToken(ctx, "proj-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Another project cannot redeem the token even though the HMAC validates.
	if _, err := svc.VerifyAndConsume(ctx, "proj-2", tok); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	// The row is untouched; the rightful project still succeeds.
	if _, err := svc.VerifyAndConsume(ctx, "proj-1", tok); err != nil {
		t.Fatalf("rightful consume: %v", err)
	}
}

func TestTokenService_VerifyAndConsume_Expired(t *testing.T) {
	repo := &fakeTokens{}
	svc := NewTokenService(repo, tokenSecret, -time.Minute)
	ctx := context.Background()

	tok, err := svc.CreateProjectToken(ctx, "proj-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.VerifyAndConsume(ctx, "proj-1", tok); !errors.Is(err, errs.ErrExpired) {
		t.Fatalf("want ErrExpired, got %v", err)
	}
	// Expired tokens are rejected before the row is touched.
	if len(repo.rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(repo.rows))
	}
}

func TestTokenService_VerifyAndConsume_Garbage(t *testing.T) {
	svc := NewTokenService(&fakeTokens{}, tokenSecret, time.Hour)

	if _, err := svc.VerifyAndConsume(context.Background(), "proj-1", "nope"); !errors.Is(err, errs.ErrInvalidFormat) {
		t.Fatalf("want ErrInvalidFormat, got %v", err)
	}
}
