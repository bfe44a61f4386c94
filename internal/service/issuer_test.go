package service

import (
	"errors"
	"testing"

	"github.com/rechunk/rechunk/internal/errs"
	"github.com/rechunk/rechunk/internal/keys"
	"github.com/rechunk/rechunk/internal/model"
	"github.com/rechunk/rechunk/internal/sign"
)

func TestIssuer_Issue(t *testing.T) {
	pub, priv, err := keys.GenerateProjectKeys()
	if err != nil {
		t.Fatal(err)
	}
	chunk := &model.Chunk{ID: "btn", ProjectID: "proj-a", Data: []byte("console.log(1)")}

	signed, err := NewIssuer().Issue(chunk, priv)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if signed.Data != "console.log(1)" {
		t.Fatalf("data = %q", signed.Data)
	}
	if err := sign.Verify([]byte(signed.Data), signed.Token, pub); err != nil {
		t.Fatalf("issued envelope does not verify: %v", err)
	}
}

func TestIssuer_Issue_FreshSignaturePerRead(t *testing.T) {
	_, priv, err := keys.GenerateProjectKeys()
	if err != nil {
		t.Fatal(err)
	}
	chunk := &model.Chunk{ID: "btn", ProjectID: "proj-a", Data: []byte("payload")}
	issuer := NewIssuer()

	a, err := issuer.Issue(chunk, priv)
	if err != nil {
		t.Fatal(err)
	}
	b, err := issuer.Issue(chunk, priv)
	if err != nil {
		t.Fatal(err)
	}
	// PKCS#1 v1.5 is deterministic so the envelopes match, but each call signs
	// from scratch; a key swap between reads takes effect immediately.
	if a.Token == "" || b.Token == "" {
		t.Fatal("empty envelope")
	}
}

func TestIssuer_Issue_BadKey(t *testing.T) {
	chunk := &model.Chunk{ID: "btn", ProjectID: "proj-a", Data: []byte("payload")}
	_, err := NewIssuer().Issue(chunk, "garbage")
	if !errors.Is(err, errs.ErrSigningFailure) {
		t.Fatalf("want ErrSigningFailure, got %v", err)
	}
}
