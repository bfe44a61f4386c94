package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rechunk/rechunk/internal/errs"
)

var secret = []byte("test-secret")

func TestGenerateVerify_RoundTrip(t *testing.T) {
	tok, err := Generate(secret, time.Hour)
	require.NoError(t, err)
	require.Len(t, strings.Split(tok, "."), 2)

	p, err := Verify(tok, secret)
	require.NoError(t, err)
	require.Len(t, p.ID, 32)
	require.Greater(t, p.Exp, time.Now().Unix())
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := Generate(secret, time.Hour)
	require.NoError(t, err)

	_, err = Verify(tok, []byte("other-secret"))
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestVerify_TamperedPayload(t *testing.T) {
	tok, err := Generate(secret, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	raw, err := json.Marshal(Payload{ID: strings.Repeat("f", 32), Exp: time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)
	parts[0] = base64.RawURLEncoding.EncodeToString(raw)

	_, err = Verify(strings.Join(parts, "."), secret)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestVerify_Format(t *testing.T) {
	for _, tok := range []string{"", "onlyone", "a.b.c", ".", "a.", ".b"} {
		_, err := Verify(tok, secret)
		require.ErrorIs(t, err, errs.ErrInvalidFormat, "token %q", tok)
	}
}

func TestVerify_Expired(t *testing.T) {
	tok, err := Generate(secret, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(tok, secret)
	require.ErrorIs(t, err, errs.ErrExpired)
}
