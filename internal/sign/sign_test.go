package sign

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rechunk/rechunk/internal/errs"
	"github.com/rechunk/rechunk/internal/keys"
)

func newKeyPair(t *testing.T) (pub, priv string) {
	t.Helper()
	pub, priv, err := keys.GenerateProjectKeys()
	require.NoError(t, err)
	return pub, priv
}

func TestSignVerify_RoundTrip(t *testing.T) {
	pub, priv := newKeyPair(t)
	data := []byte("console.log(1)")

	env, err := Sign(data, priv)
	require.NoError(t, err)
	require.NoError(t, Verify(data, env, pub))
}

func TestVerify_TamperedPayload(t *testing.T) {
	pub, priv := newKeyPair(t)

	env, err := Sign([]byte("console.log(1)"), priv)
	require.NoError(t, err)

	err = Verify([]byte("console.log(2)"), env, pub)
	require.ErrorIs(t, err, errs.ErrIntegrity)
}

func TestVerify_CrossProjectKey(t *testing.T) {
	_, privA := newKeyPair(t)
	pubB, _ := newKeyPair(t)
	data := []byte("export default Card")

	env, err := Sign(data, privA)
	require.NoError(t, err)

	err = Verify(data, env, pubB)
	require.ErrorIs(t, err, errs.ErrIntegrity)
}

func TestVerify_ForgedDigestPayload(t *testing.T) {
	// A valid signature over a different digest must not validate different
	// data even if the envelope itself is internally consistent.
	pub, priv := newKeyPair(t)

	env, err := Sign([]byte("original"), priv)
	require.NoError(t, err)

	// Swap the payload segment for the digest of other data; the RSA check
	// must now fail because the signed bytes changed.
	parts := strings.Split(env, ".")
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(Digest([]byte("other"))))
	forged := strings.Join(parts, ".")

	err = Verify([]byte("other"), forged, pub)
	require.ErrorIs(t, err, errs.ErrIntegrity)
}

func TestVerify_MalformedEnvelope(t *testing.T) {
	pub, _ := newKeyPair(t)

	for _, env := range []string{"", "a.b", "..", "a.b.c.d", "!!!.@@@.###"} {
		err := Verify([]byte("data"), env, pub)
		require.ErrorIs(t, err, errs.ErrIntegrity, "envelope %q", env)
	}
}

func TestSign_BadPrivateKey(t *testing.T) {
	_, err := Sign([]byte("data"), "not a pem key")
	require.ErrorIs(t, err, errs.ErrSigningFailure)
}

func TestDigest_Stable(t *testing.T) {
	// SHA-256 of "console.log(1)".
	require.Equal(t,
		"0a286891c11c056e1ab5bfc25bf5d6b2f5b06d38eac10944f678fd8a2e70c393",
		Digest([]byte("console.log(1)")))
}
