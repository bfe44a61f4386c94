package projectcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := &Config{
		Host:     "http://localhost:8080",
		Project:  "proj-1",
		ReadKey:  "read-abc",
		WriteKey: "write-def",
		Entry:    map[string]string{"card": "./src/card.js"},
	}
	require.NoError(t, Save(dir, in))

	out, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{nope"), 0o600))
	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoad_MissingProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"host":"x"}`), 0o600))
	_, err := Load(dir)
	require.Error(t, err)
}
