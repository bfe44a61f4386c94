// Package projectcfg loads the rechunk.json project file shared by the CLI and
// the dev server: host, credentials, key material, and the map of chunk ids to
// local source files.
package projectcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the project configuration file looked up in the working directory.
const FileName = "rechunk.json"

// Config mirrors the rechunk.json layout produced at project creation.
type Config struct {
	Host       string            `json:"host"`
	Project    string            `json:"project"`
	ReadKey    string            `json:"readKey"`
	WriteKey   string            `json:"writeKey"`
	PublicKey  string            `json:"publicKey"`
	PrivateKey string            `json:"privateKey"`
	Entry      map[string]string `json:"entry"` // chunk id -> local file path
}

// Load reads and validates rechunk.json from dir (or the working directory if
// dir is empty).
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}
	var c Config
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if c.Project == "" {
		return nil, fmt.Errorf("%s: missing project id", FileName)
	}
	return &c, nil
}

// Save writes the config next to the caller, pretty-printed for hand editing.
func Save(dir string, c *Config) error {
	if dir == "" {
		dir = "."
	}
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FileName), append(raw, '\n'), 0o600)
}
