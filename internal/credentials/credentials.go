// Package credentials holds the credential model for the skyci API and the
// resolver that picks one complete credential set out of the four possible
// sources: explicit flags, environment variables, the project-local config
// file, and the global config file.
package credentials

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skyci/pkg/logging"
)

// Credential is a complete, immutable credential set: everything needed to
// sign an API token. All three fields are non-empty once constructed.
type Credential struct {
	KeyID      string
	IssuerID   string
	PrivateKey string // PEM-encoded EC private key
}

// NewCredential constructs a Credential from inline key material.
// The key material may arrive base64-encoded (environment or flag transport);
// it is decoded when the decoded bytes form a plausible PEM key, otherwise
// the value is used as literal PEM text.
func NewCredential(keyID, issuerID, privateKey string) (Credential, error) {
	if keyID == "" || issuerID == "" || privateKey == "" {
		return Credential{}, fmt.Errorf("incomplete credential: key id, issuer id and private key are all required")
	}
	return Credential{
		KeyID:      keyID,
		IssuerID:   issuerID,
		PrivateKey: normalizeKeyMaterial(privateKey),
	}, nil
}

// NewCredentialFromKeyPath constructs a Credential by reading the private key
// from disk. A missing or unreadable file is a hard error.
func NewCredentialFromKeyPath(keyID, issuerID, keyPath string) (Credential, error) {
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return Credential{}, &KeyFileError{Path: keyPath, Err: err}
	}
	return NewCredential(keyID, issuerID, string(data))
}

// normalizeKeyMaterial attempts a base64 decode of the key material and falls
// back to the literal value when decoding does not yield a plausible PEM key.
func normalizeKeyMaterial(material string) string {
	trimmed := strings.TrimSpace(material)
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, trimmed)
	if decoded, err := base64.StdEncoding.DecodeString(compact); err == nil && looksLikePEM(string(decoded)) {
		return strings.TrimSpace(string(decoded))
	}
	return trimmed
}

func looksLikePEM(s string) bool {
	return strings.Contains(s, "-----BEGIN")
}

// Profile is a named, persisted credential reference inside a config file.
// Exactly one of PrivateKeyPath and PrivateKey must be present for the
// profile to resolve; when both are set the inline key wins, matching the
// environment-variable rule.
type Profile struct {
	KeyID          string `json:"keyId"`
	IssuerID       string `json:"issuerId"`
	PrivateKeyPath string `json:"privateKeyPath,omitempty"`
	PrivateKey     string `json:"privateKey,omitempty"`
}

// Resolve turns the profile into a Credential, reading the key file when the
// profile references one.
func (p Profile) Resolve() (Credential, error) {
	if p.KeyID == "" || p.IssuerID == "" {
		return Credential{}, fmt.Errorf("profile is missing keyId or issuerId")
	}
	if p.PrivateKey != "" {
		return NewCredential(p.KeyID, p.IssuerID, p.PrivateKey)
	}
	if p.PrivateKeyPath != "" {
		return NewCredentialFromKeyPath(p.KeyID, p.IssuerID, p.PrivateKeyPath)
	}
	return Credential{}, fmt.Errorf("profile has neither privateKey nor privateKeyPath")
}

// ConfigFile is the on-disk profile store.
// Wire shape: {"default": string?, "profiles": {name: Profile}}.
type ConfigFile struct {
	Default  string             `json:"default,omitempty"`
	Profiles map[string]Profile `json:"profiles"`
}

const (
	localConfigDir = ".skyci"
	userConfigDir  = ".config/skyci"
	configFileName = "config.json"
	configFileMode = 0o600
	configDirMode  = 0o700
)

// DefaultLocalConfigPath returns the project-local config file path relative
// to the working directory.
func DefaultLocalConfigPath() string {
	return filepath.Join(localConfigDir, configFileName)
}

// DefaultGlobalConfigPath returns the per-user config file path.
func DefaultGlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// LoadConfigFile reads a config file from disk. A missing file is not an
// error: the source is simply absent and (nil, nil) is returned. Malformed
// JSON is a hard ConfigError.
func LoadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "no config file at %s", path)
			return nil, nil
		}
		return nil, &ConfigError{Path: path, Err: err}
	}

	var cfg ConfigFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	logging.Debug("Config", "loaded config file %s (%d profiles)", path, len(cfg.Profiles))
	return &cfg, nil
}

// SaveConfigFile writes the config file, creating the parent directory as
// needed. The file is written with owner-only permissions since profiles may
// embed private key material.
func SaveConfigFile(path string, cfg *ConfigFile) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, configFileMode); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}

// SetProfile adds or replaces a named profile.
func (c *ConfigFile) SetProfile(name string, p Profile) {
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	c.Profiles[name] = p
}

// SetDefault marks an existing profile as the default.
func (c *ConfigFile) SetDefault(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q does not exist", name)
	}
	c.Default = name
	return nil
}
