package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentialRequiresAllFields(t *testing.T) {
	cases := []struct {
		name               string
		keyID, issuer, key string
	}{
		{"missing key id", "", "I", testKeyPEM},
		{"missing issuer id", "K", "", testKeyPEM},
		{"missing key", "K", "I", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCredential(tc.keyID, tc.issuer, tc.key)
			assert.Error(t, err)
		})
	}
}

func TestNewCredentialFromKeyPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(path, []byte(testKeyPEM+"\n"), 0o600))

	cred, err := NewCredentialFromKeyPath("K", "I", path)
	require.NoError(t, err)
	assert.Equal(t, testKeyPEM, cred.PrivateKey)

	_, err = NewCredentialFromKeyPath("K", "I", filepath.Join(t.TempDir(), "missing.pem"))
	var keyErr *KeyFileError
	assert.ErrorAs(t, err, &keyErr)
}

func TestNormalizeKeyMaterialFallsBackToLiteral(t *testing.T) {
	// Valid base64 that does not decode to a PEM key stays literal.
	assert.Equal(t, "aGVsbG8=", normalizeKeyMaterial("aGVsbG8="))
	// Whitespace inside a base64 transport encoding is tolerated.
	wrapped := testKeyBase64[:40] + "\n" + testKeyBase64[40:]
	assert.Equal(t, testKeyPEM, normalizeKeyMaterial(wrapped))
}

func TestProfileResolve(t *testing.T) {
	t.Run("inline key", func(t *testing.T) {
		p := Profile{KeyID: "K", IssuerID: "I", PrivateKey: testKeyPEM}
		cred, err := p.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "K", cred.KeyID)
	})

	t.Run("key path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "key.pem")
		require.NoError(t, os.WriteFile(path, []byte(testKeyPEM), 0o600))
		p := Profile{KeyID: "K", IssuerID: "I", PrivateKeyPath: path}
		cred, err := p.Resolve()
		require.NoError(t, err)
		assert.Equal(t, testKeyPEM, cred.PrivateKey)
	})

	t.Run("inline wins over path", func(t *testing.T) {
		p := Profile{KeyID: "K", IssuerID: "I", PrivateKey: testKeyPEM, PrivateKeyPath: "/nonexistent"}
		cred, err := p.Resolve()
		require.NoError(t, err)
		assert.Equal(t, testKeyPEM, cred.PrivateKey)
	})

	t.Run("no key material", func(t *testing.T) {
		p := Profile{KeyID: "K", IssuerID: "I"}
		_, err := p.Resolve()
		assert.Error(t, err)
	})
}

func TestConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := &ConfigFile{}
	cfg.SetProfile("dev", Profile{KeyID: "K", IssuerID: "I", PrivateKeyPath: "/keys/dev.pem"})
	require.NoError(t, cfg.SetDefault("dev"))
	require.NoError(t, SaveConfigFile(path, cfg))

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "dev", loaded.Default)
	assert.Equal(t, cfg.Profiles["dev"], loaded.Profiles["dev"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSetDefaultRejectsUnknownProfile(t *testing.T) {
	cfg := &ConfigFile{}
	assert.Error(t, cfg.SetDefault("ghost"))
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}
