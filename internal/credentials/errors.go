package credentials

import (
	"fmt"
	"strings"
)

// MissingCredentialsError indicates that no credential source yielded a
// complete credential set. It lists the sources that were consulted and
// carries remediation guidance.
type MissingCredentialsError struct {
	// Tried names the sources consulted, in priority order.
	Tried []string
}

// Error returns a user-friendly message with actionable guidance.
func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf(`No API credentials configured (tried: %s)

To configure credentials, either:
  - pass --key-id, --issuer-id and --private-key-path on the command line,
  - set %s, %s and %s (or %s), or
  - save a profile: skyci profile save <name> --key-id ... --issuer-id ... --private-key-path ...`,
		strings.Join(e.Tried, ", "),
		EnvKeyID, EnvIssuerID, EnvPrivateKeyPath, EnvPrivateKey)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *MissingCredentialsError) Is(target error) bool {
	_, ok := target.(*MissingCredentialsError)
	return ok
}

// ProfileNotFoundError indicates that an explicitly requested profile name is
// absent from an otherwise readable config file. Resolution fails immediately
// rather than falling through to the next source.
type ProfileNotFoundError struct {
	Profile string
	Path    string
}

// Error returns a user-friendly message with actionable guidance.
func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf(`Profile %q not found in %s

To list saved profiles, run:
  skyci profile list`, e.Profile, e.Path)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *ProfileNotFoundError) Is(target error) bool {
	_, ok := target.(*ProfileNotFoundError)
	return ok
}

// ConfigError indicates a config file that exists but cannot be read or
// parsed. This is a hard error, not a fallthrough.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// KeyFileError indicates a private key file that is missing or unreadable.
type KeyFileError struct {
	Path string
	Err  error
}

func (e *KeyFileError) Error() string {
	return fmt.Sprintf("cannot read private key file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyFileError) Unwrap() error { return e.Err }
