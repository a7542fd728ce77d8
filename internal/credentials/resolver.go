package credentials

import (
	"os"

	"skyci/pkg/logging"
)

// Environment variables consumed by the resolver. The inline key wins when
// both the inline key and the key path are set.
const (
	EnvKeyID          = "SKYCI_KEY_ID"
	EnvIssuerID       = "SKYCI_ISSUER_ID"
	EnvPrivateKey     = "SKYCI_PRIVATE_KEY"
	EnvPrivateKeyPath = "SKYCI_PRIVATE_KEY_PATH"
)

// Options are the explicit (command-line) credential inputs.
//
// A partial explicit credential — key id and issuer id without any key
// material — does not short-circuit resolution; it falls through to the next
// source. This mirrors the historical behavior and is deliberate.
type Options struct {
	KeyID          string
	IssuerID       string
	PrivateKey     string
	PrivateKeyPath string

	// Profile selects a named config-file profile. When set and the profile
	// is missing from a readable config file, resolution fails immediately
	// with ProfileNotFoundError instead of falling through.
	Profile string
}

// Resolver searches the credential sources in strict priority order:
// explicit options, environment, project-local config file, global config
// file. The first complete match wins; sources are never merged.
//
// The resolver is stateless and side-effect free apart from file reads, so a
// single instance is safe for concurrent use.
type Resolver struct {
	// LocalConfigPath and GlobalConfigPath override the config file
	// locations. Empty values select the defaults.
	LocalConfigPath  string
	GlobalConfigPath string

	// Getenv overrides environment lookup. Nil selects os.Getenv.
	Getenv func(string) string
}

// NewResolver returns a Resolver with default paths and environment lookup.
func NewResolver() *Resolver {
	return &Resolver{}
}

func (r *Resolver) getenv(key string) string {
	if r.Getenv != nil {
		return r.Getenv(key)
	}
	return os.Getenv(key)
}

func (r *Resolver) localPath() string {
	if r.LocalConfigPath != "" {
		return r.LocalConfigPath
	}
	return DefaultLocalConfigPath()
}

func (r *Resolver) globalPath() (string, error) {
	if r.GlobalConfigPath != "" {
		return r.GlobalConfigPath, nil
	}
	return DefaultGlobalConfigPath()
}

// Resolve picks one complete credential set. See Resolver for the priority
// order and Options for the fallthrough rules.
func (r *Resolver) Resolve(opts Options) (Credential, error) {
	var tried []string

	// 1. Explicit options.
	tried = append(tried, "flags")
	if cred, ok, err := resolveExplicit(opts); err != nil {
		return Credential{}, err
	} else if ok {
		logging.Debug("Resolver", "using explicit credentials (key id %s)", cred.KeyID)
		return cred, nil
	}

	// 2. Environment variables.
	tried = append(tried, "environment")
	if cred, ok, err := r.resolveEnv(); err != nil {
		return Credential{}, err
	} else if ok {
		logging.Debug("Resolver", "using environment credentials (key id %s)", cred.KeyID)
		return cred, nil
	}

	// 3. Project-local config file, then 4. global config file.
	paths := []string{r.localPath()}
	globalPath, err := r.globalPath()
	if err != nil {
		return Credential{}, err
	}
	paths = append(paths, globalPath)

	readable := 0
	for _, path := range paths {
		tried = append(tried, path)
		cred, found, err := resolveConfigFile(path, opts.Profile)
		if err != nil {
			return Credential{}, err
		}
		if found == configFileMissing {
			continue
		}
		readable++
		if found == profileFound {
			logging.Debug("Resolver", "using profile from %s (key id %s)", path, cred.KeyID)
			return cred, nil
		}
	}

	// An explicitly named profile absent from every readable config file is
	// a hard error, never a silent fallthrough to "no credentials".
	if opts.Profile != "" && readable > 0 {
		return Credential{}, &ProfileNotFoundError{Profile: opts.Profile, Path: paths[len(paths)-1]}
	}

	return Credential{}, &MissingCredentialsError{Tried: tried}
}

type configLookup int

const (
	configFileMissing configLookup = iota
	profileAbsent
	profileFound
)

// resolveExplicit handles source 1. Complete means key id AND issuer id AND
// some key material; anything less falls through (ok=false, no error).
func resolveExplicit(opts Options) (Credential, bool, error) {
	if opts.KeyID == "" || opts.IssuerID == "" {
		return Credential{}, false, nil
	}
	switch {
	case opts.PrivateKey != "":
		cred, err := NewCredential(opts.KeyID, opts.IssuerID, opts.PrivateKey)
		return cred, err == nil, err
	case opts.PrivateKeyPath != "":
		cred, err := NewCredentialFromKeyPath(opts.KeyID, opts.IssuerID, opts.PrivateKeyPath)
		return cred, err == nil, err
	default:
		// Partial explicit input: fall through to later sources.
		return Credential{}, false, nil
	}
}

// resolveEnv handles source 2 with the same completeness rule as the
// explicit source.
func (r *Resolver) resolveEnv() (Credential, bool, error) {
	keyID := r.getenv(EnvKeyID)
	issuerID := r.getenv(EnvIssuerID)
	if keyID == "" || issuerID == "" {
		return Credential{}, false, nil
	}
	switch {
	case r.getenv(EnvPrivateKey) != "":
		cred, err := NewCredential(keyID, issuerID, r.getenv(EnvPrivateKey))
		return cred, err == nil, err
	case r.getenv(EnvPrivateKeyPath) != "":
		cred, err := NewCredentialFromKeyPath(keyID, issuerID, r.getenv(EnvPrivateKeyPath))
		return cred, err == nil, err
	default:
		return Credential{}, false, nil
	}
}

// resolveConfigFile handles sources 3 and 4. A missing file means the source
// is absent. A file that is readable but lacks the selected profile reports
// profileAbsent so the caller can distinguish fallthrough from "no config".
func resolveConfigFile(path, profileName string) (Credential, configLookup, error) {
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return Credential{}, configFileMissing, err
	}
	if cfg == nil {
		return Credential{}, configFileMissing, nil
	}

	name := profileName
	if name == "" {
		name = cfg.Default
	}
	if name == "" {
		return Credential{}, profileAbsent, nil
	}

	profile, ok := cfg.Profiles[name]
	if !ok {
		if profileName == "" {
			// Declared default points at a profile that does not exist.
			return Credential{}, profileAbsent, &ConfigError{
				Path: path,
				Err:  &ProfileNotFoundError{Profile: name, Path: path},
			}
		}
		return Credential{}, profileAbsent, nil
	}

	cred, err := profile.Resolve()
	if err != nil {
		if _, isKeyFile := err.(*KeyFileError); isKeyFile {
			return Credential{}, profileAbsent, err
		}
		return Credential{}, profileAbsent, &ConfigError{Path: path, Err: err}
	}
	return cred, profileFound, nil
}
