// Package token builds and caches the short-lived signed bearer tokens
// presented on every skyci API call.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"skyci/internal/credentials"
)

const (
	// MaxValidity is the hard cap on token lifetime. Requested durations are
	// clamped to it, never exceeded.
	MaxValidity = 20 * time.Minute

	// Audience is the fixed aud claim the API expects.
	Audience = "skyci-api-v1"
)

// SignedToken is a signed bearer token together with its true expiry.
type SignedToken struct {
	Value     string
	ExpiresAt time.Time
}

// InvalidPrivateKeyError indicates private key material that could not be
// decoded or parsed. The underlying cause is always attached.
type InvalidPrivateKeyError struct {
	Err error
}

func (e *InvalidPrivateKeyError) Error() string {
	return fmt.Sprintf("invalid private key: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *InvalidPrivateKeyError) Unwrap() error { return e.Err }

// Generator builds ES256-signed bearer tokens from a credential.
// It retains no state and is safe to call concurrently and repeatedly.
type Generator struct{}

// Generate builds and signs a token valid for the requested duration,
// clamped to MaxValidity. The signature covers the base64url-encoded
// header and claims, with the key identifier carried in the kid header.
func (Generator) Generate(cred credentials.Credential, validity time.Duration) (SignedToken, error) {
	if validity <= 0 || validity > MaxValidity {
		validity = MaxValidity
	}

	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(cred.PrivateKey))
	if err != nil {
		return SignedToken{}, &InvalidPrivateKeyError{Err: err}
	}

	// Whole-second timestamps: JWT numeric dates carry second precision.
	now := time.Now().UTC().Truncate(time.Second)
	expiresAt := now.Add(validity)
	claims := jwt.RegisteredClaims{
		Issuer:    cred.IssuerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		Audience:  jwt.ClaimStrings{Audience},
		ID:        uuid.New().String(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	tok.Header["kid"] = cred.KeyID
	signed, err := tok.SignedString(key)
	if err != nil {
		return SignedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return SignedToken{Value: signed, ExpiresAt: expiresAt}, nil
}
