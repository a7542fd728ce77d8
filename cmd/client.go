package cmd

import (
	"os"

	"skyci/internal/api"
	"skyci/internal/cli"
	"skyci/internal/credentials"
)

// credentialOptions collects the global credential flags into resolver input.
func credentialOptions() credentials.Options {
	return credentials.Options{
		KeyID:          flagKeyID,
		IssuerID:       flagIssuerID,
		PrivateKey:     flagPrivateKey,
		PrivateKeyPath: flagPrivateKeyPath,
		Profile:        flagProfile,
	}
}

// newAPIClient builds an authenticated API client from the global flags.
// Credential resolution happens here, so missing credentials fail before any
// network traffic.
func newAPIClient() (*api.Client, error) {
	return api.NewClient(credentials.NewResolver(), credentialOptions())
}

// newFormatter validates the format flag and builds a stdout formatter.
func newFormatter(format string) (*cli.Formatter, error) {
	if err := cli.ValidateOutputFormat(format); err != nil {
		return nil, err
	}
	return cli.NewFormatter(cli.OutputFormat(format), os.Stdout), nil
}
