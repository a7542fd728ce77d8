package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"skyci/internal/api"
	"skyci/internal/credentials"
	"skyci/internal/token"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
	if GetVersion() != testVersion {
		t.Errorf("Expected GetVersion to return %s, got %s", testVersion, GetVersion())
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "skyci" {
		t.Errorf("Expected Use to be 'skyci', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}
	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}
	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "skyci version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	expected := "skyci version 1.0.0\n"
	if buf.String() != expected {
		t.Errorf("Expected version output %q, got %q", expected, buf.String())
	}
}

func TestSubcommands(t *testing.T) {
	foundCommands := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range []string{
		"list", "get", "start", "download", "profile", "interactive", "version", "self-update",
	} {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %q to be registered", expected)
		}
	}
}

func TestGetExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", &api.UnauthorizedError{}, ExitCodeAuthRequired},
		{"wrapped unauthorized", fmt.Errorf("op failed: %w", &api.UnauthorizedError{}), ExitCodeAuthRequired},
		{"missing credentials", &credentials.MissingCredentialsError{}, ExitCodeAuthRequired},
		{"profile not found", &credentials.ProfileNotFoundError{Profile: "x"}, ExitCodeAuthRequired},
		{"key file unreadable", &credentials.KeyFileError{Path: "k.pem"}, ExitCodeAuthRequired},
		{"invalid private key", &token.InvalidPrivateKeyError{Err: errors.New("bad")}, ExitCodeAuthRequired},
		{"not found", &api.NotFoundError{}, ExitCodeError},
		{"plain error", errors.New("boom"), ExitCodeError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := getExitCode(tc.err); got != tc.want {
				t.Errorf("getExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestGlobalCredentialFlags(t *testing.T) {
	for _, name := range []string{"key-id", "issuer-id", "private-key", "private-key-path", "profile", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s to be registered", name)
		}
	}
}
