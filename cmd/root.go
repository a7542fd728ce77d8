package cmd

import (
	"errors"
	"os"

	"skyci/internal/api"
	"skyci/internal/credentials"
	"skyci/internal/token"
	"skyci/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
// These follow common conventions so scripts can distinguish auth problems
// from general failures.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates usable credentials were missing, invalid
	// or rejected by the API.
	ExitCodeAuthRequired = 2
)

// Global credential flags, honored by every command that talks to the API.
var (
	flagKeyID          string
	flagIssuerID       string
	flagPrivateKey     string
	flagPrivateKeyPath string
	flagProfile        string
	flagDebug          bool
)

// rootCmd represents the base command for the skyci application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "skyci",
	Short: "Command line client for the SkyCI build service",
	Long: `skyci lists products, workflows and build runs on the SkyCI build
service, starts new builds and downloads build artifacts.

Credentials are resolved from command-line flags, then SKYCI_* environment
variables, then a project-local .skyci/config.json, then the per-user
~/.config/skyci/config.json. Use "skyci profile save" to store them.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if flagDebug {
			level = logging.LevelDebug
		}
		logging.Init(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the
// application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles
// subcommands and flags. This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "skyci version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var unauthorized *api.UnauthorizedError
	if errors.As(err, &unauthorized) {
		return ExitCodeAuthRequired
	}

	var missing *credentials.MissingCredentialsError
	if errors.As(err, &missing) {
		return ExitCodeAuthRequired
	}

	var noProfile *credentials.ProfileNotFoundError
	if errors.As(err, &noProfile) {
		return ExitCodeAuthRequired
	}

	var badKeyFile *credentials.KeyFileError
	if errors.As(err, &badKeyFile) {
		return ExitCodeAuthRequired
	}

	var badKey *token.InvalidPrivateKeyError
	if errors.As(err, &badKey) {
		return ExitCodeAuthRequired
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagKeyID, "key-id", "", "API key identifier")
	rootCmd.PersistentFlags().StringVar(&flagIssuerID, "issuer-id", "", "API key issuer identifier")
	rootCmd.PersistentFlags().StringVar(&flagPrivateKey, "private-key", "", "PEM or base64-encoded PEM private key")
	rootCmd.PersistentFlags().StringVar(&flagPrivateKeyPath, "private-key-path", "", "Path to a PEM private key file")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Named credential profile from the config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newInteractiveCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
