package cmd

import (
	"fmt"
	"sort"

	"skyci/internal/cli"
	"skyci/internal/credentials"

	"github.com/spf13/cobra"
)

var (
	profileGlobal       bool
	profileSetDefault   bool
	profileOutputFormat string
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage stored credential profiles",
		Long: `Manage the credential profiles stored in the skyci config file.

Profiles live in the project-local .skyci/config.json by default; --global
targets the per-user ~/.config/skyci/config.json instead.`,
	}

	cmd.PersistentFlags().BoolVar(&profileGlobal, "global", false, "Operate on the per-user config file")

	cmd.AddCommand(newProfileSaveCmd())
	cmd.AddCommand(newProfileDefaultCmd())
	cmd.AddCommand(newProfileListCmd())

	return cmd
}

// profileConfigPath selects the config file targeted by the profile commands.
func profileConfigPath() (string, error) {
	if profileGlobal {
		return credentials.DefaultGlobalConfigPath()
	}
	return credentials.DefaultLocalConfigPath(), nil
}

func newProfileSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current credential flags as a named profile",
		Long: `Save the credentials given via --key-id, --issuer-id and
--private-key or --private-key-path as a named profile:

  skyci profile save ci --key-id KEY --issuer-id ISSUER --private-key-path key.pem`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileSave,
	}

	cmd.Flags().BoolVar(&profileSetDefault, "default", false, "Also make this profile the default")

	return cmd
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	name := args[0]

	if flagKeyID == "" || flagIssuerID == "" {
		return fmt.Errorf("profile save requires --key-id and --issuer-id")
	}
	if flagPrivateKey == "" && flagPrivateKeyPath == "" {
		return fmt.Errorf("profile save requires --private-key or --private-key-path")
	}

	profile := credentials.Profile{
		KeyID:          flagKeyID,
		IssuerID:       flagIssuerID,
		PrivateKey:     flagPrivateKey,
		PrivateKeyPath: flagPrivateKeyPath,
	}
	// Reject unusable credentials before persisting them.
	if _, err := profile.Resolve(); err != nil {
		return err
	}

	path, err := profileConfigPath()
	if err != nil {
		return err
	}
	cfg, err := credentials.LoadConfigFile(path)
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg = &credentials.ConfigFile{}
	}

	cfg.SetProfile(name, profile)
	if profileSetDefault || cfg.Default == "" {
		if err := cfg.SetDefault(name); err != nil {
			return err
		}
	}

	if err := credentials.SaveConfigFile(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %q to %s\n", name, path)
	return nil
}

func newProfileDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default <name>",
		Short: "Make an existing profile the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := profileConfigPath()
			if err != nil {
				return err
			}
			cfg, err := credentials.LoadConfigFile(path)
			if err != nil {
				return err
			}
			if cfg == nil {
				return &credentials.ProfileNotFoundError{Profile: args[0], Path: path}
			}
			if err := cfg.SetDefault(args[0]); err != nil {
				return err
			}
			if err := credentials.SaveConfigFile(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default profile is now %q in %s\n", args[0], path)
			return nil
		},
	}
}

func newProfileListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		RunE:  runProfileList,
	}

	cmd.Flags().StringVarP(&profileOutputFormat, "output", "o", "table", "Output format (table, wide, json, yaml, csv)")

	return cmd
}

// profileEntry is the list view of a stored profile. Key material is never
// echoed back, only where it comes from.
type profileEntry struct {
	Name      string `json:"name"`
	KeyID     string `json:"keyId"`
	IssuerID  string `json:"issuerId"`
	KeySource string `json:"keySource"`
	Default   bool   `json:"default"`
}

func runProfileList(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter(profileOutputFormat)
	if err != nil {
		return err
	}

	path, err := profileConfigPath()
	if err != nil {
		return err
	}
	cfg, err := credentials.LoadConfigFile(path)
	if err != nil {
		return err
	}

	var entries []profileEntry
	if cfg != nil {
		for name, p := range cfg.Profiles {
			source := "inline"
			if p.PrivateKey == "" {
				source = p.PrivateKeyPath
			}
			entries = append(entries, profileEntry{
				Name:      name,
				KeyID:     p.KeyID,
				IssuerID:  p.IssuerID,
				KeySource: source,
				Default:   name == cfg.Default,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	tbl := cli.Table{
		Headers:     []string{"Name", "Key ID", "Default"},
		WideHeaders: []string{"Issuer ID", "Key Source"},
	}
	for _, e := range entries {
		def := ""
		if e.Default {
			def = "*"
		}
		tbl.Rows = append(tbl.Rows, []string{e.Name, e.KeyID, def})
		tbl.WideRows = append(tbl.WideRows, []string{e.IssuerID, e.KeySource})
	}
	return formatter.Print(entries, tbl)
}
