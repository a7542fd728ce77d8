package cmd

import (
	"context"
	"fmt"
	"time"

	"skyci/internal/api"
	"skyci/internal/cli"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	downloadOutputFile string
	downloadQuiet      bool
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <artifact-id> [dest]",
		Short: "Download a build artifact",
		Long: `Download a build artifact to the local filesystem.

The artifact metadata is fetched first to obtain its pre-signed download
URL, then the file contents are streamed to disk. Without a destination
argument the artifact's own file name is used.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDownload,
	}

	cmd.Flags().StringVarP(&downloadOutputFile, "output-file", "f", "", "Destination path (defaults to the artifact file name)")
	cmd.Flags().BoolVarP(&downloadQuiet, "quiet", "q", false, "Suppress the progress spinner")

	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	artifactID := args[0]

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	var artifact api.Artifact
	err = cli.RunWithReauth(cmd.Context(), func(ctx context.Context) error {
		var err error
		artifact, err = client.GetArtifact(ctx, artifactID)
		return err
	})
	if err != nil {
		return err
	}

	if artifact.Attributes.DownloadURL == "" {
		return fmt.Errorf("artifact %s has no download URL yet", artifactID)
	}

	dest := downloadOutputFile
	if len(args) > 1 {
		dest = args[1]
	}
	if dest == "" {
		dest = artifact.Attributes.FileName
	}
	if dest == "" {
		dest = artifactID
	}

	var s *spinner.Spinner
	if !downloadQuiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = fmt.Sprintf(" Downloading %s...", artifact.Attributes.FileName)
		s.Start()
	}

	written, err := client.DownloadArtifact(cmd.Context(), artifact.Attributes.DownloadURL, dest)

	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s (%d bytes)\n", dest, written)
	return nil
}
