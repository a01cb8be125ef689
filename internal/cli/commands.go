package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expressgen/expressgen/internal/config"
	"github.com/expressgen/expressgen/pkg/version"
)

func newManifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Print the default generation manifest as YAML",
		Long: `Print the default generation manifest. Save and edit the output, then
pass it back with --manifest to change folders, file names, templates or
packages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Marshal(config.NewDefaultManifest())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "expressgen %s\n", version.GetFullVersion())
		},
	}
}
