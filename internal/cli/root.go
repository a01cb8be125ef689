package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/expressgen/expressgen/pkg/version"
)

// NewRootCmd builds the expressgen command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "expressgen",
		Short: "Scaffold an Express and Mongoose project",
		Long: `expressgen asks whether your project needs authorization and a validation
layer, how many models it has and their names. It then installs the
dependencies and generates folders, per-model routes, controllers, models,
middlewares and validations, shared utilities, index.js, .env and .gitignore.

Without flags it runs interactively in the current directory.`,
		Example: `  expressgen
  expressgen --dir ./api --skip-install
  expressgen --answers answers.yaml --no-color`,
		Args:          cobra.NoArgs,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScaffold,
	}
	root.SetVersionTemplate(fmt.Sprintf("expressgen %s\n", version.GetVersion()))

	flags := root.Flags()
	flags.String("dir", "", "Project root directory (default: current directory)")
	flags.String("answers", "", "Read answers from a YAML file instead of prompting")
	flags.String("manifest", "", "Override the generation manifest with a YAML file")
	flags.Bool("skip-install", false, "Do not run the package manager")
	flags.Bool("verbose", false, "Write debug logs to stderr")
	flags.Bool("no-color", false, "Disable colors and animated progress")

	root.AddCommand(newManifestCmd(), newVersionCmd())
	return root
}

var rootCmd = NewRootCmd()

// Execute initializes dependencies and runs the root command. Errors are
// printed to stderr before being returned.
func Execute() error {
	if err := InitDependencies(); err != nil {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), cliError.Render("Error:"), err)
	}
	return err
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
