package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routerstore/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configPath string
	noColor    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "routerstore",
		Short: "Serialize router state snapshots for state containers",
		Long: `routerstore turns router state snapshots into plain, acyclic values.

Snapshots can be serialized one at a time from a file or stdin, or posted to
the HTTP server, which also streams every serialized state to devtools and
can archive states to S3.

Serializers:

  • full     every route field except parent/root links, children nested
  • minimal  url, root data and query params, params of the active leaf`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_, noColorEnv := os.LookupEnv("NO_COLOR")
			errors.SetColors(!opts.noColor && !noColorEnv)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to routerstore.json")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		serializeCmd(opts),
		serveCmd(opts),
		configCmd(),
		errorsCmd(),
		versionCmd(),
	)

	return rootCmd
}
