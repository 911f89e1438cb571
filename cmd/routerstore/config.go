package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routerstore/internal/config"
	"github.com/vango-dev/routerstore/internal/errors"
	"github.com/vango-dev/routerstore/pkg/routerstore"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage routerstore.json",
	}
	cmd.AddCommand(configInitCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var (
		serializer string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a routerstore.json with default settings",
		Example: `  routerstore config init
  routerstore config init ./deploy --serializer full`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if config.Exists(dir) && !force {
				return errors.Newf(errors.CategoryConfig, "%s already exists in %s", config.ConfigFileName, dir).
					WithSuggestion("Pass --force to overwrite it")
			}

			cfg := config.New()
			if cmd.Flags().Changed("serializer") {
				kind, err := routerstore.ParseKind(serializer)
				if err != nil {
					return err
				}
				cfg.Serializer = kind.String()
			}

			if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&serializer, "serializer", "s", "", "Serializer to configure (full, minimal)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
