package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routerstore/internal/config"
	"github.com/vango-dev/routerstore/internal/errors"
	"github.com/vango-dev/routerstore/pkg/routerstore"
)

func serializeCmd(opts *rootOptions) *cobra.Command {
	var (
		serializer string
		indent     bool
	)

	cmd := &cobra.Command{
		Use:   "serialize [file]",
		Short: "Serialize a router state snapshot",
		Long: `Read a router state snapshot as JSON from a file (or stdin when the file
is omitted or "-") and print its serialized form.

The snapshot nests routes through "children"; parent and root links are
rebuilt before serializing.`,
		Example: `  routerstore serialize snapshot.json
  routerstore serialize --serializer full --indent < snapshot.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(opts.configPath)
			if err != nil {
				return err
			}

			kind := cfg.SerializerKind()
			if cmd.Flags().Changed("serializer") {
				if kind, err = routerstore.ParseKind(serializer); err != nil {
					return err
				}
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Newf(errors.CategoryCLI, "cannot open snapshot %s", args[0]).Wrap(err)
				}
				defer f.Close()
				in = f
			}

			data, err := io.ReadAll(in)
			if err != nil {
				return errors.Newf(errors.CategoryCLI, "cannot read snapshot").Wrap(err)
			}

			snapshot, err := routerstore.DecodeRouterState(data)
			if err != nil {
				return err
			}

			s, err := routerstore.ForKind(kind)
			if err != nil {
				return err
			}

			out, err := routerstore.Encode(s.Serialize(snapshot), indent)
			if err != nil {
				return err
			}
			out = append(out, '\n')
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&serializer, "serializer", "s", "", "Serializer to use (full, minimal); defaults to the configured one")
	cmd.Flags().BoolVar(&indent, "indent", false, "Indent the JSON output")

	return cmd
}
