package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routerstore/internal/errors"
)

func errorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errors [code]",
		Short: "List error codes or explain one",
		Example: `  routerstore errors
  routerstore errors R020`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, code := range errors.GetAllCodes() {
					fmt.Fprintln(out, errors.New(code).FormatCompact())
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			tmpl, ok := errors.GetTemplate(code)
			if !ok {
				return errors.Newf(errors.CategoryCLI, "unknown error code %s", args[0]).
					WithSuggestion("Run routerstore errors to list all codes")
			}
			fmt.Fprintf(out, "%s: %s\n", code, tmpl.Message)
			fmt.Fprintf(out, "  Category: %s\n", tmpl.Category)
			if tmpl.Suggestion != "" {
				fmt.Fprintf(out, "  Hint:     %s\n", tmpl.Suggestion)
			}
			return nil
		},
	}
}
