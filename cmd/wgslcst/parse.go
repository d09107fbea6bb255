package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"wgslcst/internal/diagfmt"
	"wgslcst/internal/driver"
	"wgslcst/internal/format"
)

func runParse(cmd *cobra.Command, args []string) error {
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	outFormat, resilient, err := treeFlags(cmd)
	if err != nil {
		return err
	}

	res, err := driver.ParseFile(cmd.Context(), nil, args[0], opts)
	if err != nil {
		return err
	}
	defer printTimings(cmd, opts.Timer)

	return emitResult(cmd, res, outFormat, resilient)
}

func treeFlags(cmd *cobra.Command) (string, bool, error) {
	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", false, fmt.Errorf("failed to get format flag: %w", err)
	}
	if !validTreeFormat(outFormat) {
		return "", false, fmt.Errorf("unknown format: %s", outFormat)
	}
	resilient, err := cmd.Flags().GetBool("resilient")
	if err != nil {
		return "", false, fmt.Errorf("failed to get resilient flag: %w", err)
	}
	return outFormat, resilient, nil
}

// emitResult prints diagnostics to stderr and the tree to stdout.
// The tree is withheld on errors unless resilient; errors always yield errFailed.
func emitResult(cmd *cobra.Command, res *driver.ParseResult, outFormat string, resilient bool) error {
	if res.Bag.Len() > 0 || res.Bag.Dropped() > 0 {
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, prettyOpts(cmd)); err != nil {
			return err
		}
	}
	failed := res.HasErrors()
	if failed && !resilient {
		return errFailed
	}
	if err := writeTree(cmd.OutOrStdout(), res, outFormat); err != nil {
		return err
	}
	if failed {
		return errFailed
	}
	return nil
}

func writeTree(w io.Writer, res *driver.ParseResult, outFormat string) error {
	switch outFormat {
	case "json":
		return format.WriteJSON(w, res.Root)
	case "yaml":
		return format.WriteYAML(w, res.Root)
	default:
		if err := format.Fprint(w, res.Root); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
}
