package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wgslcst/internal/diagfmt"
	"wgslcst/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.wgsl>",
		Short: "Print the tokens of a WGSL file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if outFormat != "pretty" && outFormat != "json" {
		return fmt.Errorf("unknown format: %s", outFormat)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	if result.Bag.Len() > 0 {
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, prettyOpts(cmd)); err != nil {
			return err
		}
	}

	switch outFormat {
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errFailed
	}
	return nil
}
