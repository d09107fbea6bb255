package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wgslcst/internal/diag"
	"wgslcst/internal/diagfmt"
	"wgslcst/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file|dir>...",
		Short: "Parse WGSL files in parallel and report diagnostics",
		Long:  `Check parses every given file and every *.wgsl file under the given directories, prints their diagnostics and a summary, and exits with status 1 if any file has errors.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("diagnostics", "pretty", "diagnostic output format (pretty|short|json)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	diagFormat, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	if diagFormat != "pretty" && diagFormat != "short" && diagFormat != "json" {
		return fmt.Errorf("unknown diagnostics format: %s", diagFormat)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	paths, err := driver.ExpandInputs(args)
	if err != nil {
		return err
	}
	fileSet, results, err := driver.ParseFiles(cmd.Context(), paths, opts, jobs)
	if err != nil {
		return err
	}
	defer printTimings(cmd, opts.Timer)

	stderr := cmd.ErrOrStderr()
	ioFailures := 0
	for _, r := range results {
		if r.Err != nil {
			ioFailures++
			fmt.Fprintf(stderr, "%v\n", r.Err)
		}
	}

	bag := driver.MergeBags(results, 0)
	switch diagFormat {
	case "json":
		err = diagfmt.JSON(cmd.OutOrStdout(), bag, fileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case "short":
		if out := diag.FormatShort(bag.Items(), fileSet, true); out != "" {
			_, err = fmt.Fprintln(stderr, out)
		}
	default:
		err = diagfmt.Pretty(stderr, bag, fileSet, prettyOpts(cmd))
	}
	if err != nil {
		return err
	}

	failedFiles := 0
	for _, r := range results {
		if r.Result != nil && r.Result.HasErrors() {
			failedFiles++
		}
	}
	fmt.Fprintf(stderr, "checked %d files: %d with errors, %d unreadable, %d errors, %d warnings\n",
		len(results), failedFiles, ioFailures, bag.ErrorCount(), countWarnings(bag))

	if failedFiles > 0 || ioFailures > 0 {
		return errFailed
	}
	return nil
}

func countWarnings(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			n++
		}
	}
	return n
}
