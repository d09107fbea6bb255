package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wgslcst/internal/version"
)

// errFailed ends a command with exit status 1 after its diagnostics were printed.
var errFailed = errors.New("failed")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wgslcst [flags] <file.wgsl>",
		Short: "Print the concrete syntax tree of a WGSL file",
		Long: `wgslcst parses a WGSL shader and prints its concrete syntax tree.
On lexical or syntax errors it prints diagnostics instead and exits with status 1.`,
		Args:              cobra.ExactArgs(1),
		RunE:              runParse,
		PersistentPreRunE: setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Annotations:       treeOutput,
	}
	rootCmd.Version = version.Version

	rootCmd.Flags().Bool("resilient", false, "print the partial tree even when errors occurred")
	rootCmd.Flags().String("format", "tree", "tree output format (tree|json|yaml)")
	rootCmd.Flags().Bool("eof", false, "end translation_unit with an <EOF> leaf")

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "off", "log level (off|error|warn|info|debug)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to wgslcst.toml (default: search upwards from the input)")
	rootCmd.PersistentFlags().Bool("lex-recover", false, "keep lexing after a bad character instead of stopping")
	rootCmd.PersistentFlags().Int("max-errors", 100, "maximum number of syntax errors to record (0 = unlimited)")
	rootCmd.PersistentFlags().Bool("cache", false, "reuse parsed trees from the on-disk cache")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this file")

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCleanCmd())
	withProfiling(rootCmd)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	if !errors.Is(err, errFailed) {
		fmt.Fprintf(os.Stderr, "wgslcst: %v\n", err)
	}
	os.Exit(1)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
