package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wgslcst/internal/driver"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove every tree stored by --cache",
		Long:  "Remove the parsed trees kept in the on-disk cache under $XDG_CACHE_HOME/wgslcst/trees.",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := driver.OpenTreeCache(appName)
	if err != nil {
		return fmt.Errorf("failed to open tree cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clear %q: %w", cache.Dir(), err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", cache.Dir())
	return nil
}
