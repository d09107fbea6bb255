package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wgslcst/internal/prof"
)

// withProfiling wraps every RunE in the tree with the profilers named by
// --cpu-profile, --mem-profile and --runtime-trace.
func withProfiling(c *cobra.Command) {
	if run := c.RunE; run != nil {
		c.RunE = func(cmd *cobra.Command, args []string) (err error) {
			session, err := startProfiling(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if stopErr := session.Stop(); stopErr != nil && err == nil {
					err = fmt.Errorf("profiling: %w", stopErr)
				}
			}()
			return run(cmd, args)
		}
	}
	for _, sub := range c.Commands() {
		withProfiling(sub)
	}
}

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	var opts prof.Options
	var err error
	flags := cmd.Flags()
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}
