package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wgslcst/internal/diagfmt"
	"wgslcst/internal/driver"
	"wgslcst/internal/lexer"
	"wgslcst/internal/observ"
	"wgslcst/internal/trace"
)

const appName = "wgslcst"

// treeOutput marks commands whose --format takes tree|json|yaml, the
// vocabulary of output.format in wgslcst.toml.
var treeOutput = map[string]string{"output": "tree"}

// setupCommand applies wgslcst.toml to unset flags, then installs the logger
// and the global colour switch.
func setupCommand(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg != nil {
		if err := applyConfig(cmd, cfg); err != nil {
			return err
		}
	}

	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if !validColor(colorFlag) {
		return fmt.Errorf("invalid --color %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !colorEnabled(colorFlag, cmd.OutOrStdout())

	levelStr, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	logger := trace.New(cmd.ErrOrStderr(), level)
	if cfg != nil {
		logger.WithField("path", cfg.path).Debug("config loaded")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(trace.WithLogger(ctx, logger))
	return nil
}

func resolveConfig(cmd *cobra.Command, args []string) (*Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		return loadConfig(explicit)
	}
	if len(args) == 0 {
		return nil, nil
	}
	start := args[0]
	if info, err := os.Stat(start); err != nil || !info.IsDir() {
		start = filepath.Dir(start)
	}
	path, ok := findConfig(start)
	if !ok {
		return nil, nil
	}
	return loadConfig(path)
}

// applyConfig sets every flag the user did not pass explicitly to its file value.
func applyConfig(cmd *cobra.Command, cfg *Config) error {
	for name, value := range cfg.flagValues() {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if name == "format" && cmd.Annotations["output"] != "tree" {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("%s: %s: %w", cfg.path, name, err)
		}
	}
	return nil
}

func colorEnabled(flag string, w io.Writer) bool {
	switch flag {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func prettyOpts(cmd *cobra.Command) diagfmt.PrettyOpts {
	colorFlag, _ := cmd.Flags().GetString("color")
	return diagfmt.PrettyOpts{
		Color:     colorEnabled(colorFlag, cmd.ErrOrStderr()),
		Context:   1,
		ShowNotes: true,
	}
}

// driverOptions builds the load/lex/parse options shared by every command.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	var opts driver.Options
	flags := cmd.Flags()

	lexRecover, err := flags.GetBool("lex-recover")
	if err != nil {
		return opts, fmt.Errorf("failed to get lex-recover flag: %w", err)
	}
	if lexRecover {
		opts.OnLexError = lexer.RecoverOnError
	}

	opts.MaxErrors, err = flags.GetInt("max-errors")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-errors flag: %w", err)
	}
	if opts.MaxErrors < 0 {
		return opts, fmt.Errorf("invalid --max-errors %d", opts.MaxErrors)
	}

	useCache, err := flags.GetBool("cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		cache, err := driver.OpenTreeCache(appName)
		if err != nil {
			trace.FromContext(cmd.Context()).WithError(err).Warn("tree cache disabled")
		} else {
			opts.Cache = cache
		}
	}

	if flags.Lookup("eof") != nil {
		opts.KeepEOF, err = flags.GetBool("eof")
		if err != nil {
			return opts, fmt.Errorf("failed to get eof flag: %w", err)
		}
	}

	timings, err := flags.GetBool("timings")
	if err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
