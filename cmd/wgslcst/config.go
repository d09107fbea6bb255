package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"wgslcst/internal/lexer"
)

const configFileName = "wgslcst.toml"

// Config mirrors wgslcst.toml. Only keys present in the file override flag defaults.
type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Parser ParserConfig `toml:"parser"`
	Output OutputConfig `toml:"output"`

	path string
	meta toml.MetaData
}

type LexerConfig struct {
	OnError string `toml:"on_error"`
}

type ParserConfig struct {
	MaxErrors int  `toml:"max_errors"`
	Resilient bool `toml:"resilient"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// findConfig looks for wgslcst.toml in start and its parents.
func findConfig(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// loadConfig decodes and validates path. Unknown keys are errors.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{path: path}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	cfg.meta = md
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if _, ok := lexer.ParseErrorPolicy(c.Lexer.OnError); !ok {
		errs = append(errs, fmt.Errorf("lexer.on_error: %q is not abort or recover", c.Lexer.OnError))
	}
	if c.Parser.MaxErrors < 0 {
		errs = append(errs, fmt.Errorf("parser.max_errors: must not be negative, got %d", c.Parser.MaxErrors))
	}
	if c.meta.IsDefined("output", "format") && !validTreeFormat(c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format: %q is not tree, json or yaml", c.Output.Format))
	}
	if c.meta.IsDefined("output", "color") && !validColor(c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color: %q is not auto, on or off", c.Output.Color))
	}
	return errors.Join(errs...)
}

// flagValues maps flag names to the values the file sets.
func (c *Config) flagValues() map[string]string {
	out := make(map[string]string)
	if c.meta.IsDefined("lexer", "on_error") {
		policy, _ := lexer.ParseErrorPolicy(c.Lexer.OnError)
		out["lex-recover"] = strconv.FormatBool(policy == lexer.RecoverOnError)
	}
	if c.meta.IsDefined("parser", "max_errors") {
		out["max-errors"] = strconv.Itoa(c.Parser.MaxErrors)
	}
	if c.meta.IsDefined("parser", "resilient") {
		out["resilient"] = strconv.FormatBool(c.Parser.Resilient)
	}
	if c.meta.IsDefined("output", "format") {
		out["format"] = c.Output.Format
	}
	if c.meta.IsDefined("output", "color") {
		out["color"] = c.Output.Color
	}
	return out
}

func validTreeFormat(s string) bool {
	switch s {
	case "tree", "json", "yaml":
		return true
	}
	return false
}

func validColor(s string) bool {
	switch s {
	case "auto", "on", "off":
		return true
	}
	return false
}
