// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config handles synacor.toml run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/synacor/translate"
)

var f = translate.From

var ErrConfigKey = errors.New(f("unknown configuration key"))

// TRACE_VERBOSITY is the lowest verbosity that logs every executed
// instruction.
const TRACE_VERBOSITY = 2

// Config is a run configuration.
type Config struct {
	Image     string   `toml:"image"`     // Program image to load.
	Source    string   `toml:"source"`    // Assembler source, loaded instead of the image.
	Input     []string `toml:"input"`     // Input scripts, replayed before live input.
	Echo      bool     `toml:"echo"`      // Echo scripted input to the output.
	Output    string   `toml:"output"`    // Console output file, or "-" for stdout.
	Snapshot  string   `toml:"snapshot"`  // Snapshot written when the run stops.
	Restore   string   `toml:"restore"`   // Snapshot to resume from instead of the image.
	MaxSteps  int      `toml:"max_steps"` // Instruction budget, 0 for unlimited.
	Verbosity int      `toml:"verbosity"` // Log verbosity.
	LogFile   string   `toml:"log_file"`  // Log destination, or stderr if empty.

	// Dir is the directory containing the configuration file (set at load time).
	Dir string `toml:"-"`
}

// Default returns the configuration used when there is no file.
func Default() (cfg *Config) {
	cfg = &Config{
		Output: "-",
		Dir:    ".",
	}
	return
}

// Parse parses TOML configuration text. Relative paths are resolved
// against dir.
func Parse(text string, dir string) (cfg *Config, err error) {
	cfg = Default()
	meta, err := toml.Decode(text, cfg)
	if err != nil {
		return
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = fmt.Errorf("%w: %v", ErrConfigKey, strings.Join(keys, ", "))
		return
	}

	cfg.Dir = dir
	cfg.Image = cfg.Path(cfg.Image)
	cfg.Source = cfg.Path(cfg.Source)
	cfg.Snapshot = cfg.Path(cfg.Snapshot)
	cfg.Restore = cfg.Path(cfg.Restore)
	cfg.LogFile = cfg.Path(cfg.LogFile)
	if cfg.Output != "-" {
		cfg.Output = cfg.Path(cfg.Output)
	}
	for n, input := range cfg.Input {
		cfg.Input[n] = cfg.Path(input)
	}

	return
}

// Load parses a configuration file.
func Load(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("cannot read %s: %w", path, err)
		return
	}

	cfg, err = Parse(string(data), filepath.Dir(path))
	if err != nil {
		err = fmt.Errorf("parse error in %s: %w", path, err)
		return
	}

	return
}

// Path resolves a configured path against the configuration directory.
// Empty and absolute paths are returned unchanged.
func (cfg *Config) Path(path string) string {
	if len(path) == 0 || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(cfg.Dir, path)
}

// SetTrace raises the verbosity so that instruction tracing is logged.
func (cfg *Config) SetTrace() {
	cfg.Verbosity = max(cfg.Verbosity, TRACE_VERBOSITY)
}

// Trace is true if the verbosity logs every executed instruction.
func (cfg *Config) Trace() bool {
	return cfg.Verbosity >= TRACE_VERBOSITY
}
