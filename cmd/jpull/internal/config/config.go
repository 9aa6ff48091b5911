// Package config parses the command-line settings of the jpull tool.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jpull/bufpool"
	"github.com/creachadair/jpull/jpath"
	yaml "github.com/goccy/go-yaml"
)

var (
	ErrNegativeLimit = errors.New("limit must not be negative")
	ErrBadPoolConfig = errors.New("pool settings must not be negative")
)

// Config is the complete configuration of the jpull tool. Settings loaded
// from a file are overridden by flags given on the command line.
type Config struct {
	Pool   bufpool.Config `yaml:"pool"`
	Select string         `yaml:"select"` // JSONPath of values to print
	Limit  int            `yaml:"limit"`  // stop after this many values (0 = no limit)
	Stats  bool           `yaml:"stats"`  // print pool statistics on exit

	Inputs []string `yaml:"-"` // input files, "-" for stdin

	expr jpath.Expr
}

// Expr returns the parsed selection expression. It is valid after Validate
// has succeeded.
func (c *Config) Expr() jpath.Expr { return c.expr }

// Validate checks the settings of c and parses its selection expression.
func (c *Config) Validate() error {
	if c.Limit < 0 {
		return ErrNegativeLimit
	} else if c.Pool.MaxBuffers < 0 || c.Pool.MaxRetained < 0 {
		return ErrBadPoolConfig
	}
	sel := c.Select
	if sel == "" {
		sel = "$"
	}
	expr, err := jpath.Parse(sel)
	if err != nil {
		return fmt.Errorf("invalid selection %q: %w", sel, err)
	}
	c.expr = expr
	if len(c.Inputs) == 0 {
		c.Inputs = []string{"-"}
	}
	return nil
}

// Load reads settings from the YAML file at path. Unknown fields are
// reported as errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Parse parses command-line arguments and returns a validated Config. The
// first element of args is the program name. If help is requested, Parse
// returns flag.ErrHelp.
func Parse(args []string) (*Config, error) {
	name := "jpull"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		configFile  = fs.String("config", "", "Path to a YAML config file")
		maxBuffers  = fs.Int("max-buffers", 0, "Limit on live pool buffers (0 for default)")
		maxRetained = fs.Int("max-retained", 0, "Largest buffer capacity the pool retains (0 for default)")
		sel         = fs.String("select", "", "JSONPath expression selecting values to print")
		limit       = fs.Int("n", 0, "Stop after printing this many values (0 for no limit)")
		stats       = fs.Bool("stats", false, "Print buffer pool statistics to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := new(Config)
	if *configFile != "" {
		c, err := Load(*configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	// Flags given explicitly take precedence over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-buffers":
			cfg.Pool.MaxBuffers = *maxBuffers
		case "max-retained":
			cfg.Pool.MaxRetained = *maxRetained
		case "select":
			cfg.Select = *sel
		case "n":
			cfg.Limit = *limit
		case "stats":
			cfg.Stats = *stats
		}
	})
	cfg.Inputs = fs.Args()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jpull - flatten JSON documents into path = value lines

Usage: jpull [options] [file ...]

Each input file ("-" or none for stdin) must hold a single JSON value.
Each scalar value, or empty container, is printed on one line as its
JSONPath location followed by its value in JSON syntax.

Options:
  -config FILE        Read settings from a YAML file; flags override it
  -select EXPR        Print only values at or below paths matching EXPR
                      (e.g. $.items[*].id, $..name, $.a[0:3])
  -n N                Stop after printing N values
  -max-buffers N      Limit on live buffers in the pool
  -max-retained N     Largest buffer capacity, in bytes, the pool retains
  -stats              Print buffer pool statistics to stderr
  -h, -help           Show this help message

Config file keys:
  pool: {max_buffers: N, max_retained: N}
  select: EXPR
  limit: N
  stats: true|false
`
}
