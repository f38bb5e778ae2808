package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// config holds the output settings. A YAML config file supplies defaults and
// flags given on the command line override them.
type config struct {
	// Format is the fmt verb for results.
	Format string `yaml:"format"`
	// Prec is the precision of calculations in bits. 0 uses float64.
	Prec uint `yaml:"prec"`
	// ShowExpression prints each input expression before its result.
	ShowExpression bool `yaml:"show_expression"`
	// Tree prints each parse tree before its result.
	Tree bool `yaml:"tree"`
	// Dot prints each parse tree as a Graphviz digraph instead of evaluating.
	Dot bool `yaml:"dot"`
	// Lines treats each input line as a separate expression.
	Lines bool `yaml:"lines"`
}

func defaultConfig() config {
	return config{Format: "%g"}
}

// loadConfig reads a YAML config file over the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Format == "" {
		cfg.Format = "%g"
	}
	return cfg, nil
}

// override copies settings from flags that were set explicitly.
func (cfg *config) override(flags *pflag.FlagSet, from config) {
	if flags.Changed("fmt") {
		cfg.Format = from.Format
	}
	if flags.Changed("prec") {
		cfg.Prec = from.Prec
	}
	if flags.Changed("show-expression") {
		cfg.ShowExpression = from.ShowExpression
	}
	if flags.Changed("tree") {
		cfg.Tree = from.Tree
	}
	if flags.Changed("dot") {
		cfg.Dot = from.Dot
	}
	if flags.Changed("lines") {
		cfg.Lines = from.Lines
	}
}
