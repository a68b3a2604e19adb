// Package config assembles a run's Config from CLI flags, an optional
// YAML overlay, and struct-tag validation, the same layering the
// teacher repo uses for its server binaries.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/percolate/pkg/errs"
)

// Config holds everything one run of the percolation pipeline needs.
type Config struct {
	EdgeListPath  string `yaml:"edge_list_path" validate:"required"`
	OutputDir     string `yaml:"output_dir" validate:"required"`
	MinCliqueSize int    `yaml:"min_clique_size" validate:"gte=3"`
	MaxK          int    `yaml:"max_k" validate:"gte=0"`
	StringIDs     bool   `yaml:"string_ids"`
	FilterBits    int64  `yaml:"filter_bits" validate:"gt=0"`
	HashSeed      string `yaml:"hash_seed"`
	MetricsAddr   string `yaml:"metrics_addr"`
	TUI           bool   `yaml:"tui"`
}

// DefaultFilterBits matches percolation.DefaultFilterBits without
// importing pkg/percolation, keeping config flag-parsing dependency-free.
const DefaultFilterBits = 10_000_000_000

// ParseFlags builds a Config from the CLI, matching the contract
// "[-k N] [--stringIDs] ... <edge_list_path> <output_dir>". Flags must
// come before the two positional arguments, since flag parsing stops at
// the first non-flag argument. A --config path, if given, is applied
// after the flags as a YAML overlay: fields it names override the flag
// values.
func ParseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("percolate", flag.ContinueOnError)

	configPath := fs.String("config", "", "optional YAML config file overlaid on top of the parsed flags")
	k := fs.Int("k", 3, "minimum clique size / starting percolation level")
	maxK := fs.Int("max-k", 0, "maximum percolation level (0 = derive from the largest clique found)")
	stringIDs := fs.Bool("stringIDs", false, "treat edge-list tokens as arbitrary node names instead of integers")
	filterBits := fs.Int64("filter-bits", DefaultFilterBits, "bloom filter bit-array size used by the percolation search tree")
	hashSeed := fs.String("hash-seed", "percolate", "seed for the bloom filter's keyed hash, for reproducible runs")
	metricsAddr := fs.String("metrics-addr", "", "if set, serve Prometheus metrics on this address for the run's duration")
	tui := fs.Bool("tui", false, "show a live terminal dashboard instead of structured log lines")

	if err := fs.Parse(args); err != nil {
		return nil, errs.InvalidArgument("config.ParseFlags", err.Error())
	}

	cfg := &Config{
		MinCliqueSize: *k,
		MaxK:          *maxK,
		StringIDs:     *stringIDs,
		FilterBits:    *filterBits,
		HashSeed:      *hashSeed,
		MetricsAddr:   *metricsAddr,
		TUI:           *tui,
	}

	if *configPath != "" {
		if err := overlayYAML(cfg, *configPath); err != nil {
			return nil, err
		}
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return nil, errs.InvalidArgument("config.ParseFlags", fmt.Sprintf("expected exactly 2 positional args <edge_list_path> <output_dir>, got %d", len(rest)))
	}
	cfg.EdgeListPath, cfg.OutputDir = rest[0], rest[1]

	if cfg.MaxK == 0 {
		cfg.MaxK = 1 << 30 // effectively unbounded; Engine clamps to the largest clique found
	}

	return cfg, nil
}

// overlayYAML merges field values from the YAML file at path into cfg,
// overriding whatever flag.Parse already set for the fields it
// mentions and leaving every other field untouched.
func overlayYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.IoError("config.overlayYAML", path, err)
	}
	base := *cfg
	if err := yaml.Unmarshal(data, &base); err != nil {
		return errs.MalformedInput("config.overlayYAML", path, err)
	}
	*cfg = base
	return nil
}
