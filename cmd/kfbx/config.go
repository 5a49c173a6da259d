package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the optional YAML configuration file. Command line flags take
// precedence over it.
type config struct {
	Format          string `yaml:"format"`
	Debug           bool   `yaml:"debug"`
	SummarizeArrays bool   `yaml:"summarize_arrays"`
	MaxInputSize    int64  `yaml:"max_input_size"`
	QueryCacheSize  int    `yaml:"query_cache_size"`
}

func defaultConfig() config {
	return config{Format: "text"}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c config) validate() error {
	if !validFormat(c.Format) {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("max_input_size must not be negative")
	}
	if c.QueryCacheSize < 0 {
		return fmt.Errorf("query_cache_size must not be negative")
	}
	return nil
}

func validFormat(s string) bool {
	switch s {
	case "text", "json", "yaml":
		return true
	}
	return false
}
