package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPaths []string // hcl files or directories

	LogFormat    string
	LogLevel     string
	OutputFormat string // text or json
	Strict       bool
}

func NewConfig(cfg Config) (*Config, error) {
	switch cfg.OutputFormat {
	case "":
		cfg.OutputFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid output format %q: must be 'text' or 'json'", cfg.OutputFormat)
	}
	for _, p := range cfg.ManifestPaths {
		if p == "" {
			return nil, fmt.Errorf("manifest paths must not be empty")
		}
	}
	return &cfg, nil
}
