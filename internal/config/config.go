package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI defaults loaded from a YAML file.
type Config struct {
	// Exclude prunes walk entries before they reach a snapshot.
	Exclude []string `yaml:"exclude"`

	// Algorithm names the content digest for binary comparisons.
	Algorithm string `yaml:"algorithm"`

	// Workers bounds the hashing fan-out; 0 picks a default from the CPU
	// count.
	Workers int `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Exclude: []string{
			".git/",
			".svn/",
			"node_modules/",
			"__pycache__/",
			"*.tmp",
			"*.swp",
			".DS_Store",
			"Thumbs.db",
		},
		Algorithm: "md5",
	}
}

// LoadConfig reads the YAML config at path. A missing file is not an error;
// the defaults apply.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = "md5"
	}

	return &cfg, nil
}
