package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root string `yaml:"root"`
	} `yaml:"project"`
	Model struct {
		// Files are doublestar globs selecting candidate model files,
		// e.g. "**/models.py".
		Files    []string `yaml:"files"`
		Language string   `yaml:"language"`
		Markers  struct {
			Bases      []string `yaml:"bases"`
			Decorators []string `yaml:"decorators"`
		} `yaml:"markers"`
	} `yaml:"model"`
	Contract struct {
		Path string `yaml:"path"`
	} `yaml:"contract"`
	Diff struct {
		RenameThreshold float64 `yaml:"rename_threshold"`
	} `yaml:"diff"`
	Match struct {
		StripAffixes []string `yaml:"strip_affixes"`
	} `yaml:"match"`
	Validate struct {
		StrictRemovals bool `yaml:"strict_removals"`
	} `yaml:"validate"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.Project.Root = "."
	cfg.Model.Files = []string{"**/models.py", "**/models/*.py"}
	cfg.Model.Language = "python"
	cfg.Contract.Path = "openapi.yaml"
	cfg.Diff.RenameThreshold = 0.6
	return cfg
}

// LoadConfig reads the YAML config at path and applies .env and
// environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if contract := os.Getenv("MODELGUARD_CONTRACT"); contract != "" {
		cfg.Contract.Path = contract
	}
	if lang := os.Getenv("MODELGUARD_LANGUAGE"); lang != "" {
		cfg.Model.Language = lang
	}
	if threshold := os.Getenv("MODELGUARD_RENAME_THRESHOLD"); threshold != "" {
		if v, err := strconv.ParseFloat(threshold, 64); err == nil {
			cfg.Diff.RenameThreshold = v
		}
	}
	if strict := os.Getenv("MODELGUARD_STRICT_REMOVALS"); strict != "" {
		if v, err := strconv.ParseBool(strict); err == nil {
			cfg.Validate.StrictRemovals = v
		}
	}

	if cfg.Diff.RenameThreshold <= 0 || cfg.Diff.RenameThreshold > 1 {
		return nil, fmt.Errorf("diff.rename_threshold must be in (0, 1], got %v", cfg.Diff.RenameThreshold)
	}

	return cfg, nil
}
