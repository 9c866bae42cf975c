package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/pronsSec/subnet-siphon/pkg/api/siphon"
	"github.com/pronsSec/subnet-siphon/pkg/output"
	"github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"
)

// FileName is the location of the user config, relative to the XDG config directories.
const FileName = "subnet-siphon/config.yaml"

const (
	DefaultOutputCSV     = "processed_subnets.csv"
	DefaultOutputText    = "processed_subnets.txt"
	DefaultPartitionSize = 100000
	DefaultChunkSize     = 100000
)

func Default() *siphon.Config {
	return &siphon.Config{
		OutputCSV:     DefaultOutputCSV,
		OutputText:    DefaultOutputText,
		PartitionSize: DefaultPartitionSize,
		ChunkSize:     DefaultChunkSize,
	}
}

// Load reads a YAML config file. Settings missing in the file keep their defaults.
func Load(path string) (*siphon.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Find looks up FileName in the XDG config directories.
func Find() (string, bool) {
	path, err := xdg.SearchConfigFile(FileName)
	if err != nil {
		return "", false
	}
	return path, true
}

func Validate(cfg *siphon.Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.PartitionSize < 0 {
		return fmt.Errorf("partition size must not be negative, got %d", cfg.PartitionSize)
	}
	if cfg.ChunkSize < 0 {
		return fmt.Errorf("chunk size must not be negative, got %d", cfg.ChunkSize)
	}
	if cfg.OutputCSV == output.Stdout && cfg.OutputText == output.Stdout {
		return fmt.Errorf("only one output can be written to %q", output.Stdout)
	}
	if cfg.LogLevel != "" {
		if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

// Init writes the default config to path. Existing files are never overwritten.
func Init(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0660)
}
