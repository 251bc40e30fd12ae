package wizard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete wizard configuration for YAML serialization.
type Config struct {
	Scan   ScanConfigYAML   `yaml:"scan"`
	Output OutputConfigYAML `yaml:"output"`
}

// ScanConfigYAML holds scan settings with YAML tags for serialization.
type ScanConfigYAML struct {
	InputDir    string `yaml:"input_dir"`
	Recursive   bool   `yaml:"recursive"`
	Workers     int    `yaml:"workers"`
	Columns     string `yaml:"columns,omitempty"`
	NoIntensity bool   `yaml:"no_intensity"`
	Limit       int    `yaml:"limit,omitempty"`
}

// OutputConfigYAML holds output settings with YAML tags.
type OutputConfigYAML struct {
	CSVPath     string `yaml:"csv_path,omitempty"`
	PreviewsDir string `yaml:"previews_dir,omitempty"`
}

// LoadFromYAML reads a scan configuration from a YAML file.
func LoadFromYAML(path string) (*ScanState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	state := &ScanState{}
	state.Scan.InputDir = cfg.Scan.InputDir
	state.Scan.Recursive = cfg.Scan.Recursive
	state.Scan.Workers = cfg.Scan.Workers
	state.Scan.Columns = cfg.Scan.Columns
	state.Scan.NoIntensity = cfg.Scan.NoIntensity
	state.Scan.Limit = cfg.Scan.Limit
	state.Scan.CSVPath = cfg.Output.CSVPath
	state.Scan.PreviewsDir = cfg.Output.PreviewsDir

	return state, nil
}

// SaveToYAML writes the scan configuration to a YAML file.
func SaveToYAML(state *ScanState, path string) error {
	cfg := Config{
		Scan: ScanConfigYAML{
			InputDir:    state.Scan.InputDir,
			Recursive:   state.Scan.Recursive,
			Workers:     state.Scan.Workers,
			Columns:     state.Scan.Columns,
			NoIntensity: state.Scan.NoIntensity,
			Limit:       state.Scan.Limit,
		},
		Output: OutputConfigYAML{
			CSVPath:     state.Scan.CSVPath,
			PreviewsDir: state.Scan.PreviewsDir,
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
