package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMiner loads Miner configuration.
// Search order: customPath -> ~/.arcade/configs/miner.yaml -> ./configs/miner.yaml -> embedded default
func LoadMiner(customPath string) (MinerConfig, error) {
	return load("miner.yaml", customPath, defaultMinerYAML, DefaultMinerConfig)
}

// LoadBigFish loads BigFish configuration.
// Search order: customPath -> ~/.arcade/configs/bigfish.yaml -> ./configs/bigfish.yaml -> embedded default
func LoadBigFish(customPath string) (BigFishConfig, error) {
	return load("bigfish.yaml", customPath, defaultBigFishYAML, DefaultBigFishConfig)
}

// load decodes onto the hard-coded defaults so partial files only override
// the keys they set.
func load[T any](filename, customPath string, embedded []byte, fallback func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
