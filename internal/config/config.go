package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppConfig is the root application configuration structure.
type AppConfig struct {
	// DataDir holds the corpus snapshot.
	DataDir string `yaml:"data_dir"`
	// VocabularyCap bounds the active feature set used for vectors.
	VocabularyCap int `yaml:"vocabulary_cap"`
	// SimilarityFloor excludes results scoring at or below it.
	SimilarityFloor float64 `yaml:"similarity_floor"`
	// TopK is the default result count for searches.
	TopK int `yaml:"top_k"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./recall.yaml first, then ~/.config/recall/config.yaml.
// If neither exists, it writes defaults to ~/.config/recall/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "recall.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "recall", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DataDir = filepath.Join(home, ".local", "share", "recall")
		} else {
			cfg.DataDir = "."
		}
	}
	if cfg.VocabularyCap == 0 {
		cfg.VocabularyCap = 5000
	}
	if cfg.SimilarityFloor == 0 {
		cfg.SimilarityFloor = 0.01
	}
	if cfg.TopK == 0 {
		cfg.TopK = 5
	}
}
