package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the critic configuration.
type Config struct {
	Model         string        `json:"model"`
	Temperature   float64       `json:"temperature"`
	MaxTokens     int           `json:"maxTokens"`
	ChunkSize     int           `json:"chunkSize"`
	ChunkOverlap  int           `json:"chunkOverlap"`
	Format        string        `json:"format"`
	FailOn        string        `json:"failOn"`
	MaxFileSizeMB int           `json:"maxFileSizeMB"`
	Cache         CacheConfig   `json:"cache"`
	Privacy       PrivacyConfig `json:"privacy"`
	Logging       LoggingConfig `json:"logging"`
}

// CacheConfig controls response caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls privacy/redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool     `json:"redactSecrets"`
	RedactPaths   []string `json:"redactPaths,omitempty"`
}

// LoggingConfig controls log level, format, and destination.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	Output string `json:"output"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Model:         "bigcode/starcoder",
		Temperature:   0.1,
		MaxTokens:     4096,
		ChunkSize:     800,
		ChunkOverlap:  100,
		Format:        "text",
		FailOn:        "none",
		MaxFileSizeMB: 10,
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*secrets*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for critic.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "critic"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "critic"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "critic"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "critic"), nil
	default:
		return filepath.Join(home, ".config", "critic"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
// The result is validated; invalid configuration fails here, not mid-pipeline.
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces the configuration bounds.
func (c Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", c.Temperature)
	}
	if c.ChunkSize < 100 || c.ChunkSize > 2000 {
		return fmt.Errorf("chunkSize must be between 100 and 2000, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunkOverlap must be non-negative and smaller than chunkSize, got %d", c.ChunkOverlap)
	}
	if c.MaxTokens < 1 || c.MaxTokens > 32768 {
		return fmt.Errorf("maxTokens must be between 1 and 32768, got %d", c.MaxTokens)
	}
	if c.MaxFileSizeMB < 1 {
		return fmt.Errorf("maxFileSizeMB must be positive, got %d", c.MaxFileSizeMB)
	}
	return nil
}

func mergeFile(dst *Config, src Config) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Temperature > 0 {
		dst.Temperature = src.Temperature
	}
	if src.MaxTokens > 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.ChunkSize > 0 {
		dst.ChunkSize = src.ChunkSize
	}
	if src.ChunkOverlap > 0 {
		dst.ChunkOverlap = src.ChunkOverlap
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.FailOn != "" {
		dst.FailOn = src.FailOn
	}
	if src.MaxFileSizeMB > 0 {
		dst.MaxFileSizeMB = src.MaxFileSizeMB
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	dst.Cache.Enabled = src.Cache.Enabled || dst.Cache.Enabled
	if len(src.Privacy.RedactPaths) > 0 {
		dst.Privacy.RedactPaths = src.Privacy.RedactPaths
	}
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
	if src.Logging.Output != "" {
		dst.Logging.Output = src.Logging.Output
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("CRITIC_MODEL"); v != "" {
		cfg.Model = v
	} else if v := os.Getenv("DEFAULT_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChunkSize = n
		}
	}
	if v := os.Getenv("CHUNK_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChunkOverlap = n
		}
	}
	if v := os.Getenv("CRITIC_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CRITIC_FAIL_ON"); v != "" {
		cfg.FailOn = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["temperature"]; ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = f
		}
	}
	if v, ok := overrides["chunkSize"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChunkSize = n
		}
	}
	if v, ok := overrides["chunkOverlap"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChunkOverlap = n
		}
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["failOn"]; ok && v != "" {
		cfg.FailOn = v
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "model":
		cfg.Model = value
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	case "chunkSize":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("chunkSize must be an integer: %w", err)
		}
		cfg.ChunkSize = n
	case "chunkOverlap":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("chunkOverlap must be an integer: %w", err)
		}
		cfg.ChunkOverlap = n
	case "format":
		cfg.Format = value
	case "failOn":
		cfg.FailOn = value
	case "maxFileSizeMB":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxFileSizeMB must be an integer: %w", err)
		}
		cfg.MaxFileSizeMB = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
