package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	AppName    = "Deutsch-Tagebuch"
	AppVersion = "2.0.0"
)

// Correction provider modes.
const (
	ProviderRemote = "remote"
	ProviderLocal  = "local"
)

type Config struct {
	Addr       string           `toml:"addr"`
	DataDir    string           `toml:"data_dir"`
	DBPath     string           `toml:"db_path"`
	StaticDir  string           `toml:"static_dir"`
	LogLevel   string           `toml:"log_level"`
	NodeID     int64            `toml:"node_id"`
	Correction CorrectionConfig `toml:"correction"`
	Editor     EditorConfig     `toml:"editor"`
}

// CorrectionConfig selects and tunes the grammar correction binding.
type CorrectionConfig struct {
	Provider    string        `toml:"provider"` // remote or local
	LocalURL    string        `toml:"local_url"`
	LocalModel  string        `toml:"local_model"`
	ProxyURL    string        `toml:"proxy_url"`
	Timeout     time.Duration `toml:"timeout"`
	InitTimeout time.Duration `toml:"init_timeout"`
	RateLimit   int           `toml:"rate_limit"`
}

// EditorConfig holds the debounced enrichment parameters.
type EditorConfig struct {
	Debounce   time.Duration `toml:"debounce"`
	SessionTTL time.Duration `toml:"session_ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:     ":8080",
		DataDir:  "./data",
		LogLevel: "info",
		NodeID:   1,
		Correction: CorrectionConfig{
			Provider:    ProviderRemote,
			LocalURL:    "http://127.0.0.1:11434/v1",
			LocalModel:  "qwen2.5:3b",
			Timeout:     60 * time.Second,
			InitTimeout: 5 * time.Minute,
			RateLimit:   5,
		},
		Editor: EditorConfig{
			Debounce:   1500 * time.Millisecond,
			SessionTTL: 30 * time.Minute,
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file named by
// TAGEBUCH_CONFIG, and TAGEBUCH_* environment variables, in that order.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("TAGEBUCH_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "tagebuch.db")
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = detectStaticDir()
	}
	cfg.DBPath = filepath.Clean(cfg.DBPath)
	cfg.DataDir = filepath.Clean(cfg.DataDir)
	cfg.StaticDir = filepath.Clean(cfg.StaticDir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration values the server cannot run with.
func (c Config) Validate() error {
	switch c.Correction.Provider {
	case ProviderRemote, ProviderLocal:
	default:
		return fmt.Errorf("invalid correction provider %q (want %s or %s)", c.Correction.Provider, ProviderRemote, ProviderLocal)
	}
	if c.Editor.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", c.Editor.Debounce)
	}
	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("node id must be within 0-1023, got %d", c.NodeID)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Addr, "TAGEBUCH_ADDR")
	setString(&cfg.DataDir, "TAGEBUCH_DATA_DIR")
	setString(&cfg.DBPath, "TAGEBUCH_DB_PATH")
	setString(&cfg.StaticDir, "TAGEBUCH_STATIC_DIR")
	setString(&cfg.LogLevel, "TAGEBUCH_LOG_LEVEL")
	setString(&cfg.Correction.Provider, "TAGEBUCH_PROVIDER")
	setString(&cfg.Correction.LocalURL, "TAGEBUCH_LOCAL_URL")
	setString(&cfg.Correction.LocalModel, "TAGEBUCH_LOCAL_MODEL")
	setString(&cfg.Correction.ProxyURL, "TAGEBUCH_PROXY_URL")

	if err := setInt64(&cfg.NodeID, "TAGEBUCH_NODE_ID"); err != nil {
		return err
	}
	if err := setInt(&cfg.Correction.RateLimit, "TAGEBUCH_AI_RATE_LIMIT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Correction.Timeout, "TAGEBUCH_CORRECTION_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Correction.InitTimeout, "TAGEBUCH_INIT_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Editor.Debounce, "TAGEBUCH_DEBOUNCE"); err != nil {
		return err
	}
	return setDuration(&cfg.Editor.SessionTTL, "TAGEBUCH_SESSION_TTL")
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setInt(dst *int, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = d
	return nil
}

func detectStaticDir() string {
	candidates := []string{
		"./web",
		"./frontend/dist",
		"../frontend/dist",
	}
	for _, candidate := range candidates {
		indexPath := filepath.Join(candidate, "index.html")
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return "./web"
}
