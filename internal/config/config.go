// Package config loads configuration for deskcontrol.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr    = "0.0.0.0:8787"
	defaultPeerAddr      = "127.0.0.1:27183"
	defaultDataDir       = "./data"
	defaultDialTimeoutMs = 3000
	defaultScreenWidth   = 1080
	defaultScreenHeight  = 1920
	defaultLogLevel      = "info"
	defaultMetrics       = true
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr     string
	PeerAddr       string
	UIPassword     string
	DataDir        string
	ConfigFile     string
	DialTimeout    time.Duration
	ScreenWidth    int
	ScreenHeight   int
	LogLevel       string
	MetricsEnabled bool
}

// fileConfig mirrors the optional YAML config file. Zero values are ignored.
type fileConfig struct {
	ListenAddr     string `yaml:"listen_addr"`
	PeerAddr       string `yaml:"peer_addr"`
	DialTimeoutMs  int    `yaml:"dial_timeout_ms"`
	ScreenWidth    int    `yaml:"screen_width"`
	ScreenHeight   int    `yaml:"screen_height"`
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled *bool  `yaml:"metrics_enabled"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. <dataDir>/.env is loaded into
// the environment first and fills only unset variables, so its values rank with
// the environment above the YAML file. An empty dataDir falls back to DATA_DIR
// and then ./data.
func Load(dataDir string) (Config, error) {
	if dataDir == "" {
		dataDir = envString("DATA_DIR", defaultDataDir)
	}
	cfg := Config{
		ListenAddr:     defaultListenAddr,
		PeerAddr:       defaultPeerAddr,
		DataDir:        dataDir,
		DialTimeout:    defaultDialTimeoutMs * time.Millisecond,
		ScreenWidth:    defaultScreenWidth,
		ScreenHeight:   defaultScreenHeight,
		LogLevel:       defaultLogLevel,
		MetricsEnabled: defaultMetrics,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ConfigFile = envString("CONFIG_FILE", filepath.Join(cfg.DataDir, "config.yaml"))
	if err := loadYAMLFile(cfg.ConfigFile, &cfg); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.PeerAddr = envString("PEER_ADDR", cfg.PeerAddr)
	cfg.LogLevel = strings.ToLower(envString("LOG_LEVEL", cfg.LogLevel))
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))
	cfg.MetricsEnabled = envBool("METRICS_ENABLED", cfg.MetricsEnabled)

	dialMs, err := envInt("DIAL_TIMEOUT_MS", int(cfg.DialTimeout/time.Millisecond))
	if err != nil {
		return Config{}, err
	}
	if dialMs <= 0 {
		return Config{}, fmt.Errorf("DIAL_TIMEOUT_MS must be > 0")
	}
	cfg.DialTimeout = time.Duration(dialMs) * time.Millisecond

	width, err := envInt("SCREEN_WIDTH", cfg.ScreenWidth)
	if err != nil {
		return Config{}, err
	}
	if width <= 0 || width > math.MaxUint16 {
		return Config{}, fmt.Errorf("SCREEN_WIDTH must be 1-%d", math.MaxUint16)
	}
	cfg.ScreenWidth = width

	height, err := envInt("SCREEN_HEIGHT", cfg.ScreenHeight)
	if err != nil {
		return Config{}, err
	}
	if height <= 0 || height > math.MaxUint16 {
		return Config{}, fmt.Errorf("SCREEN_HEIGHT must be 1-%d", math.MaxUint16)
	}
	cfg.ScreenHeight = height

	if strings.TrimSpace(cfg.PeerAddr) == "" {
		return Config{}, errors.New("PEER_ADDR is required")
	}
	if cfg.UIPassword == "" {
		return Config{}, errors.New("UI_PASSWORD is required")
	}

	return cfg, nil
}

// loadYAMLFile applies non-zero values from a YAML config file. Missing files are ignored.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	if fc.PeerAddr != "" {
		cfg.PeerAddr = fc.PeerAddr
	}
	if fc.DialTimeoutMs != 0 {
		cfg.DialTimeout = time.Duration(fc.DialTimeoutMs) * time.Millisecond
	}
	if fc.ScreenWidth != 0 {
		cfg.ScreenWidth = fc.ScreenWidth
	}
	if fc.ScreenHeight != 0 {
		cfg.ScreenHeight = fc.ScreenHeight
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.MetricsEnabled != nil {
		cfg.MetricsEnabled = *fc.MetricsEnabled
	}
	return nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file without overriding the environment.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(strings.TrimSpace(value), `"'`)
	return key, value, true
}
