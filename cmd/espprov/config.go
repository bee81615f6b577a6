package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/espprov/espprov-go/pkg/connection"
	"github.com/espprov/espprov-go/pkg/discovery"
	"github.com/espprov/espprov-go/pkg/transport"
)

// Config holds the CLI settings. Values come from defaults, then the
// config file, then explicitly set flags.
type Config struct {
	ServiceUUID string            `yaml:"service_uuid" toml:"service_uuid"`
	NamePrefix  string            `yaml:"name_prefix" toml:"name_prefix"`
	MDNSService string            `yaml:"mdns_service" toml:"mdns_service"`
	Fallback    map[string]string `yaml:"fallback" toml:"fallback"`
	Timeout     time.Duration     `yaml:"timeout" toml:"timeout"`
	LogLevel    string            `yaml:"log_level" toml:"log_level"`
	ProtocolLog string            `yaml:"protocol_log" toml:"protocol_log"`
	HistoryDB   string            `yaml:"history_db" toml:"history_db"`
	HCIDevice   int               `yaml:"hci_device" toml:"hci_device"`

	// Poll paces --wait status polling.
	Poll connection.BackoffConfig `yaml:"poll" toml:"poll"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	poll := connection.DefaultBackoffConfig()
	poll.MaxAttempts = 20
	return Config{
		ServiceUUID: transport.DefaultServiceUUID,
		NamePrefix:  discovery.DefaultNamePrefix,
		MDNSService: discovery.DefaultMDNSService,
		Fallback:    transport.DefaultFallbackTable(),
		Timeout:     30 * time.Second,
		LogLevel:    "info",
		HistoryDB:   defaultHistoryPath(),
		Poll:        poll,
	}
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "espprov", "history.db")
}

// fileConfig mirrors Config for TOML decoding so the key set can be
// checked with meta.IsDefined.
type fileConfig struct {
	ServiceUUID string                   `toml:"service_uuid"`
	NamePrefix  string                   `toml:"name_prefix"`
	MDNSService string                   `toml:"mdns_service"`
	Fallback    map[string]string        `toml:"fallback"`
	Timeout     time.Duration            `toml:"timeout"`
	LogLevel    string                   `toml:"log_level"`
	ProtocolLog string                   `toml:"protocol_log"`
	HistoryDB   string                   `toml:"history_db"`
	HCIDevice   int                      `toml:"hci_device"`
	Poll        connection.BackoffConfig `toml:"poll"`
}

// LoadConfig overlays the file at path onto DefaultConfig. The format is
// chosen by extension: .yaml, .yml or .toml.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		// Absent keys keep the defaults already in cfg.
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	case ".toml":
		if err := loadTOML(path, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("load config %s: unsupported format (use .yaml or .toml)", path)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func loadTOML(path string, cfg *Config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("service_uuid") {
		cfg.ServiceUUID = strings.TrimSpace(raw.ServiceUUID)
	}
	if meta.IsDefined("name_prefix") {
		cfg.NamePrefix = raw.NamePrefix
	}
	if meta.IsDefined("mdns_service") {
		cfg.MDNSService = strings.TrimSpace(raw.MDNSService)
	}
	if meta.IsDefined("fallback") {
		cfg.Fallback = raw.Fallback
	}
	if meta.IsDefined("timeout") {
		cfg.Timeout = raw.Timeout
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("protocol_log") {
		cfg.ProtocolLog = strings.TrimSpace(raw.ProtocolLog)
	}
	if meta.IsDefined("history_db") {
		cfg.HistoryDB = strings.TrimSpace(raw.HistoryDB)
	}
	if meta.IsDefined("hci_device") {
		cfg.HCIDevice = raw.HCIDevice
	}
	if meta.IsDefined("poll", "initial") {
		cfg.Poll.Initial = raw.Poll.Initial
	}
	if meta.IsDefined("poll", "max") {
		cfg.Poll.Max = raw.Poll.Max
	}
	if meta.IsDefined("poll", "multiplier") {
		cfg.Poll.Multiplier = raw.Poll.Multiplier
	}
	if meta.IsDefined("poll", "jitter") {
		cfg.Poll.Jitter = raw.Poll.Jitter
	}
	if meta.IsDefined("poll", "max_attempts") {
		cfg.Poll.MaxAttempts = raw.Poll.MaxAttempts
	}
	return nil
}

func (c Config) validate() error {
	if c.ServiceUUID != "" {
		if _, err := transport.NormalizeUUID(c.ServiceUUID); err != nil {
			return fmt.Errorf("service_uuid: %w", err)
		}
	}
	for ep, uuid := range c.Fallback {
		if _, err := transport.NormalizeUUID(uuid); err != nil {
			return fmt.Errorf("fallback %s: %w", ep, err)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.HCIDevice < 0 {
		return fmt.Errorf("hci_device must not be negative")
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", s)
	}
}
