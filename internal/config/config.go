package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dokzlo13/wallslapper/internal/color"
	"github.com/dokzlo13/wallslapper/internal/schedule"
	"github.com/dokzlo13/wallslapper/internal/state"
)

// Config represents the application configuration
type Config struct {
	Log             LogConfig         `yaml:"log"`
	State           StateConfig       `yaml:"state"`
	Database        DatabaseConfig    `yaml:"database"`
	Ledger          LedgerConfig      `yaml:"ledger"`
	Render          RenderConfig      `yaml:"render"`
	Wallpaper       WallpaperConfig   `yaml:"wallpaper"`
	Daemon          DaemonConfig      `yaml:"daemon"`
	Healthcheck     HealthcheckConfig `yaml:"healthcheck"`
	Webhook         WebhookConfig     `yaml:"webhook"`
	Timezone        string            `yaml:"timezone"`
	Schedule        schedule.Schedule `yaml:"schedule"`
	Palettes        []Palette         `yaml:"palettes"`
	Script          string            `yaml:"script"`
	ShutdownTimeout Duration          `yaml:"shutdown_timeout"` // General shutdown timeout for graceful stops
}

// Palette is a named, ordered color sequence used by pinwheel
type Palette struct {
	Name   string        `yaml:"name"`
	Colors []color.Color `yaml:"colors"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Colors bool   `yaml:"colors"`
	JSON   bool   `yaml:"json"`
}

// StateConfig selects where the current color is persisted
type StateConfig struct {
	Backend string `yaml:"backend"` // "file" (default) or "sqlite"
	Path    string `yaml:"path"`    // File backend only (default: ~/.wallslappercurrent)
	Slot    string `yaml:"slot"`    // SQLite backend only (default: "desktop")
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LedgerConfig contains transition history settings
type LedgerConfig struct {
	Enabled         *bool    `yaml:"enabled"` // Default: true
	CleanupInterval Duration `yaml:"cleanup_interval"`
	RetentionDays   *int     `yaml:"retention_days"` // Default: 30, 0 keeps entries forever
}

// RenderConfig contains image generation settings
type RenderConfig struct {
	Dir  string `yaml:"dir"`  // Default: os.TempDir()
	Size int    `yaml:"size"` // Default: 256
}

// WallpaperConfig contains wallpaper setter settings
type WallpaperConfig struct {
	Commands [][]string `yaml:"commands"` // Empty = platform default
	Timeout  Duration   `yaml:"timeout"`  // Per command
	MaxRPS   float64    `yaml:"max_rps"`  // 0 = unlimited
}

// DaemonConfig contains settings for the schedule-following daemon
type DaemonConfig struct {
	PollInterval Duration  `yaml:"poll_interval"` // How often the schedule is resolved (default: 1m)
	Transition   *Duration `yaml:"transition"`    // Duration of scheduled transitions (default: 5m, 0s = instant)
	QueueSize    int       `yaml:"queue_size"`    // Pending transition requests (default: 16)
}

// HealthcheckConfig contains health check server settings
type HealthcheckConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// WebhookConfig contains settings for the daemon's HTTP control endpoint
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// IsEnabled returns whether the ledger is enabled (default true)
func (c *LedgerConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// RetentionPeriod returns the retention as a duration. Zero means entries are kept forever.
func (c *LedgerConfig) RetentionPeriod() time.Duration {
	days := defaultRetentionDays
	if c.RetentionDays != nil {
		days = *c.RetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// TransitionDuration returns the duration of scheduled transitions
func (c *DaemonConfig) TransitionDuration() time.Duration {
	if c.Transition == nil {
		return defaultTransition
	}
	return c.Transition.Duration()
}

// Location returns the configured timezone, falling back to time.Local
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Palette implements transition.PaletteSource. The first palette with the name wins.
func (c *Config) Palette(name string) ([]color.Color, bool) {
	for _, p := range c.Palettes {
		if p.Name == name {
			return p.Colors, true
		}
	}
	return nil, false
}

// PaletteNames returns configured palette names in order
func (c *Config) PaletteNames() []string {
	names := make([]string, 0, len(c.Palettes))
	for _, p := range c.Palettes {
		names = append(names, p.Name)
	}
	return names
}

const (
	defaultRetentionDays = 30
	defaultTransition    = 5 * time.Minute
)

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Existing variables are not overridden. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load reads and parses the configuration file.
// A missing file yields the defaults, so the CLI works without configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return Parse(data)
}

// Parse parses configuration from YAML bytes and applies defaults
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	// State defaults
	if cfg.State.Backend == "" {
		cfg.State.Backend = "file"
	}
	if cfg.State.Path == "" {
		p, err := state.DefaultPath()
		if err != nil {
			return err
		}
		cfg.State.Path = p
	}
	cfg.State.Path = expandHome(cfg.State.Path)

	if cfg.Database.Path == "" {
		cfg.Database.Path = "~/.wallslapper.sqlite"
	}
	cfg.Database.Path = expandHome(cfg.Database.Path)
	cfg.Render.Dir = expandHome(cfg.Render.Dir)
	cfg.Script = expandHome(cfg.Script)

	// Ledger defaults
	if cfg.Ledger.CleanupInterval == 0 {
		cfg.Ledger.CleanupInterval = Duration(24 * time.Hour)
	}
	if cfg.Ledger.RetentionDays == nil {
		days := defaultRetentionDays
		cfg.Ledger.RetentionDays = &days
	}

	// Daemon defaults
	if cfg.Daemon.PollInterval == 0 {
		cfg.Daemon.PollInterval = Duration(time.Minute)
	}
	if cfg.Daemon.Transition == nil {
		d := Duration(defaultTransition)
		cfg.Daemon.Transition = &d
	}
	if cfg.Daemon.QueueSize <= 0 {
		cfg.Daemon.QueueSize = 16
	}

	// Healthcheck defaults
	if cfg.Healthcheck.Port == 0 {
		cfg.Healthcheck.Port = 9090
	}
	if cfg.Healthcheck.Host == "" {
		cfg.Healthcheck.Host = "127.0.0.1"
	}

	// Webhook defaults
	if cfg.Webhook.Port == 0 {
		cfg.Webhook.Port = 8090
	}
	if cfg.Webhook.Host == "" {
		cfg.Webhook.Host = "127.0.0.1"
	}

	// General shutdown timeout
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = Duration(5 * time.Second)
	}

	return nil
}

func (cfg *Config) validate() error {
	switch cfg.State.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("state.backend: unknown backend %q (want file or sqlite)", cfg.State.Backend)
	}

	if _, err := cfg.Location(); err != nil {
		return err
	}

	if cfg.Daemon.PollInterval.Duration() < 0 || cfg.Daemon.TransitionDuration() < 0 {
		return errors.New("daemon: durations must not be negative")
	}
	if cfg.Ledger.RetentionDays != nil && *cfg.Ledger.RetentionDays < 0 {
		return errors.New("ledger.retention_days must not be negative")
	}

	seen := make(map[string]bool)
	for i, p := range cfg.Palettes {
		if p.Name == "" {
			return fmt.Errorf("palettes[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("palettes[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}

	for i, cmd := range cfg.Wallpaper.Commands {
		if len(cmd) == 0 {
			return fmt.Errorf("wallpaper.commands[%d]: empty command", i)
		}
	}

	return nil
}

// GetShutdownTimeout returns the shutdown timeout as a time.Duration
func (cfg *Config) GetShutdownTimeout() time.Duration {
	return cfg.ShutdownTimeout.Duration()
}

// expandHome replaces a leading "~" with the user's home directory
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	// Match ${VAR} or ${VAR:default}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
