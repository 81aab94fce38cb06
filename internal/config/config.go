package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete teamboard configuration
type Config struct {
	Wizard  WizardConfig  `mapstructure:"wizard"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// WizardConfig controls how onboarding wizards load and remember progress
type WizardConfig struct {
	// Mirror selects where the current step is mirrored between runs.
	// Options: "file" (default), "query", "memory", "none"
	Mirror string `mapstructure:"mirror"`
	// MirrorKey is the query parameter carrying the step id when Mirror is
	// "query" (default: "step")
	MirrorKey string `mapstructure:"mirror_key"`
	// ResumeURL is the base link the "query" mirror writes the step into.
	ResumeURL string `mapstructure:"resume_url"`
	// FlowFile overrides the built-in flow for the session's role.
	FlowFile string `mapstructure:"flow_file"`
	// StateDir holds mirrored positions. Empty means <config dir>/state.
	StateDir string `mapstructure:"state_dir"`
}

// SessionConfig controls where the signed-in session is stored
type SessionConfig struct {
	// Dir holds auth.json. Empty means the config directory.
	Dir string `mapstructure:"dir"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is written (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is where teamboard.log is written. Empty means the config directory.
	Dir string `mapstructure:"dir"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is the color theme: "default" or "mono"
	Theme string `mapstructure:"theme"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Wizard: WizardConfig{
			Mirror:    MirrorFile,
			MirrorKey: "step",
			ResumeURL: "https://teamboard.local/onboarding",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
		TUI: TUIConfig{
			Theme: "default",
		},
	}
}

// Key kinds reported by KeyKinds.
const (
	KindString = "string"
	KindBool   = "bool"
)

// Keys returns every configuration key in display order.
func Keys() []string {
	return []string{
		"wizard.mirror",
		"wizard.mirror_key",
		"wizard.resume_url",
		"wizard.flow_file",
		"wizard.state_dir",
		"session.dir",
		"logging.enabled",
		"logging.level",
		"logging.dir",
		"tui.theme",
	}
}

// KeyKinds maps every key to the kind of value it holds.
func KeyKinds() map[string]string {
	kinds := make(map[string]string, len(Keys()))
	for _, k := range Keys() {
		kinds[k] = KindString
	}
	kinds["logging.enabled"] = KindBool
	return kinds
}

// DefaultValues maps every key to its default value.
func DefaultValues() map[string]any {
	d := Default()
	return map[string]any{
		"wizard.mirror":     d.Wizard.Mirror,
		"wizard.mirror_key": d.Wizard.MirrorKey,
		"wizard.resume_url": d.Wizard.ResumeURL,
		"wizard.flow_file":  d.Wizard.FlowFile,
		"wizard.state_dir":  d.Wizard.StateDir,
		"session.dir":       d.Session.Dir,
		"logging.enabled":   d.Logging.Enabled,
		"logging.level":     d.Logging.Level,
		"logging.dir":       d.Logging.Dir,
		"tui.theme":         d.TUI.Theme,
	}
}

// SetDefaults registers every default with viper so that unset keys
// unmarshal to Default() values.
func SetDefaults() {
	for key, value := range DefaultValues() {
		viper.SetDefault(key, value)
	}
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when it
// cannot be loaded
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "teamboard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".teamboard"
	}
	return filepath.Join(home, ".config", "teamboard")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ResolveStateDir returns the directory for mirrored wizard positions.
func (c *WizardConfig) ResolveStateDir() string {
	return orConfigDir(c.StateDir, "state")
}

// ResolveDir returns the directory holding the session record.
func (c *SessionConfig) ResolveDir() string {
	return orConfigDir(c.Dir, "")
}

// ResolveDir returns the log directory.
func (c *LoggingConfig) ResolveDir() string {
	return orConfigDir(c.Dir, "logs")
}

func orConfigDir(dir, sub string) string {
	if dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(ConfigDir(), sub)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
