package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Controls ControlsConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ControlsConfig holds the shared interaction defaults for every
// numeric control. Hold timing used to be hard-coded per widget and
// drifted; it lives here now. SnapThreshold is the window, in dollars,
// inside which the money sliders snap back to their baseline.
type ControlsConfig struct {
	HoldDelayMS    int
	HoldIntervalMS int
	SnapThreshold  float64
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol   string
	VehicleCondition string
}

// Load reads configuration from file and env. Env var overrides use prefix DEALDIAL_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "dealdial", "dealdial.db"))
	v.SetDefault("controls.hold_delay_ms", 300)
	v.SetDefault("controls.hold_interval_ms", 120)
	v.SetDefault("controls.snap_threshold", 40.0)
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.vehicle_condition", "new")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DEALDIAL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "dealdial"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DEALDIAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file falls back to defaults; a malformed one is
	// a real error the user should see.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	c := Config{
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Controls: ControlsConfig{
			HoldDelayMS:    v.GetInt("controls.hold_delay_ms"),
			HoldIntervalMS: v.GetInt("controls.hold_interval_ms"),
			SnapThreshold:  v.GetFloat64("controls.snap_threshold"),
		},
		UI: UIConfig{
			CurrencySymbol:   v.GetString("ui.currency_symbol"),
			VehicleCondition: v.GetString("ui.vehicle_condition"),
		},
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// This is primarily used by the TUI settings view for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("DEALDIAL_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "dealdial", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("controls.hold_delay_ms", cfg.Controls.HoldDelayMS)
	v.Set("controls.hold_interval_ms", cfg.Controls.HoldIntervalMS)
	v.Set("controls.snap_threshold", cfg.Controls.SnapThreshold)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.vehicle_condition", cfg.UI.VehicleCondition)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
