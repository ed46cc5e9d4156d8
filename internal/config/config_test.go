package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEALDIAL_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 300, cfg.Controls.HoldDelayMS)
	require.Equal(t, 120, cfg.Controls.HoldIntervalMS)
	require.InDelta(t, 40.0, cfg.Controls.SnapThreshold, 1e-9)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Equal(t, "new", cfg.UI.VehicleCondition)
	require.Contains(t, cfg.Database.Path, "dealdial.db")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DEALDIAL_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv("DEALDIAL_CONTROLS_HOLD_DELAY_MS", "500")
	t.Setenv("DEALDIAL_UI_VEHICLE_CONDITION", "used")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 500, cfg.Controls.HoldDelayMS)
	require.Equal(t, "used", cfg.UI.VehicleCondition)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("controls = not toml ["), 0o644))
	t.Setenv("DEALDIAL_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("DEALDIAL_CONFIG", path)

	want := Config{
		Database: DatabaseConfig{Path: "/tmp/dealdial-test.db"},
		Controls: ControlsConfig{HoldDelayMS: 450, HoldIntervalMS: 90, SnapThreshold: 25},
		UI:       UIConfig{CurrencySymbol: "€", VehicleCondition: "used"},
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
