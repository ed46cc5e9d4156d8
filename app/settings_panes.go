package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/core"
	"github.com/howell/dealdial/internal/database"
	"github.com/howell/dealdial/screens"
	"github.com/howell/dealdial/widgets"
)

// controlsSettingMsg lands an edited interaction knob on the update
// loop, where the config write and the live-control push happen.
type controlsSettingMsg struct {
	key   string
	value float64
}

// displaySettingMsg lands a picked display option on the update loop.
type displaySettingMsg struct {
	key string
	id  string
}

// reseedRatesMsg replaces all lender and rate rows with the stock set.
type reseedRatesMsg struct{}

// settingsControlsPane edits the interaction knobs shared by every
// numeric control. Edits persist and reach the live controls without a
// restart.
type settingsControlsPane struct {
	id    string
	title string
	scope string
	jump  byte
	focus bool
}

func newSettingsControlsPane(spec core.PaneSpec) core.Pane {
	return &settingsControlsPane{id: spec.ID, title: spec.Title, scope: spec.Scope, jump: spec.JumpKey, focus: spec.Focusable}
}

func (p *settingsControlsPane) ID() string        { return p.id }
func (p *settingsControlsPane) Title() string     { return p.title }
func (p *settingsControlsPane) Scope() string     { return p.scope }
func (p *settingsControlsPane) JumpKey() byte     { return p.jump }
func (p *settingsControlsPane) Focusable() bool   { return p.focus }
func (p *settingsControlsPane) Init() tea.Cmd     { return nil }
func (p *settingsControlsPane) OnSelect() tea.Cmd { return nil }
func (p *settingsControlsPane) OnDeselect() tea.Cmd {
	return nil
}
func (p *settingsControlsPane) OnFocus() tea.Cmd { return nil }
func (p *settingsControlsPane) OnBlur() tea.Cmd  { return nil }

func (p *settingsControlsPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case controlsSettingMsg:
		return p.commit(msg)
	case tea.KeyMsg:
		cfg := activeConfig()
		switch msg.String() {
		case "d":
			return openControlsEditor("delay", "Set hold delay (ms)", "Milliseconds before a held press starts repeating", strconv.Itoa(cfg.Controls.HoldDelayMS))
		case "i":
			return openControlsEditor("interval", "Set hold interval (ms)", "Milliseconds between repeats while held", strconv.Itoa(cfg.Controls.HoldIntervalMS))
		case "s":
			return openControlsEditor("snap", "Set snap window", "Dollar distance inside which sliders snap back to baseline", strconv.FormatFloat(cfg.Controls.SnapThreshold, 'f', -1, 64))
		}
	}
	return nil
}

func openControlsEditor(key, title, hint, initial string) tea.Cmd {
	editor := screens.NewValueEditor(title, hint, initial, func(value float64) tea.Msg {
		return controlsSettingMsg{key: key, value: value}
	})
	return core.PushScreenCmd(editor)
}

func (p *settingsControlsPane) commit(msg controlsSettingMsg) tea.Cmd {
	cfg := activeConfig()
	switch msg.key {
	case "delay":
		if msg.value <= 0 {
			return core.ErrorCmd(errors.New("hold delay must be positive"))
		}
		cfg.Controls.HoldDelayMS = int(math.Round(msg.value))
	case "interval":
		if msg.value <= 0 {
			return core.ErrorCmd(errors.New("hold interval must be positive"))
		}
		cfg.Controls.HoldIntervalMS = int(math.Round(msg.value))
	case "snap":
		if msg.value < 0 {
			return core.ErrorCmd(errors.New("snap window cannot be negative"))
		}
		cfg.Controls.SnapThreshold = msg.value
	default:
		return nil
	}
	if err := updateRuntimeConfig(cfg); err != nil {
		return core.ErrorCmd(err)
	}
	return core.StatusCmd("Control settings saved")
}

func (p *settingsControlsPane) View(width, height int, selected, focused bool) string {
	cfg := activeConfig()
	lines := []string{
		settingRow("Hold delay", fmt.Sprintf("%d ms", cfg.Controls.HoldDelayMS), "d"),
		settingRow("Hold interval", fmt.Sprintf("%d ms", cfg.Controls.HoldIntervalMS), "i"),
		settingRow("Snap window", money(cfg.Controls.SnapThreshold), "s"),
		"",
		"Changes reach the live controls and persist to config.toml.",
	}
	content := core.ClipHeight(strings.Join(lines, "\n"), core.MaxInt(3, height-2))
	return widgets.Pane{Title: p.title, Height: height, Content: content, Selected: selected, Focused: focused}.Render(width, height)
}

func settingRow(label, value, key string) string {
	return fmt.Sprintf("%-16s %-14s (%s)", label, value, key)
}

// settingsDisplayPane picks the currency symbol and the vehicle
// condition the rate queries filter on.
type settingsDisplayPane struct {
	id    string
	title string
	scope string
	jump  byte
	focus bool
}

func newSettingsDisplayPane(spec core.PaneSpec) core.Pane {
	return &settingsDisplayPane{id: spec.ID, title: spec.Title, scope: spec.Scope, jump: spec.JumpKey, focus: spec.Focusable}
}

func (p *settingsDisplayPane) ID() string          { return p.id }
func (p *settingsDisplayPane) Title() string       { return p.title }
func (p *settingsDisplayPane) Scope() string       { return p.scope }
func (p *settingsDisplayPane) JumpKey() byte       { return p.jump }
func (p *settingsDisplayPane) Focusable() bool     { return p.focus }
func (p *settingsDisplayPane) Init() tea.Cmd       { return nil }
func (p *settingsDisplayPane) OnSelect() tea.Cmd   { return nil }
func (p *settingsDisplayPane) OnDeselect() tea.Cmd { return nil }
func (p *settingsDisplayPane) OnFocus() tea.Cmd    { return nil }
func (p *settingsDisplayPane) OnBlur() tea.Cmd     { return nil }

func (p *settingsDisplayPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case displaySettingMsg:
		return p.commit(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			return openDisplayChoice("currency", "Currency Symbol", []screens.Choice{
				{ID: "$", Label: "$", Desc: "US dollar"},
				{ID: "€", Label: "€", Desc: "Euro"},
				{ID: "£", Label: "£", Desc: "Pound sterling"},
				{ID: "¥", Label: "¥", Desc: "Yen"},
			})
		case "n":
			return openDisplayChoice("condition", "Vehicle Condition", []screens.Choice{
				{ID: "new", Label: "New", Desc: "rates advertised for new vehicles"},
				{ID: "used", Label: "Used", Desc: "rates advertised for used vehicles"},
			})
		}
	}
	return nil
}

func openDisplayChoice(key, title string, items []screens.Choice) tea.Cmd {
	modal := screens.NewChoiceModal(title, "screen:choice", items, func(choice screens.Choice) tea.Msg {
		return displaySettingMsg{key: key, id: choice.ID}
	})
	return core.PushScreenCmd(modal)
}

func (p *settingsDisplayPane) commit(msg displaySettingMsg) tea.Cmd {
	cfg := activeConfig()
	switch msg.key {
	case "currency":
		cfg.UI.CurrencySymbol = msg.id
	case "condition":
		cfg.UI.VehicleCondition = msg.id
	default:
		return nil
	}
	if err := updateRuntimeConfig(cfg); err != nil {
		return core.ErrorCmd(err)
	}
	return core.StatusCmd("Display settings saved")
}

func (p *settingsDisplayPane) View(width, height int, selected, focused bool) string {
	cfg := activeConfig()
	lines := []string{
		settingRow("Currency", cfg.UI.CurrencySymbol, "c"),
		settingRow("Condition", cfg.UI.VehicleCondition, "n"),
		"",
		"Condition filters which advertised rates match the deal.",
	}
	content := core.ClipHeight(strings.Join(lines, "\n"), core.MaxInt(3, height-2))
	return widgets.Pane{Title: p.title, Height: height, Content: content, Selected: selected, Focused: focused}.Render(width, height)
}

// settingsStoragePane reports what the database holds and can restore
// the stock lender and rate seed.
type settingsStoragePane struct {
	id    string
	title string
	scope string
	jump  byte
	focus bool
}

func newSettingsStoragePane(spec core.PaneSpec) core.Pane {
	return &settingsStoragePane{id: spec.ID, title: spec.Title, scope: spec.Scope, jump: spec.JumpKey, focus: spec.Focusable}
}

func (p *settingsStoragePane) ID() string          { return p.id }
func (p *settingsStoragePane) Title() string       { return p.title }
func (p *settingsStoragePane) Scope() string       { return p.scope }
func (p *settingsStoragePane) JumpKey() byte       { return p.jump }
func (p *settingsStoragePane) Focusable() bool     { return p.focus }
func (p *settingsStoragePane) Init() tea.Cmd       { return nil }
func (p *settingsStoragePane) OnSelect() tea.Cmd   { return nil }
func (p *settingsStoragePane) OnDeselect() tea.Cmd { return nil }
func (p *settingsStoragePane) OnFocus() tea.Cmd    { return nil }
func (p *settingsStoragePane) OnBlur() tea.Cmd     { return nil }

func (p *settingsStoragePane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case reseedRatesMsg:
		return p.reseed()
	case tea.KeyMsg:
		if msg.String() == "z" {
			confirm := screens.NewConfirm(
				"Restore stock lenders and rates?",
				"Deletes every lender and rate row, then reseeds the stock set. Saved deals keep their numbers.",
				func() tea.Msg { return reseedRatesMsg{} },
			)
			return core.PushScreenCmd(confirm)
		}
	}
	return nil
}

func (p *settingsStoragePane) reseed() tea.Cmd {
	db := activeDB()
	if db == nil {
		return core.ErrorCmd(errors.New("no database"))
	}
	ctx, cancel := context.WithTimeout(context.Background(), ratesQueryTimeout)
	defer cancel()
	err := database.WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM rates`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM lenders`)
		return err
	})
	if err != nil {
		return core.ErrorCmd(err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		return core.ErrorCmd(err)
	}
	bumpRatesGeneration()
	return core.StatusCmd("Stock lenders and rates restored")
}

func (p *settingsStoragePane) View(width, height int, selected, focused bool) string {
	cfg := activeConfig()
	lines := []string{
		settingRow("Database", cfg.Database.Path, " "),
	}
	if counts, err := storageCounts(activeDB()); err != nil {
		lines = append(lines, "Failed to read counts: "+err.Error())
	} else {
		lines = append(lines,
			settingRow("Lenders", strconv.Itoa(counts.lenders), " "),
			settingRow("Rates", strconv.Itoa(counts.rates), " "),
			settingRow("Saved deals", strconv.Itoa(counts.deals), " "),
		)
	}
	lines = append(lines, "", "z restore stock lenders and rates.")
	content := core.ClipHeight(strings.Join(lines, "\n"), core.MaxInt(3, height-2))
	return widgets.Pane{Title: p.title, Height: height, Content: content, Selected: selected, Focused: focused}.Render(width, height)
}

type storageCountsResult struct {
	lenders int
	rates   int
	deals   int
}

func storageCounts(db *sql.DB) (storageCountsResult, error) {
	var out storageCountsResult
	if db == nil {
		return out, errors.New("no database")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ratesQueryTimeout)
	defer cancel()
	for _, q := range []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM lenders", &out.lenders},
		{"SELECT COUNT(*) FROM rates", &out.rates},
		{"SELECT COUNT(*) FROM deals", &out.deals},
	} {
		if err := db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return out, err
		}
	}
	return out, nil
}

// NewSettingsTab assembles the settings panes into a generated tab;
// none of them need mouse routing.
func NewSettingsTab() core.Tab {
	specs := []core.PaneSpec{
		{ID: "settings-controls", Title: "Controls", Scope: "pane:settings:controls", JumpKey: 'c', Focusable: true, Factory: newSettingsControlsPane},
		{ID: "settings-display", Title: "Display", Scope: "pane:settings:display", JumpKey: 'd', Focusable: true, Factory: newSettingsDisplayPane},
		{ID: "settings-storage", Title: "Storage", Scope: "pane:settings:storage", JumpKey: 's', Focusable: true, Factory: newSettingsStoragePane},
	}
	return core.NewGeneratedTab("settings", "Settings", specs, func(host *core.PaneHost, m *core.Model) widgets.Widget {
		left := widgets.VStack{Widgets: []widgets.Widget{
			host.BuildPane("settings-controls", m),
			host.BuildPane("settings-display", m),
		}}
		return widgets.HStack{
			Widgets: []widgets.Widget{left, host.BuildPane("settings-storage", m)},
			Ratios:  []float64{0.55, 0.45},
			Gap:     1,
		}
	})
}
