package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/control"
	"github.com/howell/dealdial/core"
	"github.com/howell/dealdial/internal/config"
	"github.com/howell/dealdial/internal/database/repository"
	"github.com/howell/dealdial/widgets"
)

func testConfig() config.Config {
	return config.Config{
		Database: config.DatabaseConfig{Path: ":memory:"},
		Controls: config.ControlsConfig{HoldDelayMS: 300, HoldIntervalMS: 120, SnapThreshold: 40},
		UI:       config.UIConfig{CurrencySymbol: "$", VehicleCondition: "new"},
	}
}

func bindTestRuntime() {
	BindRuntime(nil, testConfig())
}

func testDeal(cc config.ControlsConfig) *DealControls {
	return NewDealControls(repository.Deal{
		Name:         "Working deal",
		VehiclePrice: 32000,
		DownPayment:  3000,
		TradeIn:      0,
		APR:          6.49,
		TermMonths:   60,
	}, cc)
}

func pressRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTabsImplementCoreInterfaces(t *testing.T) {
	bindTestRuntime()
	all := Tabs()
	m := core.NewModel(all, core.NewKeyRegistry(nil), core.NewCommandRegistry(nil), nil)
	for _, tab := range all {
		if tab.ID() == "" || tab.Title() == "" || tab.Scope() == "" {
			t.Fatalf("tab metadata should not be empty")
		}
		if tab.Build(&m) == nil {
			t.Fatalf("tab build should return widget")
		}
		if _, ok := tab.(core.PaneKeyHandler); !ok {
			t.Fatalf("tab should implement pane key handler")
		}
	}
	if _, ok := all[0].(core.HoldInterrupter); !ok {
		t.Fatalf("deal tab should interrupt holds")
	}
}

func TestDealControlsStepResetRoundTrip(t *testing.T) {
	deal := testDeal(config.ControlsConfig{SnapThreshold: 40})
	if !dealAtBaseline(deal) {
		t.Fatalf("fresh deal should start at baseline")
	}

	deal.StepKey(fieldPrice, +1)
	if got := deal.Value(fieldPrice); got != 32100 {
		t.Fatalf("stepped price = %v, want 32100", got)
	}
	diff := deal.DiffFor(fieldPrice)
	if diff.AtBaseline {
		t.Fatalf("stepped price should not read at baseline")
	}
	if diff.ValueDiff != 100 {
		t.Fatalf("value diff = %v, want 100", diff.ValueDiff)
	}
	if diff.PaymentDiff == nil || *diff.PaymentDiff <= 0 {
		t.Fatalf("raising the price should raise the payment, got %v", diff.PaymentDiff)
	}
	if dealAtBaseline(deal) {
		t.Fatalf("deal with a moved control is not at baseline")
	}

	if !deal.ResetKey(fieldPrice) {
		t.Fatalf("reset should report a restored value")
	}
	if got := deal.Value(fieldPrice); got != 32000 {
		t.Fatalf("reset price = %v, want 32000", got)
	}
	if !deal.DiffFor(fieldPrice).AtBaseline {
		t.Fatalf("reset control should read at baseline")
	}
	if !deal.ResetKey(fieldPrice) {
		t.Fatalf("reset with a seeded baseline should report ok")
	}
	if got := deal.Value(fieldPrice); got != 32000 {
		t.Fatalf("idempotent reset moved the value to %v", got)
	}
}

func TestDealControlsSnapInsideWindow(t *testing.T) {
	deal := testDeal(config.ControlsConfig{SnapThreshold: 40})
	deal.StepKey(fieldPrice, +1)

	deal.Propose(fieldPrice, 32030)
	if got := deal.Value(fieldPrice); got != 32000 {
		t.Fatalf("proposal inside the snap window = %v, want exactly 32000", got)
	}

	deal.Propose(fieldPrice, 32460)
	if got := deal.Value(fieldPrice); got != 32500 {
		t.Fatalf("proposal outside the window = %v, want step-rounded 32500", got)
	}
}

func TestDealControlsCommitExactRebaselines(t *testing.T) {
	deal := testDeal(config.ControlsConfig{SnapThreshold: 40})
	deal.StepKey(fieldPrice, +1)

	deal.CommitExact(fieldPrice, 28750.567)
	if got := deal.Value(fieldPrice); got != 28750.57 {
		t.Fatalf("committed price = %v, want cent-rounded 28750.57", got)
	}
	if !deal.DiffFor(fieldPrice).AtBaseline {
		t.Fatalf("explicit edit should move the baseline with the value")
	}

	deal.CommitExact(fieldPrice, 999999999)
	if got := deal.Value(fieldPrice); got != 200000 {
		t.Fatalf("committed price = %v, want clamped 200000", got)
	}

	deal.CommitExact(fieldTerm, 66)
	if got := deal.Deal().TermMonths; got != 60 {
		t.Fatalf("committed term = %v, want normalized 60", got)
	}
}

func TestDealControlsLenderAttachDetach(t *testing.T) {
	deal := testDeal(config.ControlsConfig{SnapThreshold: 40})
	rate := repository.Rate{
		ID:        "r1",
		LenderID:  "len-1",
		TermMin:   72,
		TermMax:   84,
		TermLabel: "72-84 Months",
		APR:       5.49,
	}

	if !deal.ApplyRate("len-1", "Coastal Credit Union", &rate) {
		t.Fatalf("apply rate should succeed")
	}
	if got := deal.Deal().TermMonths; got != 72 {
		t.Fatalf("term = %v, want clamped into the rate's range at 72", got)
	}
	if got := deal.Value(fieldAPR); got != 5.49 {
		t.Fatalf("apr = %v, want 5.49", got)
	}
	if got := deal.LenderName(); got != "Coastal Credit Union" {
		t.Fatalf("lender name = %q", got)
	}
	if !deal.DiffFor(fieldAPR).AtBaseline || !deal.DiffFor(fieldTerm).AtBaseline {
		t.Fatalf("applied rate should rebaseline apr and term")
	}

	deal.StepKey(fieldTerm, +1)
	if got := deal.Deal().TermMonths; got != 84 {
		t.Fatalf("term = %v, want 84", got)
	}
	if deal.LenderID() != nil || deal.LenderName() != "" {
		t.Fatalf("manual term change should detach the lender")
	}

	if deal.ApplyRate("len-1", "Coastal Credit Union", nil) {
		t.Fatalf("nil rate should not apply")
	}
}

func TestDealControlsHoldLifecycle(t *testing.T) {
	deal := testDeal(config.ControlsConfig{HoldDelayMS: 1, HoldIntervalMS: 1, SnapThreshold: 40})

	cmd := deal.PressHold(fieldPrice, +1)
	if cmd == nil {
		t.Fatalf("press should arm the delay timer")
	}
	if got := deal.Value(fieldPrice); got != 32100 {
		t.Fatalf("press should apply one immediate delta, got %v", got)
	}
	if !deal.Holding() {
		t.Fatalf("deal should report a live hold")
	}

	tick, ok := cmd().(control.HoldTickMsg)
	if !ok {
		t.Fatalf("hold timer should emit a tick message")
	}
	next, handled := deal.HoldTick(tick)
	if !handled || next == nil {
		t.Fatalf("live tick should step and re-arm")
	}
	if got := deal.Value(fieldPrice); got != 32200 {
		t.Fatalf("tick should apply one delta, got %v", got)
	}

	deal.ReleaseHolds()
	if deal.Holding() {
		t.Fatalf("release should end the hold")
	}
	stale, _ := next().(control.HoldTickMsg)
	if _, handled := deal.HoldTick(stale); handled {
		t.Fatalf("stale tick should be inert after release")
	}
	if got := deal.Value(fieldPrice); got != 32200 {
		t.Fatalf("stale tick must not move the value, got %v", got)
	}
}

func TestDealControlsRoutedKey(t *testing.T) {
	deal := testDeal(config.ControlsConfig{SnapThreshold: 40})
	if got := deal.RoutedKey(false); got != "" {
		t.Fatalf("nothing hovered or focused should route, got %q", got)
	}

	deal.Hover(fieldDown)
	if got := deal.RoutedKey(false); got != fieldDown {
		t.Fatalf("hovered control should route, got %q", got)
	}
	if got := deal.RoutedKey(true); got != "" {
		t.Fatalf("text input focus must gate routing, got %q", got)
	}

	deal.Hover("")
	if got := deal.RoutedKey(false); got != "" {
		t.Fatalf("hover leave should stop routing, got %q", got)
	}

	deal.Control(fieldAPR).SetFocused(true)
	if got := deal.RoutedKey(false); got != fieldAPR {
		t.Fatalf("focused control should route, got %q", got)
	}

	deal.Hover(fieldPrice)
	if got := deal.RoutedKey(false); got != fieldPrice {
		t.Fatalf("hover should win over a focused owner, got %q", got)
	}

	deal.Hover("")
	deal.Control(fieldAPR).SetFocused(false)
	if got := deal.RoutedKey(false); got != "" {
		t.Fatalf("blur should stop routing, got %q", got)
	}
}

func TestDealTabResetConfirm(t *testing.T) {
	bindTestRuntime()
	tab := NewDealTab(activeDeal())
	m := core.NewModel([]core.Tab{tab}, core.NewKeyRegistry(nil), core.NewCommandRegistry(nil), nil)

	tab.deal.StepKey(fieldPrice, +1)

	if cmd := tab.Update(&m, pressRune('r')); cmd == nil {
		t.Fatalf("first press should arm and announce the confirm")
	}
	if tab.resetKey != fieldPrice {
		t.Fatalf("confirm should be armed for the price control, got %q", tab.resetKey)
	}
	if got := tab.deal.Value(fieldPrice); got != 32100 {
		t.Fatalf("arming must not reset the value, got %v", got)
	}

	tab.Update(&m, pressRune('r'))
	if got := tab.deal.Value(fieldPrice); got != 32000 {
		t.Fatalf("second press should reset, got %v", got)
	}
	if tab.resetKey != "" {
		t.Fatalf("confirm should disarm after the reset")
	}

	tab.deal.StepKey(fieldPrice, +1)
	tab.Update(&m, pressRune('r'))
	tab.Update(&m, resetConfirmExpiredMsg{})
	if tab.resetKey != "" {
		t.Fatalf("expiry should disarm the confirm")
	}
	tab.Update(&m, pressRune('r'))
	if got := tab.deal.Value(fieldPrice); got != 32100 {
		t.Fatalf("press after expiry should only re-arm, got %v", got)
	}
}

func TestDealTabCommitExactMessage(t *testing.T) {
	bindTestRuntime()
	tab := NewDealTab(activeDeal())
	m := core.NewModel([]core.Tab{tab}, core.NewKeyRegistry(nil), core.NewCommandRegistry(nil), nil)

	cmd := tab.Update(&m, commitExactMsg{key: fieldPrice, value: 25000})
	if got := tab.deal.Value(fieldPrice); got != 25000 {
		t.Fatalf("committed value = %v, want 25000", got)
	}
	if cmd == nil {
		t.Fatalf("commit should announce the new value")
	}
	status, ok := cmd().(core.StatusMsg)
	if !ok {
		t.Fatalf("commit should produce a status message")
	}
	if want := "Vehicle price set to $25,000.00"; status.Text != want {
		t.Fatalf("status = %q, want %q", status.Text, want)
	}
}

func TestDealTabLocate(t *testing.T) {
	bindTestRuntime()
	tab := NewDealTab(activeDeal())
	bodyW, bodyH := 100, 30
	cols := widgets.SplitWidths(bodyW-dealColumnGap, 2, dealColumnRatios)
	rows := widgets.SplitWidths(bodyH, 3, nil)

	hit, ok := tab.locate(2, 1, bodyW, bodyH)
	if !ok || hit.idx != 0 {
		t.Fatalf("top-left point should hit pane 0, got %+v ok=%v", hit, ok)
	}
	if hit.contentX != 0 || hit.contentY != 0 {
		t.Fatalf("content origin = (%d,%d), want (0,0)", hit.contentX, hit.contentY)
	}
	if want := cols[0] - 4; hit.contentWidth != want {
		t.Fatalf("content width = %d, want %d", hit.contentWidth, want)
	}

	if _, ok := tab.locate(cols[0], 5, bodyW, bodyH); ok {
		t.Fatalf("gap column should miss")
	}
	if _, ok := tab.locate(-1, 5, bodyW, bodyH); ok {
		t.Fatalf("negative column should miss")
	}

	hit, ok = tab.locate(cols[0]+dealColumnGap+2, rows[0]+1, bodyW, bodyH)
	if !ok || hit.idx != 4 {
		t.Fatalf("right middle point should hit pane 4, got %+v ok=%v", hit, ok)
	}

	hit, ok = tab.locate(1, rows[0]+rows[1]+1, bodyW, bodyH)
	if !ok || hit.idx != 2 {
		t.Fatalf("left bottom point should hit pane 2, got %+v ok=%v", hit, ok)
	}

	start, width := tab.columnSpan(4, bodyW)
	if start != cols[0]+dealColumnGap || width != cols[1] {
		t.Fatalf("column span = (%d,%d), want (%d,%d)", start, width, cols[0]+dealColumnGap, cols[1])
	}
}

func TestSettingsControlsCommit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("DEALDIAL_CONFIG", path)
	bindTestRuntime()

	pane := newSettingsControlsPane(core.PaneSpec{ID: "settings-controls", Title: "Controls", Scope: "pane:settings:controls", JumpKey: 'c', Focusable: true}).(*settingsControlsPane)

	cmd := pane.Update(controlsSettingMsg{key: "snap", value: 75})
	if cmd == nil {
		t.Fatalf("commit should produce a status")
	}
	if status := cmd().(core.StatusMsg); status.IsErr {
		t.Fatalf("commit failed: %s", status.Text)
	}
	if got := activeConfig().Controls.SnapThreshold; got != 75 {
		t.Fatalf("snap threshold = %v, want 75", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("commit should write the config file: %v", err)
	}

	// The widened window reaches the live controls.
	activeDeal().StepKey(fieldPrice, +1)
	activeDeal().Propose(fieldPrice, 32060)
	if got := activeDeal().Value(fieldPrice); got != 32000 {
		t.Fatalf("live control should snap inside the widened window, got %v", got)
	}

	cmd = pane.Update(controlsSettingMsg{key: "delay", value: 0})
	if status := cmd().(core.StatusMsg); !status.IsErr {
		t.Fatalf("zero delay should be rejected")
	}
	if got := activeConfig().Controls.HoldDelayMS; got != 300 {
		t.Fatalf("rejected edit must not change the config, got %v", got)
	}
}

func TestSettingsDisplayCommit(t *testing.T) {
	t.Setenv("DEALDIAL_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	bindTestRuntime()

	pane := newSettingsDisplayPane(core.PaneSpec{ID: "settings-display", Title: "Display", Scope: "pane:settings:display", JumpKey: 'd', Focusable: true}).(*settingsDisplayPane)

	if cmd := pane.Update(displaySettingMsg{key: "condition", id: "used"}); cmd == nil {
		t.Fatalf("commit should produce a status")
	}
	if got := activeConfig().UI.VehicleCondition; got != "used" {
		t.Fatalf("condition = %q, want used", got)
	}

	pane.Update(displaySettingMsg{key: "currency", id: "€"})
	if got := money(100); got != "€100.00" {
		t.Fatalf("money under the new symbol = %q, want €100.00", got)
	}
}

func TestApplyLenderWithoutRate(t *testing.T) {
	bindTestRuntime()
	deal := activeDeal()

	cmd := applyLenderToDeal(deal, applyLenderMsg{lenderID: "len-1", lenderName: "Coastal Credit Union", term: 60, rate: nil})
	if cmd == nil {
		t.Fatalf("missing rate should still report back")
	}
	status := cmd().(core.StatusMsg)
	if want := "Coastal Credit Union has no 60 mo rate for new vehicles"; status.Text != want {
		t.Fatalf("status = %q, want %q", status.Text, want)
	}
	if deal.LenderName() != "" {
		t.Fatalf("missing rate must not attach a lender")
	}
}

func TestDealSnapshotCarriesLender(t *testing.T) {
	deal := testDeal(config.ControlsConfig{SnapThreshold: 40})
	rate := repository.Rate{ID: "r1", LenderID: "len-1", TermMin: 36, TermMax: 84, APR: 5.49}
	deal.ApplyRate("len-1", "Coastal Credit Union", &rate)

	snap := deal.Snapshot()
	if snap.LenderID == nil || *snap.LenderID != "len-1" {
		t.Fatalf("snapshot should carry the lender, got %v", snap.LenderID)
	}

	deal.MarkSaved("deal-1", "Weekend truck")
	if snap := deal.Snapshot(); snap.ID != "deal-1" || snap.Name != "Weekend truck" {
		t.Fatalf("snapshot should carry the saved identity, got %q %q", snap.ID, snap.Name)
	}

	deal.StepKey(fieldAPR, +1)
	if snap := deal.Snapshot(); snap.LenderID != nil {
		t.Fatalf("manual apr change should clear the snapshot lender")
	}
}
