package app

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/control"
	"github.com/howell/dealdial/core"
	"github.com/howell/dealdial/internal/format"
	"github.com/howell/dealdial/screens"
	"github.com/howell/dealdial/widgets"
)

var dealColumnRatios = []float64{0.55, 0.45}

const dealColumnGap = 1

// commitExactMsg lands a typed value on the update loop. The editor's
// submit command runs in a goroutine, so the mutation waits here.
type commitExactMsg struct {
	key   string
	value float64
}

// DealTab hosts the five numeric controls and the summary. It owns the
// mouse routing the generated tabs never need: presses, drags, hover,
// and hold-repeat ticks all resolve against the same column math the
// layout renders with.
type DealTab struct {
	id       string
	title    string
	host     core.PaneHost
	deal     *DealControls
	drag     string
	dragIdx  int
	resetKey string
}

func NewDealTab(deal *DealControls) *DealTab {
	host := core.NewPaneHost(
		newSliderPane("deal-price", "Vehicle Price", "pane:deal:price", 'p', fieldPrice, "Vehicle price", deal),
		newSliderPane("deal-down", "Down Payment", "pane:deal:down", 'd', fieldDown, "Down payment", deal),
		newTradeInPane("deal-trade", "Trade-In", "pane:deal:trade", 't', deal),
		newAPRPane("deal-apr", "APR", "pane:deal:apr", 'a', deal),
		newTermPane("deal-term", "Term", "pane:deal:term", 'm', deal),
		newSummaryPane("deal-summary", "Summary", "pane:deal:summary", 's', deal),
	)
	return &DealTab{id: "deal", title: "Deal", host: host, deal: deal, dragIdx: -1}
}

func (t *DealTab) ID() string              { return t.id }
func (t *DealTab) Title() string           { return t.title }
func (t *DealTab) Scope() string           { return t.host.Scope() }
func (t *DealTab) ActivePaneTitle() string { return t.host.ActivePaneTitle() }

func (t *DealTab) InitTab(m *core.Model) tea.Cmd {
	_ = m
	return t.host.Init()
}

func (t *DealTab) HandlePaneKey(m *core.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	return t.host.HandlePaneKey(m, msg)
}

func (t *DealTab) JumpTargets() []core.JumpTarget {
	return t.host.JumpTargets()
}

func (t *DealTab) JumpToTarget(m *core.Model, key string) (bool, tea.Cmd) {
	return t.host.JumpToTarget(m, key)
}

// InterruptHolds ends drags and repeat timers when a modal opens or
// the tab leaves the foreground.
func (t *DealTab) InterruptHolds() {
	t.drag = ""
	t.dragIdx = -1
	t.resetKey = ""
	t.deal.ReleaseHolds()
}

func (t *DealTab) Build(m *core.Model) widgets.Widget {
	left := widgets.VStack{Widgets: []widgets.Widget{
		t.host.BuildPaneAt(0, m),
		t.host.BuildPaneAt(1, m),
		t.host.BuildPaneAt(2, m),
	}}
	right := widgets.VStack{Widgets: []widgets.Widget{
		t.host.BuildPaneAt(3, m),
		t.host.BuildPaneAt(4, m),
		t.host.BuildPaneAt(5, m),
	}}
	return widgets.HStack{Widgets: []widgets.Widget{left, right}, Ratios: dealColumnRatios, Gap: dealColumnGap}
}

func (t *DealTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case control.HoldTickMsg:
		cmd, _ := t.deal.HoldTick(msg)
		return cmd
	case commitExactMsg:
		t.deal.CommitExact(msg.key, msg.value)
		return core.StatusCmd(fieldLabel(msg.key) + " set to " + fieldValueText(t.deal, msg.key))
	case applyLenderMsg:
		return applyLenderToDeal(t.deal, msg)
	case resetConfirmExpiredMsg:
		t.resetKey = ""
		return nil
	case tea.KeyMsg:
		return t.handleKey(m, msg)
	case tea.MouseMsg:
		return t.handleMouse(m, msg)
	}
	return nil
}

func (t *DealTab) handleKey(m *core.Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "down":
		t.stepRouted(m, -1)
		return nil
	case "right", "up":
		t.stepRouted(m, +1)
		return nil
	}

	key := t.activeControlKey()
	if key == "" {
		return nil
	}
	switch msg.String() {
	case "e":
		return t.openEditor(key)
	case "r":
		if t.resetKey == key {
			t.resetKey = ""
			if t.deal.ResetKey(key) {
				return core.StatusCmd(fieldLabel(key) + " reset to baseline")
			}
			return nil
		}
		t.resetKey = key
		return tea.Batch(
			core.StatusCmd("Press r again to reset "+fieldLabel(key)),
			resetConfirmTimerCmd(),
		)
	}
	return nil
}

// resetConfirmExpiredMsg disarms a pending reset confirmation.
type resetConfirmExpiredMsg struct{}

// resetConfirmTimerCmd fires resetConfirmExpiredMsg after 2 seconds.
func resetConfirmTimerCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return resetConfirmExpiredMsg{}
	})
}

// stepRouted steps whichever control owns the keyboard. Hover wins
// over focus, and nothing moves while a modal captures input.
func (t *DealTab) stepRouted(m *core.Model, direction int) {
	key := t.deal.RoutedKey(m.TextInputActive())
	if key == "" {
		return
	}
	t.deal.StepKey(key, direction)
}

// activeControlKey resolves e/r against the focused-else-selected
// pane, when that pane hosts a control.
func (t *DealTab) activeControlKey() string {
	idx := t.host.FocusedIndex()
	if idx < 0 {
		idx = t.host.SelectedIndex()
	}
	if surface, ok := t.host.PaneAt(idx).(controlSurface); ok {
		return surface.FieldKey()
	}
	return ""
}

func (t *DealTab) openEditor(key string) tea.Cmd {
	min, max := t.deal.BoundsFor(key)
	initial := strconv.FormatFloat(t.deal.Value(key), 'f', -1, 64)
	editor := screens.NewValueEditor(
		"Set "+fieldLabel(key),
		editorHint(key, min, max),
		initial,
		func(value float64) tea.Msg { return commitExactMsg{key: key, value: value} },
	)
	return core.PushScreenCmd(editor)
}

func (t *DealTab) handleMouse(m *core.Model, msg tea.MouseMsg) tea.Cmd {
	bodyW, bodyH := m.BodySize()
	x := msg.X
	y := msg.Y - core.BodyTop
	if bodyW <= 0 || bodyH <= 0 {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		t.wheel(x, y, bodyW, bodyH, +1)
		return nil
	case tea.MouseButtonWheelDown:
		t.wheel(x, y, bodyW, bodyH, -1)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return t.mousePress(m, x, y, bodyW, bodyH)
		}
	case tea.MouseActionMotion:
		t.mouseMotion(x, y, bodyW, bodyH)
	case tea.MouseActionRelease:
		t.drag = ""
		t.dragIdx = -1
		t.deal.ReleaseHolds()
	}
	return nil
}

func (t *DealTab) mousePress(m *core.Model, x, y, bodyW, bodyH int) tea.Cmd {
	hit, ok := t.locate(x, y, bodyW, bodyH)
	if !ok {
		return nil
	}
	cmds := []tea.Cmd{t.host.SelectIndex(m, hit.idx)}
	surface, isSurface := t.host.PaneAt(hit.idx).(controlSurface)
	if !isSurface {
		return tea.Batch(cmds...)
	}
	key := surface.FieldKey()
	t.deal.Hover(key)
	switch surface.Zone(hit.contentX, hit.contentY, hit.contentWidth) {
	case zoneDown:
		cmds = append(cmds, t.deal.PressHold(key, -1))
	case zoneUp:
		cmds = append(cmds, t.deal.PressHold(key, +1))
	case zoneTrack:
		if raw, hasValue := surface.ValueAt(hit.contentX, hit.contentWidth); hasValue {
			t.drag = key
			t.dragIdx = hit.idx
			t.deal.Propose(key, raw)
		}
	}
	return tea.Batch(cmds...)
}

func (t *DealTab) mouseMotion(x, y, bodyW, bodyH int) {
	if t.drag != "" {
		t.dragMotion(x, bodyW)
		return
	}
	hit, ok := t.locate(x, y, bodyW, bodyH)
	if !ok {
		t.deal.Hover("")
		return
	}
	surface, isSurface := t.host.PaneAt(hit.idx).(controlSurface)
	if !isSurface {
		t.deal.Hover("")
		return
	}
	t.deal.Hover(surface.FieldKey())
}

// dragMotion keeps a live drag pinned to its own track even when the
// pointer wanders off the row; only the column matters.
func (t *DealTab) dragMotion(x, bodyW int) {
	surface, ok := t.host.PaneAt(t.dragIdx).(controlSurface)
	if !ok || surface.FieldKey() != t.drag {
		return
	}
	colStart, colWidth := t.columnSpan(t.dragIdx, bodyW)
	if raw, hasValue := surface.ValueAt(x-colStart-2, colWidth-4); hasValue {
		t.deal.Propose(t.drag, raw)
	}
}

func (t *DealTab) wheel(x, y, bodyW, bodyH, direction int) {
	hit, ok := t.locate(x, y, bodyW, bodyH)
	if !ok {
		return
	}
	if surface, isSurface := t.host.PaneAt(hit.idx).(controlSurface); isSurface {
		t.deal.StepKey(surface.FieldKey(), direction)
	}
}

// dealHit is a mouse position resolved to a pane and its content-local
// coordinates.
type dealHit struct {
	idx          int
	contentX     int
	contentY     int
	contentWidth int
}

// locate mirrors Build's column math: two ratio columns with a gap,
// each an even three-row stack.
func (t *DealTab) locate(x, y, bodyW, bodyH int) (dealHit, bool) {
	if x < 0 || y < 0 {
		return dealHit{}, false
	}
	cols := widgets.SplitWidths(core.MaxInt(1, bodyW-dealColumnGap), 2, dealColumnRatios)
	col, colStart := -1, 0
	switch {
	case x < cols[0]:
		col, colStart = 0, 0
	case x >= cols[0]+dealColumnGap && x < cols[0]+dealColumnGap+cols[1]:
		col, colStart = 1, cols[0]+dealColumnGap
	}
	if col < 0 {
		return dealHit{}, false
	}

	rows := widgets.SplitWidths(core.MaxInt(1, bodyH), 3, nil)
	row, rowStart := -1, 0
	for i, h := range rows {
		if y < rowStart+h {
			row = i
			break
		}
		rowStart += h
	}
	if row < 0 {
		return dealHit{}, false
	}

	return dealHit{
		idx:          col*3 + row,
		contentX:     x - colStart - 2,
		contentY:     y - rowStart - 1,
		contentWidth: cols[col] - 4,
	}, true
}

func (t *DealTab) columnSpan(idx, bodyW int) (start, width int) {
	cols := widgets.SplitWidths(core.MaxInt(1, bodyW-dealColumnGap), 2, dealColumnRatios)
	if idx < 3 {
		return 0, cols[0]
	}
	return cols[0] + dealColumnGap, cols[1]
}

func fieldLabel(key string) string {
	switch key {
	case fieldPrice:
		return "Vehicle price"
	case fieldDown:
		return "Down payment"
	case fieldTrade:
		return "Trade-in"
	case fieldAPR:
		return "APR"
	case fieldTerm:
		return "Term"
	}
	return key
}

func fieldValueText(deal *DealControls, key string) string {
	switch key {
	case fieldAPR:
		return format.Percent(deal.Value(key))
	case fieldTerm:
		return format.Months(deal.Deal().TermMonths)
	}
	return money(deal.Value(key))
}

func editorHint(key string, min, max float64) string {
	switch key {
	case fieldAPR:
		return "Between " + format.Percent(min) + " and " + format.Percent(max)
	case fieldTerm:
		return "Standard terms: 36, 48, 60, 72, 84 months"
	}
	return "Between " + money(min) + " and " + money(max)
}
