package app

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/core"
	"github.com/howell/dealdial/internal/format"
	"github.com/howell/dealdial/widgets"
)

// surfaceZone classifies where inside a control pane the pointer sits.
type surfaceZone int

const (
	zoneNone surfaceZone = iota
	zoneDown
	zoneUp
	zoneTrack
)

// controlSurface is a pane hosting one numeric control. The deal tab
// routes mouse events through these, so zone math stays next to the
// widget that rendered it.
type controlSurface interface {
	core.Pane
	FieldKey() string
	Zone(x, y, contentWidth int) surfaceZone
	ValueAt(x, contentWidth int) (float64, bool)
}

// paymentCaption renders the live payment with this field's drift.
func paymentCaption(deal *DealControls, key string) string {
	caption := "Payment " + money(deal.Payment()) + "/mo"
	diff := deal.DiffFor(key)
	if diff.PaymentDiff != nil && !diff.AtBaseline {
		caption += "  " + moneyDelta(*diff.PaymentDiff) + "/mo"
	}
	return caption
}

func diffBadge(diff float64, text string) string {
	tone := widgets.BadgeDown
	if diff > 0 {
		tone = widgets.BadgeUp
	}
	return widgets.Badge{Text: text, Tone: tone}.String()
}

// sliderPane renders a money field as a draggable bar with step arrows
// and the payment readout underneath.
type sliderPane struct {
	id    string
	title string
	scope string
	jump  byte
	key   string
	label string
	min   float64
	max   float64
	deal  *DealControls
}

func newSliderPane(id, title, scope string, jumpKey byte, key, label string, deal *DealControls) *sliderPane {
	min, max := deal.BoundsFor(key)
	return &sliderPane{id: id, title: title, scope: scope, jump: jumpKey, key: key, label: label, min: min, max: max, deal: deal}
}

func (p *sliderPane) ID() string       { return p.id }
func (p *sliderPane) Title() string    { return p.title }
func (p *sliderPane) Scope() string    { return p.scope }
func (p *sliderPane) JumpKey() byte    { return p.jump }
func (p *sliderPane) Focusable() bool  { return true }
func (p *sliderPane) FieldKey() string { return p.key }
func (p *sliderPane) Init() tea.Cmd    { return nil }

func (p *sliderPane) Update(msg tea.Msg) tea.Cmd {
	_ = msg
	return nil
}

func (p *sliderPane) OnSelect() tea.Cmd   { return nil }
func (p *sliderPane) OnDeselect() tea.Cmd { return nil }
func (p *sliderPane) OnFocus() tea.Cmd {
	if c := p.deal.Control(p.key); c != nil {
		c.SetFocused(true)
	}
	return nil
}
func (p *sliderPane) OnBlur() tea.Cmd {
	if c := p.deal.Control(p.key); c != nil {
		c.SetFocused(false)
	}
	return nil
}

func (p *sliderPane) View(width, height int, selected, focused bool) string {
	contentWidth := width - 4
	if contentWidth < 1 {
		contentWidth = 1
	}
	c := p.deal.Control(p.key)
	value := p.deal.Value(p.key)
	diff := p.deal.DiffFor(p.key)

	label := p.label + "  " + money(value)
	if !diff.AtBaseline {
		label += " " + diffBadge(diff.ValueDiff, moneyDelta(diff.ValueDiff))
	}
	baseline, hasBaseline := c.Baseline().Value()

	bar := widgets.ValueBar{
		Min:         p.min,
		Max:         p.max,
		Value:       value,
		Baseline:    baseline,
		HasBaseline: hasBaseline,
		Hovering:    c.Hovering(),
		Holding:     c.HoldDirection(),
		Label:       label,
		Caption:     paymentCaption(p.deal, p.key),
	}

	lines := []string{bar.Render(contentWidth, 3), "", "◂ ▸ step, drag to set. e exact. r reset."}
	content := core.ClipHeight(strings.Join(lines, "\n"), core.MaxInt(3, height-2))
	return widgets.Pane{Title: p.title, Height: height, Content: content, Selected: selected, Focused: focused}.Render(width, height)
}

// Zone maps a content-local position to a hit region. The track sits
// on the second content row, under the label.
func (p *sliderPane) Zone(x, y, contentWidth int) surfaceZone {
	if y != 1 {
		return zoneNone
	}
	if s, e := widgets.ValueBarDownZone(contentWidth); x >= s && x < e {
		return zoneDown
	}
	if s, e := widgets.ValueBarUpZone(contentWidth); x >= s && x < e {
		return zoneUp
	}
	if s, e := widgets.ValueBarTrackZone(contentWidth); x >= s && x < e {
		return zoneTrack
	}
	return zoneNone
}

func (p *sliderPane) ValueAt(x, contentWidth int) (float64, bool) {
	s, e := widgets.ValueBarTrackZone(contentWidth)
	if e <= s {
		return 0, false
	}
	return widgets.ValueAtColumn(x, contentWidth, p.min, p.max), true
}

// stepperPane renders a field as [-] value [+]. Disclosing panes add
// the payment impact line underneath; APR and term use it, since those
// two decide what the borrower actually signs for.
type stepperPane struct {
	id       string
	title    string
	scope    string
	jump     byte
	key      string
	deal     *DealControls
	render   func(float64) string
	delta    func(float64) string
	disclose bool
}

func newStepperPane(id, title, scope string, jumpKey byte, key string, deal *DealControls, render, delta func(float64) string, disclose bool) *stepperPane {
	return &stepperPane{id: id, title: title, scope: scope, jump: jumpKey, key: key, deal: deal, render: render, delta: delta, disclose: disclose}
}

func newTradeInPane(id, title, scope string, jumpKey byte, deal *DealControls) *stepperPane {
	return newStepperPane(id, title, scope, jumpKey, fieldTrade, deal,
		func(v float64) string { return money(v) },
		moneyDelta,
		false,
	)
}

func newAPRPane(id, title, scope string, jumpKey byte, deal *DealControls) *stepperPane {
	return newStepperPane(id, title, scope, jumpKey, fieldAPR, deal, format.Percent, format.PercentDelta, true)
}

func newTermPane(id, title, scope string, jumpKey byte, deal *DealControls) *stepperPane {
	return newStepperPane(id, title, scope, jumpKey, fieldTerm, deal,
		func(v float64) string { return format.Months(int(math.Round(v))) },
		func(v float64) string { return format.MonthsDelta(int(math.Round(v))) },
		true,
	)
}

func (p *stepperPane) ID() string       { return p.id }
func (p *stepperPane) Title() string    { return p.title }
func (p *stepperPane) Scope() string    { return p.scope }
func (p *stepperPane) JumpKey() byte    { return p.jump }
func (p *stepperPane) Focusable() bool  { return true }
func (p *stepperPane) FieldKey() string { return p.key }
func (p *stepperPane) Init() tea.Cmd    { return nil }

func (p *stepperPane) Update(msg tea.Msg) tea.Cmd {
	_ = msg
	return nil
}

func (p *stepperPane) OnSelect() tea.Cmd   { return nil }
func (p *stepperPane) OnDeselect() tea.Cmd { return nil }
func (p *stepperPane) OnFocus() tea.Cmd {
	if c := p.deal.Control(p.key); c != nil {
		c.SetFocused(true)
	}
	return nil
}
func (p *stepperPane) OnBlur() tea.Cmd {
	if c := p.deal.Control(p.key); c != nil {
		c.SetFocused(false)
	}
	return nil
}

func (p *stepperPane) View(width, height int, selected, focused bool) string {
	contentWidth := width - 4
	if contentWidth < 1 {
		contentWidth = 1
	}
	c := p.deal.Control(p.key)
	value := p.deal.Value(p.key)
	diff := p.deal.DiffFor(p.key)

	badge := ""
	if !diff.AtBaseline {
		badge = diffBadge(diff.ValueDiff, p.delta(diff.ValueDiff))
	}
	st := widgets.Stepper{
		Value:    p.render(value),
		Badge:    badge,
		Hovering: c.Hovering(),
		Holding:  c.HoldDirection(),
	}
	if p.disclose {
		st.Disclosure = paymentCaption(p.deal, p.key)
	}

	lines := []string{st.Render(contentWidth, 2), "", "◂ ▸ step. e exact. r reset."}
	content := core.ClipHeight(strings.Join(lines, "\n"), core.MaxInt(3, height-2))
	return widgets.Pane{Title: p.title, Height: height, Content: content, Selected: selected, Focused: focused}.Render(width, height)
}

// Zone maps a content-local position to a button. Steppers have no
// draggable track.
func (p *stepperPane) Zone(x, y, contentWidth int) surfaceZone {
	if y != 0 {
		return zoneNone
	}
	if s, e := widgets.StepperMinusZone(contentWidth); x >= s && x < e {
		return zoneDown
	}
	if s, e := widgets.StepperPlusZone(contentWidth); x >= s && x < e {
		return zoneUp
	}
	return zoneNone
}

func (p *stepperPane) ValueAt(x, contentWidth int) (float64, bool) {
	_ = x
	_ = contentWidth
	return 0, false
}

// summaryPane shows the financing math for the working deal and the
// lender attribution.
type summaryPane struct {
	id    string
	title string
	scope string
	jump  byte
	deal  *DealControls
}

func newSummaryPane(id, title, scope string, jumpKey byte, deal *DealControls) *summaryPane {
	return &summaryPane{id: id, title: title, scope: scope, jump: jumpKey, deal: deal}
}

func (p *summaryPane) ID() string      { return p.id }
func (p *summaryPane) Title() string   { return p.title }
func (p *summaryPane) Scope() string   { return p.scope }
func (p *summaryPane) JumpKey() byte   { return p.jump }
func (p *summaryPane) Focusable() bool { return true }
func (p *summaryPane) Init() tea.Cmd   { return nil }

func (p *summaryPane) Update(msg tea.Msg) tea.Cmd {
	_ = msg
	return nil
}

func (p *summaryPane) OnSelect() tea.Cmd   { return nil }
func (p *summaryPane) OnDeselect() tea.Cmd { return nil }
func (p *summaryPane) OnFocus() tea.Cmd    { return nil }
func (p *summaryPane) OnBlur() tea.Cmd     { return nil }

func (p *summaryPane) View(width, height int, selected, focused bool) string {
	deal := p.deal.Deal()
	lender := p.deal.LenderName()
	if lender == "" {
		lender = "custom rate"
	}

	rows := []string{
		summaryRow("Amount financed", money(deal.AmountFinanced())),
		summaryRow("Monthly payment", money(deal.MonthlyPayment())+"/mo"),
		summaryRow("Total of payments", money(deal.TotalOfPayments())),
		summaryRow("Total interest", money(deal.TotalInterest())),
		"",
		summaryRow("Lender", lender),
		summaryRow("Terms", fmt.Sprintf("%s @ %s", format.Months(deal.TermMonths), format.Percent(deal.APR))),
		"",
		"l lender rates. 2 compare all.",
	}
	content := core.ClipHeight(strings.Join(rows, "\n"), core.MaxInt(3, height-2))
	return widgets.Pane{Title: p.title, Height: height, Content: content, Selected: selected, Focused: focused}.Render(width, height)
}

func summaryRow(label, value string) string {
	return fmt.Sprintf("%-18s %s", label, value)
}
