package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/core"
	"github.com/howell/dealdial/internal/database/repository"
	"github.com/howell/dealdial/internal/finance"
	"github.com/howell/dealdial/internal/format"
	"github.com/howell/dealdial/widgets"
)

const ratesQueryTimeout = 2 * time.Second

// ratesTablePane ranks every lender's best rate for the working deal's
// term, cheapest first, with the payment each one would produce.
// Enter applies the row under the cursor and returns to the deal.
type ratesTablePane struct {
	id    string
	title string
	scope string
	jump  byte
	deal  *DealControls

	rows             []repository.LenderRate
	cursor           int
	loaded           bool
	loadedTerm       int
	loadedCondition  string
	loadedGeneration int
	errMsg           string
}

func newRatesTablePane(id, title, scope string, jumpKey byte, deal *DealControls) *ratesTablePane {
	return &ratesTablePane{id: id, title: title, scope: scope, jump: jumpKey, deal: deal}
}

func (p *ratesTablePane) ID() string      { return p.id }
func (p *ratesTablePane) Title() string   { return p.title }
func (p *ratesTablePane) Scope() string   { return p.scope }
func (p *ratesTablePane) JumpKey() byte   { return p.jump }
func (p *ratesTablePane) Focusable() bool { return true }

func (p *ratesTablePane) Init() tea.Cmd {
	p.reload()
	return nil
}

func (p *ratesTablePane) OnSelect() tea.Cmd   { return nil }
func (p *ratesTablePane) OnDeselect() tea.Cmd { return nil }
func (p *ratesTablePane) OnFocus() tea.Cmd    { return nil }
func (p *ratesTablePane) OnBlur() tea.Cmd     { return nil }

func (p *ratesTablePane) invalidate() {
	p.loaded = false
	p.errMsg = ""
}

// reload refreshes the ranking when the term, the vehicle condition,
// or the rate data itself moved since the last load.
func (p *ratesTablePane) reload() {
	term := p.deal.Deal().TermMonths
	condition := activeConfig().UI.VehicleCondition
	if p.loaded && p.errMsg == "" &&
		term == p.loadedTerm && condition == p.loadedCondition && ratesGeneration == p.loadedGeneration {
		return
	}
	db := activeDB()
	if db == nil {
		p.errMsg = "no database"
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), ratesQueryTimeout)
	defer cancel()
	rows, err := repository.NewRateRepo(db).BestForTerm(ctx, term, condition)
	if err != nil {
		p.errMsg = err.Error()
		return
	}
	p.rows = rows
	p.loaded = true
	p.loadedTerm = term
	p.loadedCondition = condition
	p.loadedGeneration = ratesGeneration
	p.errMsg = ""
	p.clampCursor()
}

func (p *ratesTablePane) clampCursor() {
	if p.cursor >= len(p.rows) {
		p.cursor = len(p.rows) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *ratesTablePane) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	p.reload()
	switch keyMsg.String() {
	case "j", "down":
		p.cursor++
		p.clampCursor()
	case "k", "up":
		p.cursor--
		p.clampCursor()
	case "enter":
		return p.applySelected()
	}
	return nil
}

// applySelected lands the cursor row on the shared deal and jumps back
// to the deal tab so the effect is visible immediately.
func (p *ratesTablePane) applySelected() tea.Cmd {
	if p.cursor < 0 || p.cursor >= len(p.rows) {
		return core.StatusCmd("No rate to apply")
	}
	row := p.rows[p.cursor]
	rate := row.Rate
	if !p.deal.ApplyRate(row.LenderID, row.LenderName, &rate) {
		return core.StatusCmd("No rate to apply")
	}
	deal := p.deal.Deal()
	return tea.Batch(
		core.StatusCmd(fmt.Sprintf("Applied %s: %s for %s", row.LenderName, format.Percent(rate.APR), format.Months(deal.TermMonths))),
		func() tea.Msg { return core.TabSwitchMsg{Index: 0} },
	)
}

func (p *ratesTablePane) View(width, height int, selected, focused bool) string {
	p.reload()
	contentWidth := width - 4
	if contentWidth < 1 {
		contentWidth = 1
	}

	deal := p.deal.Deal()
	lines := []string{fmt.Sprintf("Best rates for %s, %s vehicles", format.Months(deal.TermMonths), p.loadedCondition)}
	switch {
	case p.errMsg != "":
		lines = append(lines, "Failed to load rates: "+p.errMsg)
	case len(p.rows) == 0:
		lines = append(lines, "", "No lender covers this term. Try another term or reseed rates.")
	default:
		lines = append(lines, "", fmt.Sprintf("  %-16s %-10s %-7s %s", "Lender", "Terms", "APR", "Payment"))
		amount := deal.AmountFinanced()
		for idx, row := range p.rows {
			prefix := "  "
			if idx == p.cursor {
				prefix = "> "
			}
			payment := finance.MonthlyPayment(amount, row.APR, deal.TermMonths)
			lines = append(lines, fmt.Sprintf("%s%-16s %-10s %-7s %s/mo",
				prefix, row.LenderName, row.TermLabel, format.Percent(row.APR), money(payment)))
		}
	}
	lines = append(lines, "", "j/k move. enter apply. l lender picker.")
	content := core.ClipHeight(strings.Join(lines, "\n"), core.MaxInt(3, height-2))
	return widgets.Pane{Title: p.title, Height: height, Content: content, Selected: selected, Focused: focused}.Render(width, height)
}

// ratesChartPane charts the payment the working deal would carry at
// each standard term, using the cheapest rate covering that term.
type ratesChartPane struct {
	id    string
	title string
	scope string
	jump  byte
	deal  *DealControls

	best             map[int]repository.LenderRate
	loaded           bool
	loadedCondition  string
	loadedGeneration int
	errMsg           string
}

func newRatesChartPane(id, title, scope string, jumpKey byte, deal *DealControls) *ratesChartPane {
	return &ratesChartPane{id: id, title: title, scope: scope, jump: jumpKey, deal: deal}
}

func (p *ratesChartPane) ID() string      { return p.id }
func (p *ratesChartPane) Title() string   { return p.title }
func (p *ratesChartPane) Scope() string   { return p.scope }
func (p *ratesChartPane) JumpKey() byte   { return p.jump }
func (p *ratesChartPane) Focusable() bool { return false }

func (p *ratesChartPane) Init() tea.Cmd {
	p.reload()
	return nil
}

func (p *ratesChartPane) Update(msg tea.Msg) tea.Cmd {
	_ = msg
	return nil
}

func (p *ratesChartPane) OnSelect() tea.Cmd   { return nil }
func (p *ratesChartPane) OnDeselect() tea.Cmd { return nil }
func (p *ratesChartPane) OnFocus() tea.Cmd    { return nil }
func (p *ratesChartPane) OnBlur() tea.Cmd     { return nil }

func (p *ratesChartPane) invalidate() {
	p.loaded = false
	p.errMsg = ""
}

// reload caches the best APR per standard term. Payments recompute on
// every render instead, since the financed amount moves with the
// sliders.
func (p *ratesChartPane) reload() {
	condition := activeConfig().UI.VehicleCondition
	if p.loaded && p.errMsg == "" &&
		condition == p.loadedCondition && ratesGeneration == p.loadedGeneration {
		return
	}
	db := activeDB()
	if db == nil {
		p.errMsg = "no database"
		return
	}
	repo := repository.NewRateRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), ratesQueryTimeout)
	defer cancel()

	best := make(map[int]repository.LenderRate, len(finance.StandardTerms))
	for _, term := range finance.StandardTerms {
		rows, err := repo.BestForTerm(ctx, term, condition)
		if err != nil {
			p.errMsg = err.Error()
			return
		}
		if len(rows) > 0 {
			best[term] = rows[0]
		}
	}
	p.best = best
	p.loaded = true
	p.loadedCondition = condition
	p.loadedGeneration = ratesGeneration
	p.errMsg = ""
}

func (p *ratesChartPane) View(width, height int, selected, focused bool) string {
	p.reload()
	contentWidth := width - 4
	if contentWidth < 1 {
		contentWidth = 1
	}

	var content string
	if p.errMsg != "" {
		content = "Failed to load rates: " + p.errMsg
	} else {
		amount := p.deal.Deal().AmountFinanced()
		points := make([]widgets.ChartPoint, 0, len(finance.StandardTerms))
		for _, term := range finance.StandardTerms {
			row, ok := p.best[term]
			if !ok {
				continue
			}
			points = append(points, widgets.ChartPoint{
				Label: fmt.Sprintf("%s %s", format.Months(term), format.Percent(row.APR)),
				Value: finance.MonthlyPayment(amount, row.APR, term),
			})
		}
		chart := widgets.Chart{
			Title:  "Payment by term at the best advertised rate",
			Data:   points,
			Format: func(v float64) string { return money(v) + "/mo" },
		}
		content = chart.Render(contentWidth, core.MaxInt(3, height-2))
	}
	content = core.ClipHeight(content, core.MaxInt(3, height-2))
	return widgets.Pane{Title: p.title, Height: height, Content: content, Selected: selected, Focused: focused}.Render(width, height)
}
