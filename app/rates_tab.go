package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/core"
	"github.com/howell/dealdial/widgets"
)

// ratesReloadMsg forces the rate panes to requery, e.g. after the
// reload-rates command or a reseed.
type ratesReloadMsg struct{}

// RatesTab compares advertised rates against the working deal. It
// wraps its own type around the pane host because applied rates and
// reloads need tab-level handling.
type RatesTab struct {
	id    string
	title string
	host  core.PaneHost
	deal  *DealControls
	table *ratesTablePane
	chart *ratesChartPane
}

func NewRatesTab(deal *DealControls) *RatesTab {
	table := newRatesTablePane("rates-table", "Lender Rates", "pane:rates:table", 't', deal)
	chart := newRatesChartPane("rates-chart", "Term Comparison", "pane:rates:chart", 'c', deal)
	return &RatesTab{
		id:    "rates",
		title: "Rates",
		host:  core.NewPaneHost(table, chart),
		deal:  deal,
		table: table,
		chart: chart,
	}
}

func (t *RatesTab) ID() string              { return t.id }
func (t *RatesTab) Title() string           { return t.title }
func (t *RatesTab) Scope() string           { return t.host.Scope() }
func (t *RatesTab) ActivePaneTitle() string { return t.host.ActivePaneTitle() }

func (t *RatesTab) InitTab(m *core.Model) tea.Cmd {
	_ = m
	return t.host.Init()
}

func (t *RatesTab) HandlePaneKey(m *core.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	return t.host.HandlePaneKey(m, msg)
}

func (t *RatesTab) JumpTargets() []core.JumpTarget {
	return t.host.JumpTargets()
}

func (t *RatesTab) JumpToTarget(m *core.Model, key string) (bool, tea.Cmd) {
	return t.host.JumpToTarget(m, key)
}

func (t *RatesTab) invalidate() {
	t.table.invalidate()
	t.chart.invalidate()
}

func (t *RatesTab) Build(m *core.Model) widgets.Widget {
	return widgets.VStack{
		Widgets: []widgets.Widget{
			t.host.BuildPaneAt(0, m),
			t.host.BuildPaneAt(1, m),
		},
		Ratios: []float64{0.62, 0.38},
	}
}

func (t *RatesTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case applyLenderMsg:
		return applyLenderToDeal(t.deal, msg)
	case ratesReloadMsg:
		t.invalidate()
		return nil
	}
	return t.host.UpdateActive(m, msg)
}
