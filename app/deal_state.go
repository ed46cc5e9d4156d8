package app

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/control"
	"github.com/howell/dealdial/internal/config"
	"github.com/howell/dealdial/internal/database/repository"
	"github.com/howell/dealdial/internal/finance"
	"github.com/howell/dealdial/internal/logging"
)

// Field keys for the five numeric controls.
const (
	fieldPrice = "price"
	fieldDown  = "down"
	fieldTrade = "trade"
	fieldAPR   = "apr"
	fieldTerm  = "term"
)

// dealFields fixes render and arbitration scan order.
var dealFields = []string{fieldPrice, fieldDown, fieldTrade, fieldAPR, fieldTerm}

// fieldRange returns the numeric bounds for one field. Money fields
// share the configured snap window; APR and term never snap, because
// their baselines sit on the same grid stepping already lands on.
func fieldRange(key string, cc config.ControlsConfig) (min, max, step, snap float64) {
	switch key {
	case fieldPrice:
		return 0, 200000, 100, cc.SnapThreshold
	case fieldDown:
		return 0, 50000, 100, cc.SnapThreshold
	case fieldTrade:
		return 0, 50000, 100, cc.SnapThreshold
	case fieldAPR:
		return 0, 99.99, 0.01, 0
	case fieldTerm:
		return float64(finance.StandardTerms[0]), float64(finance.StandardTerms[len(finance.StandardTerms)-1]), 12, 0
	}
	return 0, 0, 0, 0
}

func holdTiming(cc config.ControlsConfig) control.HoldTiming {
	return control.HoldTiming{
		Delay:    time.Duration(cc.HoldDelayMS) * time.Millisecond,
		Interval: time.Duration(cc.HoldIntervalMS) * time.Millisecond,
	}
}

// DealControls owns the working deal and the five controls that drive
// it. All tabs share one instance, so a rate applied from the rates
// tab moves the same numbers the deal tab renders, under the same
// baselines.
type DealControls struct {
	deal       finance.Deal
	dealID     string
	dealName   string
	lenderID   *string
	lenderName string

	arbiter  *control.Arbiter
	controls map[string]*control.Control
}

// NewDealControls builds the control set around an initial deal. The
// initial values pin every baseline, so the first render starts with
// zero diffs.
func NewDealControls(initial repository.Deal, cc config.ControlsConfig) *DealControls {
	deal := finance.Deal{
		VehiclePrice: initial.VehiclePrice,
		DownPayment:  initial.DownPayment,
		TradeIn:      initial.TradeIn,
		APR:          initial.APR,
		TermMonths:   initial.TermMonths,
	}
	if term, err := finance.NormalizeTerm(deal.TermMonths); err == nil {
		deal.TermMonths = term
	}

	d := &DealControls{
		deal:     deal,
		dealID:   initial.ID,
		dealName: initial.Name,
		lenderID: initial.LenderID,
		arbiter:  control.NewArbiter(),
		controls: make(map[string]*control.Control, len(dealFields)),
	}
	timing := holdTiming(cc)
	payment := deal.MonthlyPayment()
	for _, key := range dealFields {
		min, max, step, snap := fieldRange(key, cc)
		value := d.Value(key)
		d.controls[key] = control.New(control.Config{
			Min:             min,
			Max:             max,
			Step:            step,
			SnapThreshold:   snap,
			Baseline:        &value,
			BaselinePayment: &payment,
			Timing:          timing,
		}, d.arbiter)
	}
	d.arbiter.Subscribe(func(id control.ControlID) {
		logging.LogOwnerChange(d.fieldByControl(id))
	})
	return d
}

// fieldByControl maps an engine id back to its field key, empty for a
// released owner.
func (d *DealControls) fieldByControl(id control.ControlID) string {
	if id == "" {
		return ""
	}
	for key, c := range d.controls {
		if c.ID() == id {
			return key
		}
	}
	return ""
}

// Deal returns the working deal.
func (d *DealControls) Deal() finance.Deal {
	return d.deal
}

// Payment returns the current monthly payment.
func (d *DealControls) Payment() float64 {
	return d.deal.MonthlyPayment()
}

// DealID returns the saved row id, empty for an unsaved deal.
func (d *DealControls) DealID() string {
	return d.dealID
}

// DealName returns the working deal's name.
func (d *DealControls) DealName() string {
	return d.dealName
}

// LenderID returns the attributed lender, nil when the rate is custom.
func (d *DealControls) LenderID() *string {
	return d.lenderID
}

// LenderName returns the attributed lender's display name, empty when
// the rate is custom.
func (d *DealControls) LenderName() string {
	return d.lenderName
}

// Control returns the engine behind one field, nil for unknown keys.
func (d *DealControls) Control(key string) *control.Control {
	return d.controls[key]
}

// Arbiter returns the shared keyboard arbiter.
func (d *DealControls) Arbiter() *control.Arbiter {
	return d.arbiter
}

// Value reads one field as a float.
func (d *DealControls) Value(key string) float64 {
	switch key {
	case fieldPrice:
		return d.deal.VehiclePrice
	case fieldDown:
		return d.deal.DownPayment
	case fieldTrade:
		return d.deal.TradeIn
	case fieldAPR:
		return d.deal.APR
	case fieldTerm:
		return float64(d.deal.TermMonths)
	}
	return 0
}

// BoundsFor returns the field's numeric range for editor hints.
func (d *DealControls) BoundsFor(key string) (min, max float64) {
	min, max, _, _ = fieldRange(key, config.ControlsConfig{})
	return min, max
}

func (d *DealControls) setValue(key string, v float64) {
	switch key {
	case fieldPrice:
		d.deal.VehiclePrice = v
	case fieldDown:
		d.deal.DownPayment = v
	case fieldTrade:
		d.deal.TradeIn = v
	case fieldAPR:
		d.deal.APR = v
	case fieldTerm:
		d.deal.TermMonths = int(math.Round(v))
	}
	logging.LogDealField(key, v, d.deal.MonthlyPayment())
}

// apply writes one field. Moving a rate-defining field detaches the
// lender attribution: the deal no longer matches any published quote.
// ApplyRate re-attaches after it applies.
func (d *DealControls) apply(key string, value float64) {
	if value == d.Value(key) {
		return
	}
	d.setValue(key, value)
	if key == fieldAPR || key == fieldTerm {
		d.lenderID = nil
		d.lenderName = ""
	}
}

// StepKey moves one field a single notch in direction.
func (d *DealControls) StepKey(key string, direction int) {
	c := d.controls[key]
	if c == nil {
		return
	}
	d.apply(key, c.Step(d.Value(key), direction))
}

// PressHold applies the immediate press step and arms the repeat
// timer. The returned command must be dispatched for repeats to fire.
func (d *DealControls) PressHold(key string, direction int) tea.Cmd {
	c := d.controls[key]
	if c == nil {
		return nil
	}
	value, cmd := c.PressHold(d.Value(key), direction)
	d.apply(key, value)
	return cmd
}

// HoldTick routes a repeat tick to whichever control owns it. ok is
// false for stale or foreign ticks.
func (d *DealControls) HoldTick(msg control.HoldTickMsg) (tea.Cmd, bool) {
	for _, key := range dealFields {
		c := d.controls[key]
		if c.ID() != msg.Control {
			continue
		}
		value, cmd, ok := c.HoldTick(d.Value(key), msg)
		if !ok {
			return nil, false
		}
		d.apply(key, value)
		return cmd, true
	}
	return nil, false
}

// ReleaseHold ends the hold session on one field.
func (d *DealControls) ReleaseHold(key string) {
	if c := d.controls[key]; c != nil {
		c.ReleaseHold()
	}
}

// ReleaseHolds ends every live hold session. Tab switches and modal
// pushes call this so no timer keeps stepping an invisible control.
func (d *DealControls) ReleaseHolds() {
	for _, c := range d.controls {
		c.ReleaseHold()
	}
}

// Holding reports whether any control has a live hold session.
func (d *DealControls) Holding() bool {
	for _, c := range d.controls {
		if c.Holding() {
			return true
		}
	}
	return false
}

// Propose applies an arbitrary raw value, e.g. a slider drag column.
func (d *DealControls) Propose(key string, raw float64) {
	c := d.controls[key]
	if c == nil {
		return
	}
	d.apply(key, c.Propose(d.Value(key), raw))
}

// CommitExact applies a typed value and moves the baseline onto it, so
// a deliberate edit never lights a diff badge. The value clamps to the
// field's range; terms land on the standard grid.
func (d *DealControls) CommitExact(key string, raw float64) {
	c := d.controls[key]
	if c == nil {
		return
	}
	min, max := d.BoundsFor(key)
	value := control.Clamp(math.Round(raw*100)/100, min, max)
	if key == fieldTerm {
		if term, err := finance.NormalizeTerm(int(math.Round(value))); err == nil {
			value = float64(term)
		}
	}
	d.apply(key, value)
	payment := d.deal.MonthlyPayment()
	c.Rebaseline(value, &payment)
}

// ResetKey returns one field to its baseline. ok is false when no
// baseline exists.
func (d *DealControls) ResetKey(key string) bool {
	c := d.controls[key]
	if c == nil {
		return false
	}
	value, ok := c.Reset()
	if !ok {
		return false
	}
	d.apply(key, value)
	return true
}

// ResetAll returns every field to its baseline.
func (d *DealControls) ResetAll() {
	for _, key := range dealFields {
		d.ResetKey(key)
	}
}

// DiffFor reports one field's drift from its baseline.
func (d *DealControls) DiffFor(key string) control.Diff {
	c := d.controls[key]
	if c == nil {
		return control.Diff{AtBaseline: true}
	}
	payment := d.deal.MonthlyPayment()
	return c.Diff(d.Value(key), &payment)
}

// ApplyRate moves APR and term onto a lender's quote and records the
// attribution. Both controls rebaseline on the quote, so an applied
// rate reads as the new anchor rather than a pending change.
func (d *DealControls) ApplyRate(lenderID, lenderName string, rate *repository.Rate) bool {
	if rate == nil {
		return false
	}
	term := d.deal.TermMonths
	if term < rate.TermMin {
		term = rate.TermMin
	}
	if term > rate.TermMax {
		term = rate.TermMax
	}
	if normalized, err := finance.NormalizeTerm(term); err == nil {
		term = normalized
	}

	d.apply(fieldAPR, rate.APR)
	d.apply(fieldTerm, float64(term))
	payment := d.deal.MonthlyPayment()
	d.controls[fieldAPR].Rebaseline(rate.APR, &payment)
	d.controls[fieldTerm].Rebaseline(float64(term), &payment)

	id := lenderID
	d.lenderID = &id
	d.lenderName = lenderName
	logging.LogRateApplied(lenderName, rate.APR, term)
	return true
}

// ApplyControlSettings pushes changed interaction knobs into the live
// controls without rebuilding them.
func (d *DealControls) ApplyControlSettings(cc config.ControlsConfig) {
	timing := holdTiming(cc)
	for key, c := range d.controls {
		c.SetTiming(timing)
		switch key {
		case fieldPrice, fieldDown, fieldTrade:
			c.SetSnapThreshold(cc.SnapThreshold)
		}
	}
}

// Hover moves pointer-over state onto one field, clearing the rest.
// An empty key clears hover everywhere.
func (d *DealControls) Hover(key string) {
	for k, c := range d.controls {
		c.SetHovering(k == key)
	}
}

// RoutedKey returns the field that should receive a global arrow key:
// the hovered control wins, then the keyboard owner. Empty when no
// control qualifies.
func (d *DealControls) RoutedKey(textInputFocused bool) string {
	for _, key := range dealFields {
		if d.controls[key].Hovering() && d.controls[key].RoutesKeys(textInputFocused) {
			return key
		}
	}
	for _, key := range dealFields {
		if d.controls[key].RoutesKeys(textInputFocused) {
			return key
		}
	}
	return ""
}

// Snapshot renders the working deal as a repository row. The id is
// empty until the first save assigns one.
func (d *DealControls) Snapshot() repository.Deal {
	return repository.Deal{
		ID:           d.dealID,
		Name:         d.dealName,
		VehiclePrice: d.deal.VehiclePrice,
		DownPayment:  d.deal.DownPayment,
		TradeIn:      d.deal.TradeIn,
		APR:          d.deal.APR,
		TermMonths:   d.deal.TermMonths,
		LenderID:     d.lenderID,
	}
}

// MarkSaved records the row identity after a successful save.
func (d *DealControls) MarkSaved(id, name string) {
	d.dealID = id
	d.dealName = name
}
