package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/howell/dealdial/core"
	"github.com/howell/dealdial/internal/database"
	"github.com/howell/dealdial/internal/database/repository"
	"github.com/howell/dealdial/internal/format"
	"github.com/howell/dealdial/internal/logging"
	"github.com/howell/dealdial/screens"
)

// applyLenderMsg carries a picked lender's matched rate back to the
// update loop. The picker's select command runs in a goroutine, so the
// deal mutation waits until a tab handles this message.
type applyLenderMsg struct {
	lenderID   string
	lenderName string
	term       int
	rate       *repository.Rate
}

func applyLenderToDeal(deal *DealControls, msg applyLenderMsg) tea.Cmd {
	if msg.rate == nil {
		condition := activeConfig().UI.VehicleCondition
		return core.StatusCmd(fmt.Sprintf("%s has no %s rate for %s vehicles", msg.lenderName, format.Months(msg.term), condition))
	}
	if !deal.ApplyRate(msg.lenderID, msg.lenderName, msg.rate) {
		return nil
	}
	return core.StatusCmd(fmt.Sprintf("%s: %s for %s", msg.lenderName, format.Percent(msg.rate.APR), format.Months(deal.Deal().TermMonths)))
}

func Tabs() []core.Tab {
	deal := activeDeal()
	return []core.Tab{
		NewDealTab(deal),
		NewRatesTab(deal),
		NewSettingsTab(),
	}
}

func ConfigureModel(m *core.Model) {
	if m == nil {
		return
	}

	m.OpenCommandModal = func(model *core.Model, scope string) core.Screen {
		return screens.NewCommandScreen(scope,
			func(query string) []screens.CommandOption {
				results := model.CommandRegistry().Search(query, scope, model)
				out := make([]screens.CommandOption, 0, len(results))
				for _, r := range results {
					out = append(out, screens.CommandOption{ID: r.CommandID, Name: r.Name, Desc: r.Desc, Disabled: r.Disabled, Reason: r.Reason})
				}
				return out
			},
			func(id string) tea.Msg { return core.CommandExecuteMsg{CommandID: id} },
		)
	}

	m.OpenLenderPicker = func(model *core.Model) core.Screen {
		return newLenderPickerScreen()
	}

	m.OpenJumpPickerModal = func(model *core.Model, targets []core.JumpTarget) core.Screen {
		return screens.NewJumpPickerScreen(targets)
	}

	RegisterCommands(m.CommandRegistry())
}

// newLenderPickerScreen snapshots the deal's term and the configured
// condition while still on the update loop; the select callback only
// touches the database, which is safe from a command goroutine.
func newLenderPickerScreen() core.Screen {
	db := activeDB()
	term := activeDeal().Deal().TermMonths
	condition := activeConfig().UI.VehicleCondition

	ctx, cancel := context.WithTimeout(context.Background(), ratesQueryTimeout)
	defer cancel()
	lenders, err := repository.NewLenderRepo(db).List(ctx)
	if err != nil {
		logging.Warn("lender list failed", zap.Error(err))
	}
	rates := repository.NewRateRepo(db)
	items := make([]screens.LenderChoice, 0, len(lenders))
	for _, l := range lenders {
		detail := "no " + format.Months(term) + " rate"
		if rate, err := rates.MatchTerm(ctx, l.ID, term, condition); err == nil && rate != nil {
			detail = format.Percent(rate.APR) + " - " + rate.TermLabel
		}
		items = append(items, screens.LenderChoice{ID: l.ID, Name: l.Name, Detail: detail})
	}

	return screens.NewLenderPicker(items, func(choice screens.LenderChoice) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ratesQueryTimeout)
		defer cancel()
		rate, err := rates.MatchTerm(ctx, choice.ID, term, condition)
		if err != nil {
			return core.StatusMsg{Text: "Rate lookup failed: " + err.Error(), IsErr: true}
		}
		return applyLenderMsg{lenderID: choice.ID, lenderName: choice.Name, term: term, rate: rate}
	})
}

func dealAtBaseline(deal *DealControls) bool {
	for _, key := range dealFields {
		if !deal.DiffFor(key).AtBaseline {
			return false
		}
	}
	return true
}

func RegisterCommands(reg *core.CommandRegistry) {
	reg.Register(core.Command{
		ID:          "switch-deal",
		Name:        "Switch to deal",
		Description: "Activate the deal configurator",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			m.SwitchTab(0)
			return core.StatusCmd("Deal")
		},
	})
	reg.Register(core.Command{
		ID:          "switch-rates",
		Name:        "Switch to rates",
		Description: "Activate the lender rates tab",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			m.SwitchTab(1)
			return core.StatusCmd("Rates")
		},
	})
	reg.Register(core.Command{
		ID:          "switch-settings",
		Name:        "Switch to settings",
		Description: "Activate the settings tab",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			m.SwitchTab(2)
			return core.StatusCmd("Settings")
		},
	})
	reg.Register(core.Command{
		ID:          "save-deal",
		Name:        "Save deal",
		Description: "Persist the working deal",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			deal := activeDeal()
			snap := deal.Snapshot()
			if snap.ID == "" {
				snap.ID = uuid.NewString()
			}
			now := database.Now()
			snap.CreatedAt = now
			snap.UpdatedAt = now
			ctx, cancel := context.WithTimeout(context.Background(), ratesQueryTimeout)
			defer cancel()
			if err := repository.NewDealRepo(activeDB()).Upsert(ctx, snap); err != nil {
				return core.ErrorCmd(fmt.Errorf("save deal: %w", err))
			}
			deal.MarkSaved(snap.ID, snap.Name)
			return core.StatusCmd("Deal saved")
		},
	})
	reg.Register(core.Command{
		ID:          "reset-deal",
		Name:        "Reset deal",
		Description: "Return every control to its baseline",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			activeDeal().ResetAll()
			return core.StatusCmd("All controls reset to baseline")
		},
		Disabled: func(m *core.Model) (bool, string) {
			if dealAtBaseline(activeDeal()) {
				return true, "Deal is already at baseline"
			}
			return false, ""
		},
	})
	reg.Register(core.Command{
		ID:          "zero-trade",
		Name:        "Clear trade-in",
		Description: "Set the trade-in value to zero",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			activeDeal().CommitExact(fieldTrade, 0)
			return core.StatusCmd("Trade-in cleared")
		},
		Disabled: func(m *core.Model) (bool, string) {
			if activeDeal().Value(fieldTrade) == 0 {
				return true, "No trade-in on the deal"
			}
			return false, ""
		},
	})
	reg.Register(core.Command{
		ID:          "reload-rates",
		Name:        "Reload rates",
		Description: "Requery lender rates from the database",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			bumpRatesGeneration()
			return tea.Batch(
				core.StatusCmd("Rates reloaded"),
				func() tea.Msg { return ratesReloadMsg{} },
			)
		},
	})
	reg.Register(core.Command{
		ID:          "apply-best-rate",
		Name:        "Apply best rate",
		Description: "Take the cheapest advertised rate for the current term",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			deal := activeDeal()
			term := deal.Deal().TermMonths
			condition := activeConfig().UI.VehicleCondition
			ctx, cancel := context.WithTimeout(context.Background(), ratesQueryTimeout)
			defer cancel()
			rows, err := repository.NewRateRepo(activeDB()).BestForTerm(ctx, term, condition)
			if err != nil {
				return core.ErrorCmd(fmt.Errorf("rate lookup: %w", err))
			}
			if len(rows) == 0 {
				return core.StatusCmd("No lender covers " + format.Months(term))
			}
			rate := rows[0].Rate
			return applyLenderToDeal(deal, applyLenderMsg{
				lenderID:   rows[0].LenderID,
				lenderName: rows[0].LenderName,
				term:       term,
				rate:       &rate,
			})
		},
	})
}
