package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/howell/dealdial/internal/config"
	"github.com/howell/dealdial/internal/database/repository"
	"github.com/howell/dealdial/internal/format"
)

// Runtime state shared by every tab. Bound once at startup before the
// model exists; panes reach for these instead of threading the config
// and repositories through every constructor.
var (
	runtimeDB     *sql.DB
	runtimeConfig config.Config
	runtimeDeal   *DealControls

	// ratesGeneration bumps whenever rate rows change underneath the
	// caches, e.g. after a reseed. Panes compare it to decide whether
	// their loaded rows are still current.
	ratesGeneration int
)

func bumpRatesGeneration() {
	ratesGeneration++
}

// BindRuntime wires the database and config into the package and
// builds the shared deal state every tab reads. The most recently
// saved deal becomes the working deal; a fresh database starts from
// stock numbers.
func BindRuntime(db *sql.DB, cfg config.Config) {
	runtimeDB = db
	runtimeConfig = cfg
	runtimeDeal = NewDealControls(loadInitialDeal(db), cfg.Controls)
}

func activeDB() *sql.DB {
	return runtimeDB
}

func activeConfig() config.Config {
	return runtimeConfig
}

func activeDeal() *DealControls {
	return runtimeDeal
}

// updateRuntimeConfig persists cfg and pushes the interaction knobs
// into the live controls, so a changed hold cadence or snap window
// applies without a restart.
func updateRuntimeConfig(cfg config.Config) error {
	runtimeConfig = cfg
	if runtimeDeal != nil {
		runtimeDeal.ApplyControlSettings(cfg.Controls)
	}
	return config.Save(cfg)
}

// money renders an amount under the configured currency symbol.
func money(v float64) string {
	return format.MoneyWith(runtimeConfig.UI.CurrencySymbol, v)
}

// moneyDelta renders a signed amount for diff badges.
func moneyDelta(v float64) string {
	if v > 0 {
		return "+" + money(v)
	}
	return money(v)
}

// loadInitialDeal restores the most recently saved deal, falling back
// to stock numbers when the table is empty or unreadable.
func loadInitialDeal(db *sql.DB) repository.Deal {
	stock := repository.Deal{
		Name:         "Working deal",
		VehiclePrice: 32000,
		DownPayment:  3000,
		TradeIn:      0,
		APR:          6.49,
		TermMonths:   60,
	}
	if db == nil {
		return stock
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	deals, err := repository.NewDealRepo(db).List(ctx)
	if err != nil || len(deals) == 0 {
		return stock
	}
	return deals[0]
}
