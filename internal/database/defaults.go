package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/howell/dealdial/internal/database/repository"
	"github.com/howell/dealdial/internal/finance"
)

// seedQuote is one advertised rate as a lender publishes it. Terms are
// raw: exact odd terms like 66 months get normalized onto the standard
// grid before insert, the same way scraped rates do.
type seedQuote struct {
	lender    string
	termExact int
	termMin   int
	termMax   int
	apr       float64
	condition string
}

var seedQuotes = []seedQuote{
	{lender: "SCCU", termExact: 48, apr: 5.49, condition: "new"},
	{lender: "SCCU", termExact: 66, apr: 5.99, condition: "new"},
	{lender: "SCCU", termExact: 75, apr: 6.49, condition: "new"},
	{lender: "SCCU", termExact: 84, apr: 6.99, condition: "new"},
	{lender: "SCCU", termExact: 66, apr: 6.79, condition: "used"},
	{lender: "Navy Federal", termMin: 37, termMax: 60, apr: 4.29, condition: "new"},
	{lender: "Navy Federal", termMin: 61, termMax: 75, apr: 4.69, condition: "new"},
	{lender: "Navy Federal", termMin: 37, termMax: 60, apr: 5.09, condition: "used"},
	{lender: "PenFed", termExact: 36, apr: 4.99, condition: "new"},
	{lender: "PenFed", termExact: 60, apr: 5.24, condition: "new"},
	{lender: "PenFed", termExact: 72, apr: 5.74, condition: "new"},
	{lender: "PenFed", termExact: 60, apr: 5.99, condition: "used"},
	{lender: "Capital One", termMin: 48, termMax: 72, apr: 6.15, condition: "new"},
	{lender: "Capital One", termMin: 48, termMax: 72, apr: 6.90, condition: "used"},
	{lender: "Chase Auto", termExact: 60, apr: 6.24, condition: "new"},
	{lender: "Chase Auto", termExact: 72, apr: 6.54, condition: "new"},
}

// SeedDefaults ensures baseline lenders and rates exist for new
// databases. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	lenderRepo := repository.NewLenderRepo(db)
	existing, err := lenderRepo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}

	rateRepo := repository.NewRateRepo(db)
	seen := map[string]bool{}
	for _, q := range seedQuotes {
		lenderID := uuid.NewSHA1(uuid.NameSpaceOID, []byte("lender:"+q.lender)).String()
		if !seen[q.lender] {
			if err := lenderRepo.Upsert(ctx, repository.Lender{ID: lenderID, Name: q.lender}); err != nil {
				return fmt.Errorf("seed lender %s: %w", q.lender, err)
			}
			seen[q.lender] = true
		}

		var lo, hi int
		if q.termExact > 0 {
			normalized, err := finance.NormalizeTerm(q.termExact)
			if err != nil {
				return fmt.Errorf("seed rate for %s: %w", q.lender, err)
			}
			lo, hi = normalized, normalized
		} else {
			lo, hi, err = finance.NormalizeTermRange(q.termMin, q.termMax)
			if err != nil {
				return fmt.Errorf("seed rate for %s: %w", q.lender, err)
			}
		}
		label := finance.TermLabel(lo, hi)
		source := q.lender
		rate := repository.Rate{
			ID:               uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("rate:%s:%s:%s", q.lender, q.condition, label))).String(),
			LenderID:         lenderID,
			TermMin:          lo,
			TermMax:          hi,
			TermLabel:        label,
			APR:              q.apr,
			VehicleCondition: q.condition,
			LoanType:         "purchase",
			Source:           &source,
		}
		if err := rateRepo.Upsert(ctx, rate); err != nil {
			return fmt.Errorf("seed rate for %s: %w", q.lender, err)
		}
	}
	return nil
}
