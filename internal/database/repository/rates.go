package repository

import (
	"context"
	"database/sql"
)

// RateRepo handles advertised rates. Terms are stored already
// normalized to the standard grid; matching queries take a normalized
// term and find the range containing it.
type RateRepo struct {
	db *sql.DB
}

func NewRateRepo(db *sql.DB) *RateRepo {
	return &RateRepo{db: db}
}

func (r *RateRepo) Upsert(ctx context.Context, rate Rate) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO rates(id, lender_id, term_min, term_max, term_label, apr, vehicle_condition, loan_type, source)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 lender_id=excluded.lender_id,
	 term_min=excluded.term_min,
	 term_max=excluded.term_max,
	 term_label=excluded.term_label,
	 apr=excluded.apr,
	 vehicle_condition=excluded.vehicle_condition,
	 loan_type=excluded.loan_type,
	 source=excluded.source;
	`, rate.ID, rate.LenderID, rate.TermMin, rate.TermMax, rate.TermLabel,
		rate.APR, rate.VehicleCondition, rate.LoanType, rate.Source)
	return err
}

func (r *RateRepo) ListByLender(ctx context.Context, lenderID string) ([]Rate, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, lender_id, term_min, term_max, term_label, apr, vehicle_condition, loan_type, source, created_at
	FROM rates
	WHERE lender_id = ?
	ORDER BY vehicle_condition, term_min, apr`, lenderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRates(rows)
}

// MatchTerm finds the lowest APR a lender advertises for a normalized
// term. nil means the lender has no rate covering that term.
func (r *RateRepo) MatchTerm(ctx context.Context, lenderID string, term int, condition string) (*Rate, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, lender_id, term_min, term_max, term_label, apr, vehicle_condition, loan_type, source, created_at
	FROM rates
	WHERE lender_id = ? AND vehicle_condition = ? AND term_min <= ? AND term_max >= ?
	ORDER BY apr ASC
	LIMIT 1`, lenderID, condition, term, term)
	rate, err := scanRate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rate, nil
}

// BestForTerm ranks every lender's best rate covering a normalized
// term, cheapest first.
func (r *RateRepo) BestForTerm(ctx context.Context, term int, condition string) ([]LenderRate, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT r.id, r.lender_id, r.term_min, r.term_max, r.term_label, r.apr, r.vehicle_condition, r.loan_type, r.source, r.created_at, l.name
	FROM rates r
	JOIN lenders l ON l.id = r.lender_id
	WHERE r.vehicle_condition = ? AND r.term_min <= ? AND r.term_max >= ?
	  AND r.apr = (
	    SELECT MIN(r2.apr) FROM rates r2
	    WHERE r2.lender_id = r.lender_id AND r2.vehicle_condition = r.vehicle_condition
	      AND r2.term_min <= ? AND r2.term_max >= ?
	  )
	ORDER BY r.apr ASC, l.name`, condition, term, term, term, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LenderRate
	for rows.Next() {
		var lr LenderRate
		if err := rows.Scan(&lr.ID, &lr.LenderID, &lr.TermMin, &lr.TermMax, &lr.TermLabel,
			&lr.APR, &lr.VehicleCondition, &lr.LoanType, &lr.Source, &lr.CreatedAt, &lr.LenderName); err != nil {
			return nil, err
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRate(row rowScanner) (*Rate, error) {
	var rate Rate
	err := row.Scan(&rate.ID, &rate.LenderID, &rate.TermMin, &rate.TermMax, &rate.TermLabel,
		&rate.APR, &rate.VehicleCondition, &rate.LoanType, &rate.Source, &rate.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func scanRates(rows *sql.Rows) ([]Rate, error) {
	var out []Rate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rate)
	}
	return out, rows.Err()
}
