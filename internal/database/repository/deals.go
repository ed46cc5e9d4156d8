package repository

import (
	"context"
	"database/sql"
)

// DealRepo handles saved financing scenarios.
type DealRepo struct {
	db *sql.DB
}

func NewDealRepo(db *sql.DB) *DealRepo {
	return &DealRepo{db: db}
}

func (r *DealRepo) Upsert(ctx context.Context, d Deal) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO deals(id, name, vehicle_price, down_payment, trade_in, apr, term_months, lender_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 vehicle_price=excluded.vehicle_price,
	 down_payment=excluded.down_payment,
	 trade_in=excluded.trade_in,
	 apr=excluded.apr,
	 term_months=excluded.term_months,
	 lender_id=excluded.lender_id,
	 updated_at=excluded.updated_at;
	`, d.ID, d.Name, d.VehiclePrice, d.DownPayment, d.TradeIn, d.APR, d.TermMonths,
		d.LenderID, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *DealRepo) List(ctx context.Context) ([]Deal, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, vehicle_price, down_payment, trade_in, apr, term_months, lender_id, created_at, updated_at
	FROM deals
	ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Deal
	for rows.Next() {
		var d Deal
		if err := rows.Scan(&d.ID, &d.Name, &d.VehiclePrice, &d.DownPayment, &d.TradeIn,
			&d.APR, &d.TermMonths, &d.LenderID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DealRepo) Get(ctx context.Context, id string) (*Deal, error) {
	var d Deal
	err := r.db.QueryRowContext(ctx, `
	SELECT id, name, vehicle_price, down_payment, trade_in, apr, term_months, lender_id, created_at, updated_at
	FROM deals WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.VehiclePrice, &d.DownPayment, &d.TradeIn,
			&d.APR, &d.TermMonths, &d.LenderID, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DealRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, id)
	return err
}
