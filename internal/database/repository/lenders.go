package repository

import (
	"context"
	"database/sql"
)

// LenderRepo handles lenders.
type LenderRepo struct {
	db *sql.DB
}

func NewLenderRepo(db *sql.DB) *LenderRepo {
	return &LenderRepo{db: db}
}

func (r *LenderRepo) Upsert(ctx context.Context, l Lender) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO lenders(id, name)
	VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name;
	`, l.ID, l.Name)
	return err
}

func (r *LenderRepo) List(ctx context.Context) ([]Lender, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM lenders ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Lender
	for rows.Next() {
		var l Lender
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LenderRepo) Get(ctx context.Context, id string) (*Lender, error) {
	var l Lender
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM lenders WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
