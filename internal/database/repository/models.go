package repository

import "time"

// Lender represents a lender row.
type Lender struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Rate represents one advertised APR for a normalized term range.
type Rate struct {
	ID               string
	LenderID         string
	TermMin          int
	TermMax          int
	TermLabel        string
	APR              float64
	VehicleCondition string
	LoanType         string
	Source           *string
	CreatedAt        time.Time
}

// LenderRate is a rate joined with its lender name for display.
type LenderRate struct {
	Rate
	LenderName string
}

// Deal represents a saved financing scenario.
type Deal struct {
	ID           string
	Name         string
	VehiclePrice float64
	DownPayment  float64
	TradeIn      float64
	APR          float64
	TermMonths   int
	LenderID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
