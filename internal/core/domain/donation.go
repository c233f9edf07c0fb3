package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, matching what clients and the gateway send.
	decimal.MarshalJSONWithoutQuotes = true
}

// DonationStatus represents the lifecycle state of a donation.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed.
func (s DonationStatus) IsTerminal() bool {
	return s == DonationStatusCompleted || s == DonationStatusFailed
}

// CanTransitionTo enforces pending -> completed | failed.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	return s == DonationStatusPending && next.IsTerminal()
}

// Valid reports whether s is a known status.
func (s DonationStatus) Valid() bool {
	switch s {
	case DonationStatusPending, DonationStatusCompleted, DonationStatusFailed:
		return true
	}
	return false
}

// Donor identifies who gave.
type Donor struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Donation is the durable financial record of one gift. It is never deleted.
type Donation struct {
	ID                   uuid.UUID       `json:"id"`
	TransactionReference string          `json:"transactionReference"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Donor                Donor           `json:"donor"`
	Purpose              string          `json:"purpose"`
	Message              string          `json:"message,omitempty"`
	IsRecurring          bool            `json:"isRecurring"`
	Status               DonationStatus  `json:"status"`
	PaymentID            *string         `json:"paymentId,omitempty"`
	PaymentMethod        *string         `json:"paymentMethod,omitempty"`
	GatewayReference     *string         `json:"gatewayReference,omitempty"`
	FailureReason        *string         `json:"failureReason,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	PaidAt               *time.Time      `json:"paidAt,omitempty"`
	VerifiedAt           *time.Time      `json:"verifiedAt,omitempty"`
	UpdatedAt            *time.Time      `json:"updatedAt,omitempty"`
}

// IsCompleted is a convenience for the common check.
func (d *Donation) IsCompleted() bool {
	return d.Status == DonationStatusCompleted
}

// VerifiedPayment is the gateway-confirmed data written on completion.
type VerifiedPayment struct {
	PaymentID        string
	Amount           decimal.Decimal
	Currency         string
	PaymentMethod    string
	GatewayReference string
	VerifiedAt       time.Time
}

// CurrencyTotal sums completed donations in one currency.
type CurrencyTotal struct {
	Currency string          `json:"currency"`
	Count    int64           `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
}

// DonationStats summarises donations for the admin console.
type DonationStats struct {
	Total     int64           `json:"total"`
	Pending   int64           `json:"pending"`
	Completed int64           `json:"completed"`
	Failed    int64           `json:"failed"`
	Totals    []CurrencyTotal `json:"totals"`
}
