package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

const donationColumns = `id, transaction_reference, amount, currency, donor_email, donor_name, purpose, message,
	is_recurring, status, payment_id, payment_method, gateway_reference, failure_reason,
	created_at, paid_at, verified_at, updated_at`

// DonationRepo implements ports.DonationRepository.
type DonationRepo struct {
	pool Pool
}

// NewDonationRepo creates a new DonationRepo.
func NewDonationRepo(pool Pool) *DonationRepo {
	return &DonationRepo{pool: pool}
}

// Create inserts a new donation.
func (r *DonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	query := `INSERT INTO donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.TransactionReference, d.Amount, d.Currency, d.Donor.Email, d.Donor.FullName,
		d.Purpose, d.Message, d.IsRecurring, d.Status, d.PaymentID, d.PaymentMethod,
		d.GatewayReference, d.FailureReason, d.CreatedAt, d.PaidAt, d.VerifiedAt, d.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert donation", err)
	}
	return nil
}

// GetByReference fetches a donation by its transaction reference.
func (r *DonationRepo) GetByReference(ctx context.Context, reference string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE transaction_reference = $1`
	return r.scanDonation(r.pool.QueryRow(ctx, query, reference))
}

// AttachPaymentID records the gateway payment id on a pending donation.
func (r *DonationRepo) AttachPaymentID(ctx context.Context, reference string, paymentID string) error {
	query := `UPDATE donations SET payment_id = $1, updated_at = $2
		WHERE transaction_reference = $3 AND status = 'pending'`

	if _, err := r.pool.Exec(ctx, query, paymentID, time.Now().UTC(), reference); err != nil {
		return wrapErr("attach payment id", err)
	}
	return nil
}

// MarkCompleted moves a pending donation to completed with the verified
// payment details.
func (r *DonationRepo) MarkCompleted(ctx context.Context, reference string, p domain.VerifiedPayment) (*domain.Donation, bool, error) {
	query := `UPDATE donations SET status = 'completed', payment_id = $2, amount = $3, currency = $4,
		payment_method = $5, gateway_reference = $6, paid_at = $7, verified_at = $7, updated_at = $7
		WHERE transaction_reference = $1 AND status = 'pending'
		RETURNING ` + donationColumns

	row := r.pool.QueryRow(ctx, query, reference, p.PaymentID, p.Amount, p.Currency,
		p.PaymentMethod, p.GatewayReference, p.VerifiedAt)
	return r.transition(ctx, reference, row)
}

// MarkFailed moves a pending donation to failed with reason.
func (r *DonationRepo) MarkFailed(ctx context.Context, reference string, reason string) (*domain.Donation, bool, error) {
	query := `UPDATE donations SET status = 'failed', failure_reason = $2, updated_at = $3
		WHERE transaction_reference = $1 AND status = 'pending'
		RETURNING ` + donationColumns

	row := r.pool.QueryRow(ctx, query, reference, reason, time.Now().UTC())
	return r.transition(ctx, reference, row)
}

// transition returns the updated row, or the current row when the
// conditional update matched nothing.
func (r *DonationRepo) transition(ctx context.Context, reference string, row pgx.Row) (*domain.Donation, bool, error) {
	d, err := r.scanDonation(row)
	if err != nil {
		return nil, false, err
	}
	if d != nil {
		return d, true, nil
	}

	current, err := r.GetByReference(ctx, reference)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

// List fetches donations newest first with an optional status filter.
func (r *DonationRepo) List(ctx context.Context, params ports.DonationListParams) ([]domain.Donation, int64, error) {
	var conditions []string
	var args []any

	if params.Status != nil {
		args = append(args, *params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	where := whereClause(conditions)

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM donations "+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("count donations", err)
	}

	query := listQuery("SELECT "+donationColumns+" FROM donations", where, "created_at DESC", len(args))
	args = append(args, params.Page.Limit, params.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list donations", err)
	}
	defer rows.Close()

	var out []domain.Donation
	for rows.Next() {
		d, err := r.scanDonation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate donation rows: %w", err)
	}
	return out, total, nil
}

// GetStats counts donations per status and sums completed amounts per currency.
func (r *DonationRepo) GetStats(ctx context.Context) (*domain.DonationStats, error) {
	stats := &domain.DonationStats{Totals: []domain.CurrencyTotal{}}

	err := r.pool.QueryRow(ctx, `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'pending') AS pending,
		COUNT(*) FILTER (WHERE status = 'completed') AS completed,
		COUNT(*) FILTER (WHERE status = 'failed') AS failed
		FROM donations`).Scan(&stats.Total, &stats.Pending, &stats.Completed, &stats.Failed)
	if err != nil {
		return nil, wrapErr("get donation stats", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT currency, COUNT(*), COALESCE(SUM(amount), 0)
		FROM donations WHERE status = 'completed' GROUP BY currency ORDER BY currency`)
	if err != nil {
		return nil, wrapErr("get donation totals", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ct domain.CurrencyTotal
		if err := rows.Scan(&ct.Currency, &ct.Count, &ct.Amount); err != nil {
			return nil, fmt.Errorf("scan donation total: %w", err)
		}
		stats.Totals = append(stats.Totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donation totals: %w", err)
	}
	return stats, nil
}

func (r *DonationRepo) scanDonation(row pgx.Row) (*domain.Donation, error) {
	d := &domain.Donation{}
	err := row.Scan(
		&d.ID, &d.TransactionReference, &d.Amount, &d.Currency, &d.Donor.Email, &d.Donor.FullName,
		&d.Purpose, &d.Message, &d.IsRecurring, &d.Status, &d.PaymentID, &d.PaymentMethod,
		&d.GatewayReference, &d.FailureReason, &d.CreatedAt, &d.PaidAt, &d.VerifiedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("scan donation", err)
	}
	return d, nil
}
