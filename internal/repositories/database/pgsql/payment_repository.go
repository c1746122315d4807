package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portsrepo "github.com/zhiyar-dev/finman_backend/internal/core/ports/repositories"
	"github.com/zhiyar-dev/finman_backend/internal/models"
	"github.com/zhiyar-dev/finman_backend/internal/utils/mapping"
)

const paymentColumns = `
	payment_id, customer_id, supplier_id, amount, currency_code, exchange_rate,
	date, status, linked_invoice_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// InsertPayment persists a new payment row and returns its generated ID.
func (r *PgxPaymentRepository) InsertPayment(ctx context.Context, payment domain.Payment) (int64, error) {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (
			customer_id, supplier_id, amount, currency_code, exchange_rate,
			date, status, linked_invoice_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING payment_id;
	`
	var paymentID int64
	err := r.Pool.QueryRow(ctx, query,
		m.CustomerID,
		m.SupplierID,
		m.Amount,
		m.CurrencyCode,
		m.ExchangeRate,
		m.Date,
		m.Status,
		m.LinkedInvoiceID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&paymentID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert payment", err)
	}
	return paymentID, nil
}

// UpdatePayment rewrites the mutable fields of a payment row.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		UPDATE payments SET
			amount = $2, currency_code = $3, exchange_rate = $4, date = $5, status = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE payment_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PaymentID,
		m.Amount,
		m.CurrencyCode,
		m.ExchangeRate,
		m.Date,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment "+strconv.FormatInt(m.PaymentID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment " + strconv.FormatInt(m.PaymentID, 10) + " not found")
	}
	return nil
}

// DeletePayment removes a payment row.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, paymentID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete payment "+strconv.FormatInt(paymentID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment " + strconv.FormatInt(paymentID, 10) + " not found")
	}
	return nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	var m models.Payment
	err := r.Pool.QueryRow(ctx, query, paymentID).Scan(
		&m.PaymentID,
		&m.CustomerID,
		&m.SupplierID,
		&m.Amount,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.Date,
		&m.Status,
		&m.LinkedInvoiceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment " + strconv.FormatInt(paymentID, 10) + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+strconv.FormatInt(paymentID, 10), err)
	}

	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

// ListPaymentsByContact retrieves all payments recorded against a contact,
// newest first.
func (r *PgxPaymentRepository) ListPaymentsByContact(ctx context.Context, contactID int64, kind domain.ContactKind) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ` + contactFilterColumn(kind) + ` = $1 ORDER BY date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, contactID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for contact "+strconv.FormatInt(contactID, 10), err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var m models.Payment
		if err := rows.Scan(
			&m.PaymentID,
			&m.CustomerID,
			&m.SupplierID,
			&m.Amount,
			&m.CurrencyCode,
			&m.ExchangeRate,
			&m.Date,
			&m.Status,
			&m.LinkedInvoiceID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for contact "+strconv.FormatInt(contactID, 10), err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for contact "+strconv.FormatInt(contactID, 10), err)
	}

	return mapping.ToDomainPaymentSlice(payments), nil
}

// SumPayments sums, in USD, the payments recorded for a contact of the given
// kind, converting each amount by the rate stored on its row.
func (r *PgxPaymentRepository) SumPayments(ctx context.Context, contactID int64, kind domain.ContactKind) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN currency_code = 'USD' THEN amount
			     ELSE amount / NULLIF(exchange_rate, 0)
			END
		), 0)
		FROM payments
		WHERE ` + contactFilterColumn(kind) + ` = $1;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, contactID).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum payments for contact "+strconv.FormatInt(contactID, 10), err)
	}
	return sum, nil
}

// contactFilterColumn picks the payment column matching a contact kind.
// Exactly one of the two columns is set per row, so filtering on the kind's
// column never picks up the other side's payments.
func contactFilterColumn(kind domain.ContactKind) string {
	if kind == domain.Supplier {
		return "supplier_id"
	}
	return "customer_id"
}
