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
	"github.com/zhiyar-dev/finman_backend/internal/utils/pagination"
)

const invoiceColumns = `
	invoice_id, invoice_type, customer_id, supplier_id, date, currency_code, exchange_rate,
	total_amount, tax_amount, status, payment_instructions, payment_term, notes,
	shipping_fee, shipping_currency, shipping_rate,
	transporting_fee, transporting_currency, transporting_rate,
	uploading_fee, uploading_currency, uploading_rate,
	tax_fee, tax_fee_currency, tax_fee_rate,
	created_at, created_by, last_updated_at, last_updated_by`

// maxSequenceQuery extracts the numeric tail of IDs sharing a prefix, e.g.
// "Sell 00042" yields 42 for prefix "Sell".
const maxSequenceQuery = `
	SELECT COALESCE(MAX(CAST(SUBSTRING(invoice_id FROM '[0-9]+$') AS INTEGER)), 0)
	FROM invoices
	WHERE invoice_id LIKE $1 || ' %';
`

const lineItemInsertQuery = `
	INSERT INTO invoice_line_items (
		invoice_id, product_id, warehouse_id, quantity, unit,
		original_unit_price, adjusted_unit_price, discount_percent, total_price, currency_code
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice and line item data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryWithTx
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

// SaveInvoice inserts an invoice header and its line items in one transaction.
// The invoice ID is assigned here: an advisory lock on the type prefix
// serializes concurrent saves, so two invoices can never share a sequence
// number.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lineItems []domain.LineItem) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	prefix := domain.PrefixForType(invoice.InvoiceType)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, prefix); err != nil {
		return "", apperrors.NewAppError(500, "failed to lock invoice sequence for prefix "+prefix, err)
	}

	var maxSeq int
	if err := tx.QueryRow(ctx, maxSequenceQuery, prefix).Scan(&maxSeq); err != nil {
		return "", apperrors.NewAppError(500, "failed to read invoice sequence for prefix "+prefix, err)
	}
	invoice.InvoiceID = domain.FormatInvoiceID(prefix, maxSeq+1)

	modelInvoice := mapping.ToModelInvoice(invoice)
	insertQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		modelInvoice.InvoiceID,
		modelInvoice.InvoiceType,
		modelInvoice.CustomerID,
		modelInvoice.SupplierID,
		modelInvoice.Date,
		modelInvoice.CurrencyCode,
		modelInvoice.ExchangeRate,
		modelInvoice.TotalAmount,
		modelInvoice.TaxAmount,
		modelInvoice.Status,
		modelInvoice.PaymentInstructions,
		modelInvoice.PaymentTerm,
		modelInvoice.Notes,
		modelInvoice.ShippingFee,
		modelInvoice.ShippingCurrency,
		modelInvoice.ShippingRate,
		modelInvoice.TransportingFee,
		modelInvoice.TransportingCurrency,
		modelInvoice.TransportingRate,
		modelInvoice.UploadingFee,
		modelInvoice.UploadingCurrency,
		modelInvoice.UploadingRate,
		modelInvoice.TaxFee,
		modelInvoice.TaxFeeCurrency,
		modelInvoice.TaxFeeRate,
		modelInvoice.CreatedAt,
		modelInvoice.CreatedBy,
		modelInvoice.LastUpdatedAt,
		modelInvoice.LastUpdatedBy,
	); err != nil {
		return "", apperrors.NewAppError(500, "failed to insert invoice "+modelInvoice.InvoiceID, err)
	}

	if err := r.insertLineItemsInTx(ctx, tx, modelInvoice.InvoiceID, lineItems); err != nil {
		return "", err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return modelInvoice.InvoiceID, nil
}

func (r *PgxInvoiceRepository) insertLineItemsInTx(ctx context.Context, tx pgx.Tx, invoiceID string, lineItems []domain.LineItem) error {
	batch := &pgx.Batch{}
	for _, item := range lineItems {
		modelItem := mapping.ToModelLineItem(item)
		batch.Queue(lineItemInsertQuery,
			invoiceID,
			modelItem.ProductID,
			modelItem.WarehouseID,
			modelItem.Quantity,
			modelItem.Unit,
			modelItem.OriginalUnitPrice,
			modelItem.AdjustedUnitPrice,
			modelItem.DiscountPercent,
			modelItem.TotalPrice,
			modelItem.CurrencyCode,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items for invoice "+invoiceID, err)
	}
	return nil
}

// UpdateInvoice rewrites an invoice header and replaces its line items in one
// transaction.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, lineItems []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelInvoice := mapping.ToModelInvoice(invoice)
	updateQuery := `
		UPDATE invoices SET
			date = $2, currency_code = $3, exchange_rate = $4,
			total_amount = $5, tax_amount = $6,
			payment_instructions = $7, payment_term = $8, notes = $9,
			shipping_fee = $10, shipping_currency = $11, shipping_rate = $12,
			transporting_fee = $13, transporting_currency = $14, transporting_rate = $15,
			uploading_fee = $16, uploading_currency = $17, uploading_rate = $18,
			tax_fee = $19, tax_fee_currency = $20, tax_fee_rate = $21,
			last_updated_at = $22, last_updated_by = $23
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		modelInvoice.InvoiceID,
		modelInvoice.Date,
		modelInvoice.CurrencyCode,
		modelInvoice.ExchangeRate,
		modelInvoice.TotalAmount,
		modelInvoice.TaxAmount,
		modelInvoice.PaymentInstructions,
		modelInvoice.PaymentTerm,
		modelInvoice.Notes,
		modelInvoice.ShippingFee,
		modelInvoice.ShippingCurrency,
		modelInvoice.ShippingRate,
		modelInvoice.TransportingFee,
		modelInvoice.TransportingCurrency,
		modelInvoice.TransportingRate,
		modelInvoice.UploadingFee,
		modelInvoice.UploadingCurrency,
		modelInvoice.UploadingRate,
		modelInvoice.TaxFee,
		modelInvoice.TaxFeeCurrency,
		modelInvoice.TaxFeeRate,
		modelInvoice.LastUpdatedAt,
		modelInvoice.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+modelInvoice.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + modelInvoice.InvoiceID + " not found")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1;`, modelInvoice.InvoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to clear line items for invoice "+modelInvoice.InvoiceID, err)
	}
	if err := r.insertLineItemsInTx(ctx, tx, modelInvoice.InvoiceID, lineItems); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReplaceLineItems deletes the existing line items of an invoice and inserts
// the provided set, transactionally.
func (r *PgxInvoiceRepository) ReplaceLineItems(ctx context.Context, invoiceID string, lineItems []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1;`, invoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to clear line items for invoice "+invoiceID, err)
	}
	if err := r.insertLineItemsInTx(ctx, tx, invoiceID, lineItems); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoiceStatus sets the settlement status of an invoice.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE invoices SET status = $2 WHERE invoice_id = $1;`, invoiceID, string(status))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}
	return nil
}

// DeleteInvoice removes an invoice and its line items.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1;`, invoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete line items for invoice "+invoiceID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice header with its line items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	var m models.Invoice
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(
		&m.InvoiceID,
		&m.InvoiceType,
		&m.CustomerID,
		&m.SupplierID,
		&m.Date,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.TotalAmount,
		&m.TaxAmount,
		&m.Status,
		&m.PaymentInstructions,
		&m.PaymentTerm,
		&m.Notes,
		&m.ShippingFee,
		&m.ShippingCurrency,
		&m.ShippingRate,
		&m.TransportingFee,
		&m.TransportingCurrency,
		&m.TransportingRate,
		&m.UploadingFee,
		&m.UploadingCurrency,
		&m.UploadingRate,
		&m.TaxFee,
		&m.TaxFeeCurrency,
		&m.TaxFeeRate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}

	lineItems, err := r.findLineItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	invoice := mapping.ToDomainInvoice(m)
	invoice.LineItems = lineItems
	return &invoice, nil
}

func (r *PgxInvoiceRepository) findLineItems(ctx context.Context, invoiceID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_item_id, invoice_id, product_id, warehouse_id, quantity, unit,
		       original_unit_price, adjusted_unit_price, discount_percent, total_price, currency_code
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for invoice "+invoiceID, err)
	}
	defer rows.Close()

	items := []models.LineItem{}
	for rows.Next() {
		var item models.LineItem
		if err := rows.Scan(
			&item.LineItemID,
			&item.InvoiceID,
			&item.ProductID,
			&item.WarehouseID,
			&item.Quantity,
			&item.Unit,
			&item.OriginalUnitPrice,
			&item.AdjustedUnitPrice,
			&item.DiscountPercent,
			&item.TotalPrice,
			&item.CurrencyCode,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for invoice "+invoiceID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for invoice "+invoiceID, err)
	}

	return mapping.ToDomainLineItemSlice(items), nil
}

// GetInvoiceSettlementInfo retrieves the header fields payment application needs.
func (r *PgxInvoiceRepository) GetInvoiceSettlementInfo(ctx context.Context, invoiceID string) (*domain.InvoiceSettlementInfo, error) {
	query := `SELECT invoice_id, total_amount, currency_code, exchange_rate, status FROM invoices WHERE invoice_id = $1;`

	var info domain.InvoiceSettlementInfo
	var currencyCode, status string
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(
		&info.InvoiceID,
		&info.TotalAmount,
		&currencyCode,
		&info.ExchangeRate,
		&status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to load settlement info for invoice "+invoiceID, err)
	}
	info.CurrencyCode = domain.CurrencyCode(currencyCode)
	info.Status = domain.InvoiceStatus(status)
	return &info, nil
}

// ListInvoices retrieves a page of invoice headers, newest first, using
// token-based cursor pagination over (date, created_at).
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + invoiceColumns + ` FROM invoices`
	orderByClause := `ORDER BY date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `WHERE (date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	headers := []models.Invoice{}
	for rows.Next() {
		var m models.Invoice
		if err := rows.Scan(
			&m.InvoiceID,
			&m.InvoiceType,
			&m.CustomerID,
			&m.SupplierID,
			&m.Date,
			&m.CurrencyCode,
			&m.ExchangeRate,
			&m.TotalAmount,
			&m.TaxAmount,
			&m.Status,
			&m.PaymentInstructions,
			&m.PaymentTerm,
			&m.Notes,
			&m.ShippingFee,
			&m.ShippingCurrency,
			&m.ShippingRate,
			&m.TransportingFee,
			&m.TransportingCurrency,
			&m.TransportingRate,
			&m.UploadingFee,
			&m.UploadingCurrency,
			&m.UploadingRate,
			&m.TaxFee,
			&m.TaxFeeCurrency,
			&m.TaxFeeRate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var newNextToken *string
	if len(headers) > limit {
		lastVisible := headers[limit-1]
		token := pagination.EncodeToken(lastVisible.Date, lastVisible.CreatedAt)
		newNextToken = &token
		headers = headers[:limit]
	}

	invoices := make([]domain.Invoice, len(headers))
	for i, m := range headers {
		invoices[i] = mapping.ToDomainInvoice(m)
	}
	return invoices, newNextToken, nil
}

// MaxInvoiceSequence returns the highest sequence already issued for a prefix.
func (r *PgxInvoiceRepository) MaxInvoiceSequence(ctx context.Context, prefix string) (int, error) {
	var maxSeq int
	if err := r.Pool.QueryRow(ctx, maxSequenceQuery, prefix).Scan(&maxSeq); err != nil {
		return 0, apperrors.NewAppError(500, "failed to read invoice sequence for prefix "+prefix, err)
	}
	return maxSeq, nil
}

// SumUnpaidInvoices sums, in USD, the totals of a contact's invoices of the
// given type that are not fully paid. Totals stored in other currencies are
// converted by the rate on their invoice.
func (r *PgxInvoiceRepository) SumUnpaidInvoices(ctx context.Context, contactID int64, invoiceType domain.InvoiceType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN currency_code = 'USD' THEN total_amount
			     ELSE total_amount / NULLIF(exchange_rate, 0)
			END
		), 0)
		FROM invoices
		WHERE invoice_type = $2
		  AND status <> 'PAID'
		  AND (customer_id = $1 OR supplier_id = $1);
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, contactID, string(invoiceType)).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum unpaid invoices for contact "+strconv.FormatInt(contactID, 10), err)
	}
	return sum, nil
}
