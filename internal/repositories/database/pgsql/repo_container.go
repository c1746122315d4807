package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/zhiyar-dev/finman_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	contactRepo := newPgxContactRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		InvoiceRepo: invoiceRepo,
		PaymentRepo: paymentRepo,
		ContactRepo: contactRepo,
		AuditRepo:   auditRepo,
	}
}
