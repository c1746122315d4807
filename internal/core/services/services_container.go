package services

import (
	portsrepo "github.com/zhiyar-dev/finman_backend/internal/core/ports/repositories"
	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first since the writing services depend on it
	container.Audit = NewAuditService(repos.AuditRepo)

	container.ExchangeRate = NewExchangeRateService()
	container.Contact = NewContactService(repos.ContactRepo, container.Audit)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.ContactRepo, container.Audit)
	container.Settlement = NewSettlementService(repos.PaymentRepo, repos.InvoiceRepo, repos.ContactRepo, container.Audit)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.InvoiceSvcFacade    = (*invoiceService)(nil)
	_ portssvc.SettlementSvcFacade = (*settlementService)(nil)
	_ portssvc.ContactSvcFacade    = (*contactService)(nil)
	_ portssvc.AuditSvc            = (*auditService)(nil)
	_ portssvc.ExchangeRateSvc     = (*exchangeRateService)(nil)
)
