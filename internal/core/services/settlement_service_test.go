package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
	"github.com/zhiyar-dev/finman_backend/internal/core/services"
	"github.com/zhiyar-dev/finman_backend/internal/dto"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockContactRepo *MockContactRepository
	mockAuditSvc    *MockAuditService
	service         portssvc.SettlementSvcFacade
	customerID      int64
	supplierID      int64
	userID          string
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockContactRepo = new(MockContactRepository)
	suite.mockAuditSvc = new(MockAuditService)
	suite.service = services.NewSettlementService(suite.mockPaymentRepo, suite.mockInvoiceRepo, suite.mockContactRepo, suite.mockAuditSvc)

	suite.customerID = 7
	suite.supplierID = 12
	suite.userID = "tester"

	suite.mockAuditSvc.On("RecordChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *SettlementServiceTestSuite) expectCustomer() {
	suite.mockContactRepo.On("FindContactByID", mock.Anything, suite.customerID, domain.Customer).
		Return(&domain.Contact{ContactID: suite.customerID, Kind: domain.Customer, Name: "Acme"}, nil).Once()
}

func (suite *SettlementServiceTestSuite) expectSupplier() {
	suite.mockContactRepo.On("FindContactByID", mock.Anything, suite.supplierID, domain.Supplier).
		Return(&domain.Contact{ContactID: suite.supplierID, Kind: domain.Supplier, Name: "Importer"}, nil).Once()
}

// --- Contact reference parsing ---

func TestParseContactRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    int64
		wantErr bool
	}{
		{name: "valid", ref: "7 - Acme", want: 7},
		{name: "name with dashes", ref: "12 - Al-Rafidain Trading - Erbil", want: 12},
		{name: "missing separator", ref: "7Acme", wantErr: true},
		{name: "non numeric id", ref: "abc - Acme", wantErr: true},
		{name: "empty", ref: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.ParseContactRef(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseContactRef(%q) expected error", tt.ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseContactRef(%q) unexpected error: %v", tt.ref, err)
			}
			if got != tt.want {
				t.Fatalf("ParseContactRef(%q) = %d, want %d", tt.ref, got, tt.want)
			}
		})
	}
}

// --- Payment application ---

func (suite *SettlementServiceTestSuite) TestApplyPayment_ExactAmountSettlesInvoice() {
	ctx := context.Background()
	invoiceID := "Sell 00010"
	suite.expectCustomer()
	suite.mockPaymentRepo.On("InsertPayment", ctx, mock.AnythingOfType("domain.Payment")).Return(int64(1), nil).Once()
	suite.mockInvoiceRepo.On("GetInvoiceSettlementInfo", ctx, invoiceID).Return(&domain.InvoiceSettlementInfo{
		InvoiceID:    invoiceID,
		TotalAmount:  decimal.RequireFromString("100"),
		CurrencyCode: domain.USD,
		Status:       domain.StatusOpen,
	}, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.StatusPaid).Return(nil).Once()

	resp, err := suite.service.ApplyPayment(ctx, dto.ApplyPaymentRequest{
		ContactRef:      "7 - Acme",
		ContactKind:     "CUSTOMER",
		Amount:          decimal.RequireFromString("100"),
		CurrencyCode:    "USD",
		Date:            time.Now(),
		LinkedInvoiceID: &invoiceID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.InvoiceStatus)
	suite.Equal(string(domain.StatusPaid), *resp.InvoiceStatus)
	suite.True(resp.RemainingBalance.IsZero())
	suite.Equal(string(domain.PaymentReceived), resp.Payment.Status)

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_PartialAmount() {
	ctx := context.Background()
	invoiceID := "Sell 00011"
	suite.expectCustomer()
	suite.mockPaymentRepo.On("InsertPayment", ctx, mock.AnythingOfType("domain.Payment")).Return(int64(2), nil).Once()
	suite.mockInvoiceRepo.On("GetInvoiceSettlementInfo", ctx, invoiceID).Return(&domain.InvoiceSettlementInfo{
		InvoiceID:    invoiceID,
		TotalAmount:  decimal.RequireFromString("100"),
		CurrencyCode: domain.USD,
		Status:       domain.StatusOpen,
	}, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.StatusPartiallyPaid).Return(nil).Once()

	resp, err := suite.service.ApplyPayment(ctx, dto.ApplyPaymentRequest{
		ContactRef:      "7 - Acme",
		ContactKind:     "CUSTOMER",
		Amount:          decimal.RequireFromString("40"),
		CurrencyCode:    "USD",
		Date:            time.Now(),
		LinkedInvoiceID: &invoiceID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(string(domain.StatusPartiallyPaid), *resp.InvoiceStatus)
	suite.True(resp.RemainingBalance.Equal(decimal.RequireFromString("60")), "remaining = %s", resp.RemainingBalance)
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_PartiallyPaidInvoiceNotReEvaluated() {
	ctx := context.Background()
	invoiceID := "Sell 00012"
	suite.expectCustomer()
	suite.mockPaymentRepo.On("InsertPayment", ctx, mock.AnythingOfType("domain.Payment")).Return(int64(3), nil).Once()
	suite.mockInvoiceRepo.On("GetInvoiceSettlementInfo", ctx, invoiceID).Return(&domain.InvoiceSettlementInfo{
		InvoiceID:    invoiceID,
		TotalAmount:  decimal.RequireFromString("100"),
		CurrencyCode: domain.USD,
		Status:       domain.StatusPartiallyPaid,
	}, nil).Once()

	resp, err := suite.service.ApplyPayment(ctx, dto.ApplyPaymentRequest{
		ContactRef:      "7 - Acme",
		ContactKind:     "CUSTOMER",
		Amount:          decimal.RequireFromString("60"),
		CurrencyCode:    "USD",
		Date:            time.Now(),
		LinkedInvoiceID: &invoiceID,
	}, suite.userID)

	suite.Require().NoError(err)
	// The payment is recorded but the invoice keeps its status.
	suite.Nil(resp.InvoiceStatus)
	suite.Nil(resp.RemainingBalance)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_ConvertsNonUSDPayment() {
	ctx := context.Background()
	invoiceID := "Sell 00013"
	suite.expectCustomer()
	suite.mockPaymentRepo.On("InsertPayment", ctx, mock.AnythingOfType("domain.Payment")).Return(int64(4), nil).Once()
	suite.mockInvoiceRepo.On("GetInvoiceSettlementInfo", ctx, invoiceID).Return(&domain.InvoiceSettlementInfo{
		InvoiceID:    invoiceID,
		TotalAmount:  decimal.RequireFromString("100"),
		CurrencyCode: domain.USD,
		Status:       domain.StatusOpen,
	}, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.StatusPaid).Return(nil).Once()

	// 131000 IQD at 1310 is exactly 100 USD.
	resp, err := suite.service.ApplyPayment(ctx, dto.ApplyPaymentRequest{
		ContactRef:      "7 - Acme",
		ContactKind:     "CUSTOMER",
		Amount:          decimal.RequireFromString("131000"),
		CurrencyCode:    "IQD",
		ExchangeRate:    decimal.RequireFromString("1310"),
		Date:            time.Now(),
		LinkedInvoiceID: &invoiceID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(string(domain.StatusPaid), *resp.InvoiceStatus)
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_SupplierDirection() {
	ctx := context.Background()
	suite.expectSupplier()
	suite.mockPaymentRepo.On("InsertPayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.SupplierID != nil && *p.SupplierID == suite.supplierID &&
			p.CustomerID == nil && p.Status == domain.PaymentPaid
	})).Return(int64(5), nil).Once()

	resp, err := suite.service.ApplyPayment(ctx, dto.ApplyPaymentRequest{
		ContactRef:   "12 - Importer",
		ContactKind:  "SUPPLIER",
		Amount:       decimal.RequireFromString("500"),
		CurrencyCode: "USD",
		Date:         time.Now(),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(string(domain.PaymentPaid), resp.Payment.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_BadContactRef() {
	ctx := context.Background()

	_, err := suite.service.ApplyPayment(ctx, dto.ApplyPaymentRequest{
		ContactRef:   "Acme",
		ContactKind:  "CUSTOMER",
		Amount:       decimal.RequireFromString("10"),
		CurrencyCode: "USD",
		Date:         time.Now(),
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrReferenceFormat)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "InsertPayment", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.ApplyPayment(ctx, dto.ApplyPaymentRequest{
		ContactRef:   "7 - Acme",
		ContactKind:  "CUSTOMER",
		Amount:       decimal.Zero,
		CurrencyCode: "USD",
		Date:         time.Now(),
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Balances ---

func (suite *SettlementServiceTestSuite) TestGetContactBalance_CustomerOwesUs() {
	ctx := context.Background()
	suite.expectCustomer()
	suite.mockInvoiceRepo.On("SumUnpaidInvoices", ctx, suite.customerID, domain.Sale).Return(decimal.RequireFromString("500"), nil).Once()
	suite.mockPaymentRepo.On("SumPayments", ctx, suite.customerID, domain.Customer).Return(decimal.RequireFromString("200"), nil).Once()

	balance, err := suite.service.GetContactBalance(ctx, suite.customerID, domain.Customer)

	suite.Require().NoError(err)
	suite.True(balance.Balance.Equal(decimal.RequireFromString("300")), "balance = %s", balance.Balance)
	suite.Equal(domain.OwesUs, balance.Label)
}

func (suite *SettlementServiceTestSuite) TestGetContactBalance_SupplierWeOwe() {
	ctx := context.Background()
	suite.expectSupplier()
	suite.mockInvoiceRepo.On("SumUnpaidInvoices", ctx, suite.supplierID, domain.ImportPurchase).Return(decimal.RequireFromString("1000"), nil).Once()
	suite.mockPaymentRepo.On("SumPayments", ctx, suite.supplierID, domain.Supplier).Return(decimal.RequireFromString("250"), nil).Once()

	balance, err := suite.service.GetContactBalance(ctx, suite.supplierID, domain.Supplier)

	suite.Require().NoError(err)
	suite.True(balance.Balance.Equal(decimal.RequireFromString("750")))
	suite.Equal(domain.WeOwe, balance.Label)
}

// --- Payment edits ---

func (suite *SettlementServiceTestSuite) TestUpdatePayment_DoesNotTouchInvoice() {
	ctx := context.Background()
	existing := &domain.Payment{
		PaymentID:    9,
		CustomerID:   &suite.customerID,
		Amount:       decimal.RequireFromString("100"),
		CurrencyCode: domain.USD,
		Status:       domain.PaymentReceived,
	}
	newAmount := decimal.RequireFromString("80")

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, int64(9)).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Amount.Equal(newAmount)
	})).Return(nil).Once()

	updated, err := suite.service.UpdatePayment(ctx, 9, dto.UpdatePaymentRequest{Amount: &newAmount}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "GetInvoiceSettlementInfo", mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestDeletePayment_DoesNotTouchInvoice() {
	ctx := context.Background()
	invoiceID := "Sell 00020"
	existing := &domain.Payment{
		PaymentID:       10,
		CustomerID:      &suite.customerID,
		Amount:          decimal.RequireFromString("100"),
		CurrencyCode:    domain.USD,
		Status:          domain.PaymentReceived,
		LinkedInvoiceID: &invoiceID,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, int64(10)).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("DeletePayment", ctx, int64(10)).Return(nil).Once()

	err := suite.service.DeletePayment(ctx, 10, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
