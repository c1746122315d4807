package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
	"github.com/zhiyar-dev/finman_backend/internal/dto"
	"github.com/zhiyar-dev/finman_backend/internal/handlers"
	"github.com/zhiyar-dev/finman_backend/internal/middleware"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListInvoicesResponse), args.Error(1)
}
func (m *MockInvoiceService) NextInvoiceID(ctx context.Context, invoiceType domain.InvoiceType) (string, error) {
	args := m.Called(ctx, invoiceType)
	return args.String(0), args.Error(1)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	args := m.Called(ctx, invoiceID, requestingUserID)
	return args.Error(0)
}
func (m *MockInvoiceService) ComputeLineItem(item domain.LineItem) (domain.LineItem, error) {
	args := m.Called(item)
	return args.Get(0).(domain.LineItem), args.Error(1)
}
func (m *MockInvoiceService) AllocateFees(lines []domain.LineItem, fees domain.FeeSet) ([]domain.LineItem, error) {
	args := m.Called(lines, fees)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}
func (m *MockInvoiceService) AggregateTotal(lines []domain.LineItem, displayCurrency domain.CurrencyCode, displayRate decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(lines, displayCurrency, displayRate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) GetPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockSettlementService) ListPaymentsByContact(ctx context.Context, contactID int64, kind domain.ContactKind) ([]domain.Payment, error) {
	args := m.Called(ctx, contactID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockSettlementService) GetContactBalance(ctx context.Context, contactID int64, kind domain.ContactKind) (*domain.ContactBalance, error) {
	args := m.Called(ctx, contactID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactBalance), args.Error(1)
}
func (m *MockSettlementService) ApplyPayment(ctx context.Context, req dto.ApplyPaymentRequest, creatorUserID string) (*dto.ApplyPaymentResponse, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ApplyPaymentResponse), args.Error(1)
}
func (m *MockSettlementService) UpdatePayment(ctx context.Context, paymentID int64, req dto.UpdatePaymentRequest, requestingUserID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockSettlementService) DeletePayment(ctx context.Context, paymentID int64, requestingUserID string) error {
	args := m.Called(ctx, paymentID, requestingUserID)
	return args.Error(0)
}

var _ portssvc.SettlementSvcFacade = (*MockSettlementService)(nil)

// --- Mock ContactService ---
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) GetContactByID(ctx context.Context, contactID int64, kind domain.ContactKind) (*domain.Contact, error) {
	args := m.Called(ctx, contactID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}
func (m *MockContactService) ListContacts(ctx context.Context, kind domain.ContactKind) ([]domain.Contact, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}
func (m *MockContactService) CreateContact(ctx context.Context, req dto.CreateContactRequest, creatorUserID string) (*domain.Contact, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

var _ portssvc.ContactSvcFacade = (*MockContactService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) DefaultRate(ctx context.Context, currencyCode domain.CurrencyCode) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockExchangeRateService) ListDefaultRates(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.CurrencyCode]decimal.Decimal), args.Error(1)
}

var _ portssvc.ExchangeRateSvc = (*MockExchangeRateService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) RecordChange(ctx context.Context, user, tableName, recordID, action, oldValue, newValue string) error {
	args := m.Called(ctx, user, tableName, recordID, action, oldValue, newValue)
	return args.Error(0)
}
func (m *MockAuditService) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

var _ portssvc.AuditSvc = (*MockAuditService)(nil)

// --- Test Suite ---
type InvoiceHandlerTestSuite struct {
	suite.Suite
	router                  *gin.Engine
	mockInvoiceService      *MockInvoiceService
	mockSettlementService   *MockSettlementService
	mockContactService      *MockContactService
	mockExchangeRateService *MockExchangeRateService
	mockAuditService        *MockAuditService
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.IdentityMiddleware())

	suite.mockInvoiceService = new(MockInvoiceService)
	suite.mockSettlementService = new(MockSettlementService)
	suite.mockContactService = new(MockContactService)
	suite.mockExchangeRateService = new(MockExchangeRateService)
	suite.mockAuditService = new(MockAuditService)

	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Invoice:      suite.mockInvoiceService,
		Settlement:   suite.mockSettlementService,
		Contact:      suite.mockContactService,
		ExchangeRate: suite.mockExchangeRateService,
		Audit:        suite.mockAuditService,
	})
}

func (suite *InvoiceHandlerTestSuite) serveJSON(method, url string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.Require().NoError(err)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User", "tester")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	customerID := int64(7)
	reqBody := dto.CreateInvoiceRequest{
		InvoiceType:  domain.Sale,
		CustomerID:   &customerID,
		Date:         time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "USD",
		ExchangeRate: decimal.NewFromInt(1),
		LineItems: []dto.CreateLineItemRequest{
			{
				ProductID:         1,
				Quantity:          3,
				OriginalUnitPrice: decimal.NewFromInt(100),
				DiscountPercent:   decimal.NewFromInt(10),
				CurrencyCode:      "USD",
			},
		},
	}

	created := &domain.Invoice{
		InvoiceID:    "Sell 00001",
		InvoiceType:  domain.Sale,
		CustomerID:   &customerID,
		Date:         reqBody.Date,
		CurrencyCode: "USD",
		ExchangeRate: decimal.NewFromInt(1),
		TotalAmount:  decimal.NewFromInt(270),
		Status:       domain.StatusOpen,
	}

	suite.mockInvoiceService.On("CreateInvoice",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool {
			return req.InvoiceType == domain.Sale && len(req.LineItems) == 1
		}),
		"tester",
	).Return(created, nil).Once()

	w := suite.serveJSON(http.MethodPost, "/api/v1/invoices", reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Sell 00001", resp.InvoiceID)
	suite.Equal("OPEN", resp.Status)
	suite.True(resp.TotalAmount.Equal(decimal.NewFromInt(270)))

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_MissingLineItems() {
	customerID := int64(7)
	reqBody := dto.CreateInvoiceRequest{
		InvoiceType:  domain.Sale,
		CustomerID:   &customerID,
		Date:         time.Now(),
		CurrencyCode: "USD",
	}

	w := suite.serveJSON(http.MethodPost, "/api/v1/invoices", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice")
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	suite.mockInvoiceService.On("GetInvoiceByID", mock.Anything, "Sell 00099").
		Return(nil, apperrors.NewNotFoundError("invoice Sell 00099 not found")).Once()

	w := suite.serveJSON(http.MethodGet, "/api/v1/invoices/Sell%2000099", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestNextInvoiceID() {
	suite.mockInvoiceService.On("NextInvoiceID", mock.Anything, domain.Sale).
		Return("Sell 00043", nil).Once()

	w := suite.serveJSON(http.MethodGet, "/api/v1/invoices/next-id?type=Sale", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Sell 00043")
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_PassesPaginationParams() {
	expected := &dto.ListInvoicesResponse{
		Invoices:  []dto.InvoiceResponse{{InvoiceID: "Sell 00002"}, {InvoiceID: "Sell 00001"}},
		NextToken: nil,
	}
	suite.mockInvoiceService.On("ListInvoices",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListInvoicesParams) bool {
			return p.Limit == 2
		}),
	).Return(expected, nil).Once()

	w := suite.serveJSON(http.MethodGet, "/api/v1/invoices?limit=2", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListInvoicesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Invoices, 2)
	suite.Equal("Sell 00002", resp.Invoices[0].InvoiceID)

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestApplyPayment_BadContactRef() {
	reqBody := dto.ApplyPaymentRequest{
		ContactRef:   "no-separator",
		ContactKind:  "CUSTOMER",
		Amount:       decimal.NewFromInt(50),
		CurrencyCode: "USD",
		Date:         time.Now(),
	}

	suite.mockSettlementService.On("ApplyPayment", mock.Anything, mock.Anything, "tester").
		Return(nil, apperrors.ErrReferenceFormat).Once()

	w := suite.serveJSON(http.MethodPost, "/api/v1/payments", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSettlementService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestApplyPayment_SettlesLinkedInvoice() {
	invoiceID := "Sell 00001"
	paidStatus := string(domain.StatusPaid)
	remaining := decimal.Zero
	reqBody := dto.ApplyPaymentRequest{
		ContactRef:      "7 - Hawkar General Trading",
		ContactKind:     "CUSTOMER",
		Amount:          decimal.NewFromInt(270),
		CurrencyCode:    "USD",
		Date:            time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		LinkedInvoiceID: &invoiceID,
	}

	expected := &dto.ApplyPaymentResponse{
		Payment: dto.PaymentResponse{
			PaymentID:       1,
			Amount:          decimal.NewFromInt(270),
			CurrencyCode:    "USD",
			Status:          "RECEIVED",
			LinkedInvoiceID: &invoiceID,
		},
		InvoiceStatus:    &paidStatus,
		RemainingBalance: &remaining,
	}
	suite.mockSettlementService.On("ApplyPayment",
		mock.Anything,
		mock.MatchedBy(func(req dto.ApplyPaymentRequest) bool {
			return req.LinkedInvoiceID != nil && *req.LinkedInvoiceID == invoiceID
		}),
		"tester",
	).Return(expected, nil).Once()

	w := suite.serveJSON(http.MethodPost, "/api/v1/payments", reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ApplyPaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.InvoiceStatus)
	suite.Equal("PAID", *resp.InvoiceStatus)

	suite.mockSettlementService.AssertExpectations(suite.T())
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "UpdateInvoice")
}

func (suite *InvoiceHandlerTestSuite) TestGetContactBalance() {
	balance := &domain.ContactBalance{
		ContactID: 7,
		Kind:      domain.Customer,
		Balance:   decimal.NewFromInt(300),
		Label:     domain.OwesUs,
	}
	suite.mockSettlementService.On("GetContactBalance", mock.Anything, int64(7), domain.Customer).
		Return(balance, nil).Once()

	w := suite.serveJSON(http.MethodGet, "/api/v1/contacts/7/balance?kind=CUSTOMER", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.NewFromInt(300)))
	suite.Equal("Owes Us", resp.Label)

	suite.mockSettlementService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestGetContactBalance_InvalidKind() {
	w := suite.serveJSON(http.MethodGet, "/api/v1/contacts/7/balance?kind=VENDOR", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSettlementService.AssertNotCalled(suite.T(), "GetContactBalance")
}

// --- Run Test Suite ---
func TestInvoiceHandler(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
