package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
	"github.com/zhiyar-dev/finman_backend/internal/dto"
	"github.com/zhiyar-dev/finman_backend/internal/middleware"
)

// contactHandler handles HTTP requests for the customer and supplier directory.
type contactHandler struct {
	contactService    portssvc.ContactSvcFacade
	settlementService portssvc.SettlementSvcFacade
}

// newContactHandler creates a new contactHandler.
func newContactHandler(cs portssvc.ContactSvcFacade, ss portssvc.SettlementSvcFacade) *contactHandler {
	return &contactHandler{
		contactService:    cs,
		settlementService: ss,
	}
}

// registerContactRoutes registers routes related to contacts and balances.
func registerContactRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvcFacade, settlementService portssvc.SettlementSvcFacade) {
	h := newContactHandler(contactService, settlementService)

	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:id", h.getContact)
		contacts.GET("/:id/balance", h.getContactBalance)
		contacts.GET("/:id/payments", h.listContactPayments)
	}
}

// contactKindFromQuery parses the mandatory kind query parameter.
func contactKindFromQuery(c *gin.Context) (domain.ContactKind, bool) {
	kind := domain.ContactKind(strings.ToUpper(c.Query("kind")))
	if kind != domain.Customer && kind != domain.Supplier {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be CUSTOMER or SUPPLIER"})
		return "", false
	}
	return kind, true
}

func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		creatorUserID = "system"
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create contact", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

func (h *contactHandler) listContacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind, ok := contactKindFromQuery(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), kind)
	if err != nil {
		logger.Error("Failed to list contacts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contacts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": dto.ToContactResponses(contacts)})
}

func (h *contactHandler) getContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contactID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}
	kind, ok := contactKindFromQuery(c)
	if !ok {
		return
	}

	contact, err := h.contactService.GetContactByID(c.Request.Context(), contactID, kind)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		} else {
			logger.Error("Failed to get contact", slog.Int64("contact_id", contactID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

func (h *contactHandler) getContactBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contactID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}
	kind, ok := contactKindFromQuery(c)
	if !ok {
		return
	}

	balance, err := h.settlementService.GetContactBalance(c.Request.Context(), contactID, kind)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		} else {
			logger.Error("Failed to derive contact balance", slog.Int64("contact_id", contactID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive contact balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

func (h *contactHandler) listContactPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contactID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}
	kind, ok := contactKindFromQuery(c)
	if !ok {
		return
	}

	payments, err := h.settlementService.ListPaymentsByContact(c.Request.Context(), contactID, kind)
	if err != nil {
		logger.Error("Failed to list contact payments", slog.Int64("contact_id", contactID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	responses := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = dto.ToPaymentResponse(&payments[i])
	}
	c.JSON(http.StatusOK, gin.H{"payments": responses})
}
