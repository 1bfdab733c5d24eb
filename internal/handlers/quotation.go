package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/didasmbalanya/Quotation-invoice-system/internal/models"
	"github.com/didasmbalanya/Quotation-invoice-system/internal/pdf"
	"github.com/didasmbalanya/Quotation-invoice-system/internal/services"
	"github.com/didasmbalanya/Quotation-invoice-system/internal/validation"
)

// QuotationHandler routes quotation requests into the service layer. The
// validation gate lives here, at the HTTP boundary; the service trusts its
// caller.
type QuotationHandler struct {
	Svc *services.QuotationService
	Log *zap.Logger
}

func NewQuotationHandler(svc *services.QuotationService, log *zap.Logger) *QuotationHandler {
	return &QuotationHandler{Svc: svc, Log: log}
}

type createQuotationReq struct {
	UniqueQuotationID string           `json:"uniqueQuotationId" validate:"required"`
	ClientName        string           `json:"clientName" validate:"required"`
	Email             string           `json:"email" validate:"required,email"`
	Phone             string           `json:"phone" validate:"required"`
	QuotationDate     *time.Time       `json:"quotationDate" validate:"required"`
	Items             *models.ItemList `json:"items" validate:"required"`
	TotalAmount       float64          `json:"totalAmount"`
	Status            string           `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// Create: POST /api/quotations
func (h *QuotationHandler) Create(c *gin.Context) {
	var req createQuotationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Validation error", validation.Violations{"body": "must be valid JSON"})
		return
	}
	if v := validation.Check(&req); !v.Empty() {
		jsonError(c, http.StatusBadRequest, "Validation error", v)
		return
	}

	q := models.Quotation{
		UniqueQuotationID: req.UniqueQuotationID,
		ClientName:        req.ClientName,
		Email:             req.Email,
		Phone:             req.Phone,
		QuotationDate:     *req.QuotationDate,
		Items:             *req.Items,
		TotalAmount:       req.TotalAmount,
		Status:            req.Status,
	}
	if err := h.Svc.Create(&q); err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			jsonError(c, http.StatusBadRequest, "This Quotation has already been created", nil)
			return
		}
		h.Log.Error("create quotation", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to create quotation", nil)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// List: GET /api/quotations
func (h *QuotationHandler) List(c *gin.Context) {
	qs, err := h.Svc.List()
	if err != nil {
		h.Log.Error("list quotations", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to retrieve quotations", nil)
		return
	}
	c.JSON(http.StatusOK, qs)
}

// Get: GET /api/quotations/:id
func (h *QuotationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "Quotation")
		return
	}
	q, err := h.Svc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "Quotation")
			return
		}
		h.Log.Error("get quotation", zap.Uint("id", id), zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to retrieve quotation", nil)
		return
	}
	c.JSON(http.StatusOK, q)
}

type updateQuotationReq struct {
	ClientName    *string          `json:"clientName" validate:"omitempty,min=1"`
	Email         *string          `json:"email" validate:"omitempty,email"`
	Phone         *string          `json:"phone" validate:"omitempty,min=1"`
	QuotationDate *time.Time       `json:"quotationDate"`
	Items         *models.ItemList `json:"items"`
	TotalAmount   *float64         `json:"totalAmount"`
	Status        *string          `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

func (r *updateQuotationReq) empty() bool {
	return r.ClientName == nil && r.Email == nil && r.Phone == nil &&
		r.QuotationDate == nil && r.Items == nil && r.TotalAmount == nil && r.Status == nil
}

func (r *updateQuotationReq) updates() map[string]any {
	u := map[string]any{}
	if r.ClientName != nil {
		u["client_name"] = *r.ClientName
	}
	if r.Email != nil {
		u["email"] = *r.Email
	}
	if r.Phone != nil {
		u["phone"] = *r.Phone
	}
	if r.QuotationDate != nil {
		u["quotation_date"] = *r.QuotationDate
	}
	if r.Items != nil {
		u["items"] = *r.Items
	}
	if r.TotalAmount != nil {
		u["total_amount"] = *r.TotalAmount
	}
	if r.Status != nil {
		u["status"] = *r.Status
	}
	return u
}

// Update: PATCH /api/quotations/:id
func (h *QuotationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "Quotation")
		return
	}
	var req updateQuotationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Validation error", validation.Violations{"body": "must be valid JSON"})
		return
	}
	if req.empty() {
		jsonError(c, http.StatusBadRequest, "Validation error",
			validation.Violations{"payload": "At least one field must be provided to update the quotation"})
		return
	}
	if v := validation.Check(&req); !v.Empty() {
		jsonError(c, http.StatusBadRequest, "Validation error", v)
		return
	}

	q, err := h.Svc.Update(id, req.updates())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "Quotation")
			return
		}
		h.Log.Error("update quotation", zap.Uint("id", id), zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to update quotation", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "Quotation updated successfully",
		"updatedQuotation": q,
	})
}

// Delete: DELETE /api/quotations/:id
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "Quotation")
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			notFound(c, "Quotation")
		case errors.Is(err, services.ErrConflict):
			jsonError(c, http.StatusConflict, "Quotation has invoices and cannot be deleted", nil)
		default:
			h.Log.Error("delete quotation", zap.Uint("id", id), zap.Error(err))
			jsonError(c, http.StatusInternalServerError, "Failed to delete quotation", nil)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quotation deleted successfully"})
}

// PDF: GET /api/quotations/:id/pdf
func (h *QuotationHandler) PDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "Quotation")
		return
	}
	q, err := h.Svc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "Quotation")
			return
		}
		h.Log.Error("load quotation for pdf", zap.Uint("id", id), zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to generate PDF", nil)
		return
	}
	data, err := pdf.Quotation(q)
	if err != nil {
		h.Log.Error("render quotation pdf", zap.Uint("id", id), zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to generate PDF", nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("quotation-%d.pdf", q.ID)))
	c.Data(http.StatusOK, "application/pdf", data)
}
