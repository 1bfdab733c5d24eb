package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/didasmbalanya/Quotation-invoice-system/internal/pdf"
	"github.com/didasmbalanya/Quotation-invoice-system/internal/services"
)

// InvoiceHandler routes invoice requests into the service layer.
type InvoiceHandler struct {
	Svc *services.InvoiceService
	Log *zap.Logger
}

func NewInvoiceHandler(svc *services.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc, Log: log}
}

// CreateFromQuotation: POST /api/invoices/:id, where :id is the quotation id.
func (h *InvoiceHandler) CreateFromQuotation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "Quotation")
		return
	}
	inv, err := h.Svc.CreateFromQuotation(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "Quotation")
			return
		}
		h.Log.Error("create invoice", zap.Uint("quotationId", id), zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to create invoice", nil)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// List: GET /api/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	invs, err := h.Svc.List()
	if err != nil {
		h.Log.Error("list invoices", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to retrieve invoices", nil)
		return
	}
	c.JSON(http.StatusOK, invs)
}

// Get: GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "Invoice")
		return
	}
	inv, err := h.Svc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "Invoice")
			return
		}
		h.Log.Error("get invoice", zap.Uint("id", id), zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to retrieve invoice", nil)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// PDF: GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "Invoice")
		return
	}
	inv, q, err := h.Svc.GetWithQuotation(id)
	if err != nil {
		var nf *services.NotFoundError
		if errors.As(err, &nf) {
			notFound(c, capitalize(nf.Entity))
			return
		}
		h.Log.Error("load invoice for pdf", zap.Uint("id", id), zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to generate PDF", nil)
		return
	}
	data, err := pdf.Invoice(inv, q)
	if err != nil {
		h.Log.Error("render invoice pdf", zap.Uint("id", id), zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to generate PDF", nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("invoice-%s.pdf", inv.InvoiceNumber)))
	c.Data(http.StatusOK, "application/pdf", data)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-32) + s[1:]
	}
	return s
}
