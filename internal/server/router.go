// Package server wires the HTTP surface: routes, middleware, health checks.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/didasmbalanya/Quotation-invoice-system/internal/handlers"
	"github.com/didasmbalanya/Quotation-invoice-system/internal/services"
)

// New constructs the root engine with all routes and middleware applied.
func New(db *gorm.DB, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log), CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})
	r.GET("/healthz", func(c *gin.Context) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	qh := handlers.NewQuotationHandler(services.NewQuotationService(db), log)
	ih := handlers.NewInvoiceHandler(services.NewInvoiceService(db), log)

	api := r.Group("/api")

	quotations := api.Group("/quotations")
	{
		quotations.POST("", qh.Create)
		quotations.GET("", qh.List)
		quotations.GET("/:id", qh.Get)
		quotations.PATCH("/:id", qh.Update)
		quotations.DELETE("/:id", qh.Delete)
		quotations.GET("/:id/pdf", qh.PDF)
	}

	invoices := api.Group("/invoices")
	{
		invoices.POST("/:id", ih.CreateFromQuotation)
		invoices.GET("", ih.List)
		invoices.GET("/:id", ih.Get)
		invoices.GET("/:id/pdf", ih.PDF)
	}

	return r
}
