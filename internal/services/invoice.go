package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/didasmbalanya/Quotation-invoice-system/internal/models"
)

// InvoiceService derives invoices from quotations and reads them back.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// InvoiceNumber builds the stable document number for the n-th invoice of a
// quotation. The sequence restarts per quotation, so the pair is unique and
// repeat conversions of the same quotation stay distinguishable.
func InvoiceNumber(quotationID uint, seq int) string {
	return fmt.Sprintf("INV-%d-%03d", quotationID, seq)
}

// CreateFromQuotation converts a quotation into a new invoice. The source
// quotation is marked approved and the invoice row is created in the same
// transaction, so a failed conversion leaves both tables untouched.
func (s *InvoiceService) CreateFromQuotation(quotationID uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var q models.Quotation
		if err := tx.First(&q, quotationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "quotation", ID: quotationID}
			}
			return err
		}
		if err := tx.Model(&q).Update("status", models.StatusApproved).Error; err != nil {
			return err
		}
		var seq int64
		if err := tx.Model(&models.Invoice{}).
			Where("quotation_id = ?", q.ID).
			Count(&seq).Error; err != nil {
			return err
		}
		inv = models.Invoice{
			InvoiceNumber: InvoiceNumber(q.ID, int(seq)+1),
			InvoiceDate:   time.Now().UTC(),
			QuotationID:   q.ID,
		}
		return tx.Create(&inv).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// List returns all invoices in storage-default order.
func (s *InvoiceService) List() ([]models.Invoice, error) {
	var invs []models.Invoice
	if err := s.db.Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

func (s *InvoiceService) GetByID(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "invoice", ID: id}
		}
		return nil, err
	}
	return &inv, nil
}

// GetWithQuotation loads an invoice together with its source quotation for
// rendering. Either one missing reports NotFound for that entity.
func (s *InvoiceService) GetWithQuotation(id uint) (*models.Invoice, *models.Quotation, error) {
	inv, err := s.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	var q models.Quotation
	if err := s.db.First(&q, inv.QuotationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &NotFoundError{Entity: "quotation", ID: inv.QuotationID}
		}
		return nil, nil, err
	}
	return inv, &q, nil
}
