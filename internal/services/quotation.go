package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/didasmbalanya/Quotation-invoice-system/internal/models"
)

// QuotationService encapsulates quotation lifecycle logic over an injected
// DB handle.
type QuotationService struct {
	db *gorm.DB
}

func NewQuotationService(db *gorm.DB) *QuotationService {
	return &QuotationService{db: db}
}

// Create persists a new quotation. The total is always computed server-side
// from the item list; the caller-supplied total survives only when no line
// yields a computable amount. The pre-check on the idempotency token is not
// atomic with the insert, so the unique index is the real duplicate guard
// and a constraint violation maps to the same DuplicateError.
func (s *QuotationService) Create(q *models.Quotation) error {
	var count int64
	if err := s.db.Model(&models.Quotation{}).
		Where("unique_quotation_id = ?", q.UniqueQuotationID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &DuplicateError{Token: q.UniqueQuotationID}
	}

	if q.Status == "" {
		q.Status = models.StatusPending
	}
	if total := q.Items.Total(); total > 0 {
		q.TotalAmount = total
	}

	if err := s.db.Create(q).Error; err != nil {
		if isUniqueViolation(err) {
			return &DuplicateError{Token: q.UniqueQuotationID}
		}
		return err
	}
	return nil
}

// List returns all quotations in storage-default (primary key) order.
func (s *QuotationService) List() ([]models.Quotation, error) {
	var qs []models.Quotation
	if err := s.db.Find(&qs).Error; err != nil {
		return nil, err
	}
	return qs, nil
}

func (s *QuotationService) GetByID(id uint) (*models.Quotation, error) {
	var q models.Quotation
	if err := s.db.First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "quotation", ID: id}
		}
		return nil, err
	}
	return &q, nil
}

// Update merges the given column updates into the stored record and returns
// the updated quotation. When the item list is part of the update the total
// is recomputed from it, keeping Create and Update on the same rule; status
// changes are accepted as-is (no transition legality check).
func (s *QuotationService) Update(id uint, updates map[string]any) (*models.Quotation, error) {
	q, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if items, ok := updates["items"].(models.ItemList); ok {
		if total := items.Total(); total > 0 {
			updates["total_amount"] = total
		}
	}
	if err := s.db.Model(q).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes a quotation. Deletion is blocked while invoices still
// reference it, so rendered invoices never point at a missing source.
// A repeat delete reports NotFound; the operation is not idempotent.
func (s *QuotationService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	var invoices int64
	if err := s.db.Model(&models.Invoice{}).
		Where("quotation_id = ?", id).
		Count(&invoices).Error; err != nil {
		return err
	}
	if invoices > 0 {
		return &ConflictError{Entity: "quotation", ID: id, Reason: "invoices reference this quotation"}
	}
	res := s.db.Delete(&models.Quotation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "quotation", ID: id}
	}
	return nil
}

// isUniqueViolation matches gorm's translated duplicate-key error plus the
// raw driver messages for postgres and sqlite, since not every code path
// runs with error translation enabled.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
