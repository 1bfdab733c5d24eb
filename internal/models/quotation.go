package models

import "time"

// Quotation statuses. Transitions are caller-driven; there is no enforced
// state machine beyond the enum itself.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Quotation is a priced proposal sent to a prospective client, identified by
// a caller-supplied idempotency token (UniqueQuotationID).
type Quotation struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UniqueQuotationID string    `gorm:"not null;uniqueIndex" json:"uniqueQuotationId"`
	ClientName        string    `gorm:"not null" json:"clientName"`
	Email             string    `gorm:"not null" json:"email"`
	Phone             string    `gorm:"not null" json:"phone"`
	QuotationDate     time.Time `gorm:"not null" json:"quotationDate"`
	Items             ItemList  `gorm:"type:text;not null" json:"items"`
	TotalAmount       float64   `gorm:"not null" json:"totalAmount"`
	Status            string    `gorm:"not null;default:'pending'" json:"status"`
	Invoices          []Invoice `gorm:"foreignKey:QuotationID" json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
