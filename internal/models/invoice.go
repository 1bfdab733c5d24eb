package models

import "time"

// Invoice is a billing document derived from exactly one approved quotation.
// It carries no line items of its own; rendering always goes back to the
// source quotation.
type Invoice struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InvoiceNumber string    `gorm:"not null;uniqueIndex" json:"invoiceNumber"`
	InvoiceDate   time.Time `gorm:"not null" json:"invoiceDate"`
	QuotationID   uint      `gorm:"not null;index" json:"quotationId"`
	Quotation     Quotation `gorm:"foreignKey:QuotationID" json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
