package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// LineItem is one row of a quotation or invoice table. Older payloads carry
// a flat "price" per unit, newer ones split it into "unitPrice" and a number
// of "days" (conference bookings are billed per person per day) plus a
// precomputed "amount". All variants must keep working.
type LineItem struct {
	Name      string   `json:"name"`
	Qty       float64  `json:"qty"`
	Days      float64  `json:"days,omitempty"`
	UnitPrice float64  `json:"unitPrice,omitempty"`
	Price     float64  `json:"price,omitempty"`
	Amount    float64  `json:"amount,omitempty"`
	SubItems  []string `json:"subItems,omitempty"`
}

// EffectiveUnitPrice resolves the per-unit price regardless of which field
// the client used.
func (it LineItem) EffectiveUnitPrice() float64 {
	if it.UnitPrice != 0 {
		return it.UnitPrice
	}
	return it.Price
}

// LineTotal is the extended amount for the row. A precomputed Amount wins;
// otherwise qty x days x unit price, with days defaulting to 1.
func (it LineItem) LineTotal() float64 {
	if it.Amount > 0 {
		return it.Amount
	}
	days := it.Days
	if days <= 0 {
		days = 1
	}
	return it.Qty * days * it.EffectiveUnitPrice()
}

// ItemList is the ordered set of line items on a quotation. It is persisted
// as a JSON text column and accepts either a JSON array or a JSON-encoded
// string of that array on write, so both historic payload shapes round-trip
// to the same stored form.
type ItemList []LineItem

// Total sums the extended amounts of all rows.
func (l ItemList) Total() float64 {
	var sum float64
	for _, it := range l {
		sum += it.LineTotal()
	}
	return sum
}

func (l *ItemList) UnmarshalJSON(data []byte) error {
	// alias avoids recursing back into this method
	type plain []LineItem
	var items plain
	if err := json.Unmarshal(data, &items); err == nil {
		*l = ItemList(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("items must be a JSON array or a JSON-encoded string")
	}
	var inner plain
	if err := json.Unmarshal([]byte(s), &inner); err != nil {
		return fmt.Errorf("items string does not contain a JSON array: %w", err)
	}
	*l = ItemList(inner)
	return nil
}

// Value implements driver.Valuer. A nil list is stored as an empty array so
// the column stays NOT NULL.
func (l ItemList) Value() (driver.Value, error) {
	if l == nil {
		l = ItemList{}
	}
	b, err := json.Marshal([]LineItem(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. Legacy rows were sometimes written with the
// array double-encoded inside a string; both forms are normalized here.
// Rows that cannot be parsed at all scan as an empty list rather than
// failing every read that touches them.
func (l *ItemList) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = ItemList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ItemList", value)
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err == nil {
		*l = items
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			*l = items
			return nil
		}
	}
	*l = ItemList{}
	return nil
}
