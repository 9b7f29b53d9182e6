package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the approval workflow state of a bill.
type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusAccepted BillStatus = "accepted"
	BillStatusRefused  BillStatus = "refused"
)

// Known reports whether s is one of the workflow states.
func (s BillStatus) Known() bool {
	switch s {
	case BillStatusPending, BillStatusAccepted, BillStatusRefused:
		return true
	}
	return false
}

// Bill represents an expense record as returned by the store.
// Every field is passed through to the display layer unchanged.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format when created locally).
	ID string `json:"id"`

	// Email is the address of the employee who submitted the bill.
	Email string `json:"email"`

	// Type is the expense category (e.g., "Transports", "Restaurants et bars").
	Type string `json:"type"`

	// Name is the short label the employee gave the expense.
	Name string `json:"name"`

	// Date is the raw expense date. It is expected as YYYY-MM-DD but legacy
	// records may hold anything, so it is kept as a string.
	Date string `json:"date"`

	// Amount is the total amount including tax.
	Amount decimal.Decimal `json:"amount"`

	// VAT is the tax amount as entered by the employee.
	VAT string `json:"vat"`

	// Pct is the VAT rate in percent.
	Pct int `json:"pct"`

	Commentary   string `json:"commentary"`
	CommentAdmin string `json:"commentAdmin"`

	// FileURL points to the uploaded receipt shown in the preview modal.
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`

	Status BillStatus `json:"status"`

	// CreatedAt is the Unix timestamp when the bill was stored.
	CreatedAt int64 `json:"createdAt"`
}

// DisplayBill is a Bill prepared for the bills list.
// The embedded Bill is never modified; rendered values live alongside it.
type DisplayBill struct {
	Bill

	// FormattedDate is the localized date, or Bill.Date verbatim if it could not be parsed.
	FormattedDate string `json:"formattedDate"`

	// FormattedStatus is the localized status label, or Bill.Status verbatim if unknown.
	FormattedStatus string `json:"formattedStatus"`

	// Degraded is set when either formatted field fell back to its raw value.
	Degraded bool `json:"degraded"`

	parsedDate time.Time
	dated      bool
}

// NewDisplayBill builds a DisplayBill without a parsed date.
func NewDisplayBill(bill Bill, formattedDate, formattedStatus string, degraded bool) DisplayBill {
	return DisplayBill{
		Bill:            bill,
		FormattedDate:   formattedDate,
		FormattedStatus: formattedStatus,
		Degraded:        degraded,
	}
}

// WithParsedDate returns a copy of d carrying the parsed bill date.
func (d DisplayBill) WithParsedDate(t time.Time) DisplayBill {
	d.parsedDate = t
	d.dated = true
	return d
}

// ParsedDate returns the parsed bill date and whether parsing succeeded.
func (d DisplayBill) ParsedDate() (time.Time, bool) {
	return d.parsedDate, d.dated
}

// BillURL returns the receipt location previewed for this bill.
func (d DisplayBill) BillURL() string {
	return d.FileURL
}
