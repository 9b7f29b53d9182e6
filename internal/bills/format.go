package bills

import (
	"time"

	"github.com/mmynk/billed/internal/i18n"
	"github.com/mmynk/billed/internal/models"
)

// Formatted fields, used in logs and metrics.
const (
	FieldDate   = "date"
	FieldStatus = "status"
)

// Outcome is the result of formatting one field of a bill.
// A degraded outcome carries the raw value and the reason formatting failed.
type Outcome struct {
	Value    string
	Degraded bool
	Err      error
}

func formatted(value string) Outcome {
	return Outcome{Value: value}
}

func degraded(raw string, err error) Outcome {
	return Outcome{Value: raw, Degraded: true, Err: err}
}

// Format converts records to display bills. It never fails: a field that
// cannot be formatted keeps its raw value and the record is kept.
func (b *Bills) Format(records []models.Bill) []models.DisplayBill {
	display := make([]models.DisplayBill, len(records))
	for i, record := range records {
		display[i] = b.FormatBill(record)
	}
	return display
}

// FormatBill converts one record.
func (b *Bills) FormatBill(record models.Bill) models.DisplayBill {
	date, parsed := b.formatDate(record.Date)
	status := b.formatStatus(record.Status)
	b.reportDegraded(record.ID, FieldDate, date)
	b.reportDegraded(record.ID, FieldStatus, status)

	display := models.NewDisplayBill(record, date.Value, status.Value, date.Degraded || status.Degraded)
	if !date.Degraded {
		display = display.WithParsedDate(parsed)
	}
	return display
}

func (b *Bills) reportDegraded(billID, field string, outcome Outcome) {
	if !outcome.Degraded {
		return
	}
	b.metrics.Degraded(field)
	b.logger.Warn("Bill field shown unformatted",
		"bill_id", billID,
		"field", field,
		"raw", outcome.Value,
		"error", outcome.Err,
	)
}

func (b *Bills) formatDate(raw string) (Outcome, time.Time) {
	t, err := i18n.ParseDate(raw)
	if err != nil {
		return degraded(raw, err), time.Time{}
	}
	return formatted(i18n.RenderDate(t, b.locale)), t
}

func (b *Bills) formatStatus(raw models.BillStatus) Outcome {
	label, err := i18n.FormatStatus(raw, b.locale)
	if err != nil {
		return degraded(string(raw), err)
	}
	return formatted(label)
}
