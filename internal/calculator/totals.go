package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/billed/internal/models"
)

// StatusTotal aggregates the bills in one workflow state.
type StatusTotal struct {
	Status models.BillStatus
	Count  int
	Amount decimal.Decimal
}

// Summary aggregates a list of bills.
type Summary struct {
	Count    int
	Amount   decimal.Decimal
	ByStatus []StatusTotal
}

var workflow = []models.BillStatus{
	models.BillStatusPending,
	models.BillStatusAccepted,
	models.BillStatusRefused,
}

// Summarize totals bills overall and per status.
// Workflow states come first in workflow order, even when empty; any other
// status follows in the order it was first seen.
func Summarize(bills []models.Bill) Summary {
	summary := Summary{Amount: decimal.Zero}

	index := make(map[models.BillStatus]int)
	for _, status := range workflow {
		index[status] = len(summary.ByStatus)
		summary.ByStatus = append(summary.ByStatus, StatusTotal{Status: status, Amount: decimal.Zero})
	}

	for _, bill := range bills {
		i, ok := index[bill.Status]
		if !ok {
			i = len(summary.ByStatus)
			index[bill.Status] = i
			summary.ByStatus = append(summary.ByStatus, StatusTotal{Status: bill.Status, Amount: decimal.Zero})
		}
		summary.ByStatus[i].Count++
		summary.ByStatus[i].Amount = summary.ByStatus[i].Amount.Add(bill.Amount)

		summary.Count++
		summary.Amount = summary.Amount.Add(bill.Amount)
	}

	return summary
}
