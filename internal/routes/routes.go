// Package routes holds the client-side route tokens of the expense application.
package routes

const (
	Login     = "/"
	Bills     = "#employee/bills"
	NewBill   = "#employee/bill/new"
	Dashboard = "#admin/dashboard"
)
