// Package bills implements the employee bills list: fetching bills from a
// store, formatting them for display and handling the list's actions.
//
// The container holds no mutable state. Collaborators are injected through New
// and each call is independent.
package bills

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/mmynk/billed/internal/i18n"
	"github.com/mmynk/billed/internal/metrics"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/routes"
)

// Store provides the raw bill records to display.
type Store interface {
	List(ctx context.Context) ([]models.Bill, error)
}

// StoreFunc adapts a function to Store.
type StoreFunc func(ctx context.Context) ([]models.Bill, error)

func (f StoreFunc) List(ctx context.Context) ([]models.Bill, error) { return f(ctx) }

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(route string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string) error

func (f NavigatorFunc) Navigate(route string) error { return f(route) }

// Modal shows a receipt preview.
type Modal interface {
	ShowModal(url string) error
}

// ModalFunc adapts a function to Modal.
type ModalFunc func(url string) error

func (f ModalFunc) ShowModal(url string) error { return f(url) }

// Icon is anything that references a bill receipt, such as the eye icon of a list row.
type Icon interface {
	BillURL() string
}

// FileRef is an Icon for a bare receipt URL.
type FileRef string

func (f FileRef) BillURL() string { return string(f) }

// Bills is the bills list container.
type Bills struct {
	store     Store
	navigator Navigator
	modal     Modal
	logger    *slog.Logger
	locale    language.Tag
	metrics   *metrics.Metrics
}

// Option configures a Bills container.
type Option func(*Bills)

// WithNavigator sets the navigation collaborator used by HandleClickNewBill.
func WithNavigator(n Navigator) Option {
	return func(b *Bills) { b.navigator = n }
}

// WithModal sets the preview collaborator used by HandleClickIconEye.
func WithModal(m Modal) Option {
	return func(b *Bills) { b.modal = m }
}

// WithLogger sets the logger for formatting diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bills) { b.logger = l }
}

// WithLocale sets the display locale.
func WithLocale(tag language.Tag) Option {
	return func(b *Bills) { b.locale = tag }
}

// WithMetrics records fetches and degraded fields.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bills) { b.metrics = m }
}

// New creates a Bills container reading from store.
func New(store Store, opts ...Option) *Bills {
	b := &Bills{
		store:  store,
		logger: slog.Default(),
		locale: i18n.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetBills fetches the bills and formats them in store order.
// A store error is returned as is and no bills are produced.
func (b *Bills) GetBills(ctx context.Context) ([]models.DisplayBill, error) {
	start := time.Now()
	records, err := b.store.List(ctx)
	b.metrics.ObserveFetch(start, len(records), err)
	if err != nil {
		b.logger.Error("Failed to fetch bills", "error", err)
		return nil, err
	}

	display := b.Format(records)
	b.logger.Debug("Bills fetched", "count", len(display))
	return display, nil
}

// Load fetches, formats and sorts the bills for display.
func (b *Bills) Load(ctx context.Context) ([]models.DisplayBill, error) {
	display, err := b.GetBills(ctx)
	if err != nil {
		return nil, err
	}
	return SortForDisplay(display), nil
}

// HandleClickNewBill navigates to the bill creation view.
func (b *Bills) HandleClickNewBill() error {
	if b.navigator == nil {
		return ErrNoNavigator
	}
	return b.navigator.Navigate(routes.NewBill)
}

// HandleClickIconEye previews the receipt referenced by icon.
func (b *Bills) HandleClickIconEye(icon Icon) error {
	if b.modal == nil {
		return ErrNoModal
	}
	return b.modal.ShowModal(icon.BillURL())
}
