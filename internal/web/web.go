// Package web serves the bills list to browsers over plain HTTP.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/text/language"

	"github.com/mmynk/billed/internal/auth"
	"github.com/mmynk/billed/internal/bills"
	"github.com/mmynk/billed/internal/i18n"
	"github.com/mmynk/billed/internal/metrics"
	"github.com/mmynk/billed/internal/middleware"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/storage"
)

// Handler serves the employee bills endpoints.
type Handler struct {
	store   storage.Store
	logger  *slog.Logger
	locale  language.Tag
	metrics *metrics.Metrics
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger passed to the bills container.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// WithLocale sets the locale used when a request has no Accept-Language header.
func WithLocale(tag language.Tag) Option {
	return func(h *Handler) { h.locale = tag }
}

// WithMetrics records fetches made by the handlers.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// NewHandler creates a Handler reading from store.
func NewHandler(store storage.Store, opts ...Option) *Handler {
	h := &Handler{
		store:  store,
		logger: slog.Default(),
		locale: i18n.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the endpoints, each requiring a session token.
func (h *Handler) Routes(jwtManager *auth.JWTManager) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /employee/bills", h.listBills)
	mux.HandleFunc("POST /employee/bills/new", h.newBill)
	mux.HandleFunc("GET /employee/bills/{id}/proof", h.billProof)
	return middleware.RequireAuthHTTP(jwtManager, mux)
}

type billsResponse struct {
	Bills []models.DisplayBill `json:"bills"`
}

type proofResponse struct {
	Modal string `json:"modal"`
	URL   string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// container builds a bills list scoped to the session user of r.
func (h *Handler) container(r *http.Request, opts ...bills.Option) *bills.Bills {
	locale := h.locale
	if header := r.Header.Get("Accept-Language"); header != "" {
		locale = i18n.ParseLocale(header)
	}
	opts = append([]bills.Option{
		bills.WithLogger(h.logger),
		bills.WithLocale(locale),
		bills.WithMetrics(h.metrics),
	}, opts...)
	return bills.New(storage.ForUser(h.store, middleware.GetUser(r.Context())), opts...)
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	display, err := h.container(r).Load(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch bills"})
		return
	}
	if display == nil {
		display = []models.DisplayBill{}
	}
	writeJSON(w, http.StatusOK, billsResponse{Bills: display})
}

func (h *Handler) newBill(w http.ResponseWriter, r *http.Request) {
	navigate := bills.NavigatorFunc(func(route string) error {
		http.Redirect(w, r, "/"+route, http.StatusSeeOther)
		return nil
	})
	if err := h.container(r, bills.WithNavigator(navigate)).HandleClickNewBill(); err != nil {
		h.logger.Error("Failed to navigate to new bill", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "navigation failed"})
	}
}

func (h *Handler) billProof(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	bill, err := h.store.GetBill(r.Context(), r.PathValue("id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "bill not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get bill", "bill_id", r.PathValue("id"), "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch bill"})
		return
	}
	if !user.IsAdmin() && bill.Email != user.Email {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not your bill"})
		return
	}

	show := bills.ModalFunc(func(url string) error {
		return writeJSON(w, http.StatusOK, proofResponse{Modal: "show", URL: url})
	})
	if err := h.container(r, bills.WithModal(show)).HandleClickIconEye(bills.FileRef(bill.FileURL)); err != nil {
		h.logger.Error("Failed to show bill proof", "bill_id", bill.ID, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
