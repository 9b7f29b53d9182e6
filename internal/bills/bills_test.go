package bills

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mmynk/billed/internal/metrics"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/routes"
)

// captureLogger returns a logger writing JSON lines into the returned buffer.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNew(t *testing.T) {
	store := &mockStore{}
	nav := &mockNavigator{}
	logger, _ := captureLogger()

	b := New(store, WithNavigator(nav), WithLogger(logger), WithLocale(language.English))

	assert.Same(t, store, b.store)
	assert.Equal(t, nav, b.navigator)
	assert.Same(t, logger, b.logger)
	assert.Equal(t, language.English, b.locale)
	assert.Nil(t, b.modal)
}

func TestGetBills(t *testing.T) {
	store := &mockStore{}
	store.On("List", mock.Anything).Return([]models.Bill{
		{ID: "1", VAT: "20", Amount: decimal.NewFromInt(100), Name: "Test Bill 1", Date: "2004-04-04", Status: models.BillStatusPending},
		{ID: "2", VAT: "10", Amount: decimal.NewFromInt(150), Name: "Test Bill 2", Date: "2003-03-03", Status: models.BillStatusRefused},
	}, nil).Once()
	logger, _ := captureLogger()

	got, err := New(store, WithLogger(logger)).GetBills(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "4 Avr. 04", got[0].FormattedDate)
	assert.Equal(t, "En attente", got[0].FormattedStatus)
	assert.Equal(t, "Test Bill 1", got[0].Name)
	assert.True(t, decimal.NewFromInt(100).Equal(got[0].Amount))
	assert.Equal(t, "3 Mar. 03", got[1].FormattedDate)
	assert.Equal(t, "Refusé", got[1].FormattedStatus)
	assert.False(t, got[1].Degraded)
	store.AssertExpectations(t)
}

func TestGetBills_FetchErrorPropagates(t *testing.T) {
	fetchErr := errors.New("store unavailable")
	store := &mockStore{}
	store.On("List", mock.Anything).Return(nil, fetchErr).Twice()
	logger, _ := captureLogger()
	reg := prometheus.NewRegistry()

	b := New(store, WithLogger(logger), WithMetrics(metrics.New(reg)))

	got, err := b.GetBills(context.Background())
	assert.Same(t, fetchErr, err)
	assert.Nil(t, got)

	sorted, err := b.Load(context.Background())
	assert.Nil(t, sorted)
	assert.Error(t, err)
}

func TestGetBills_EndToEnd(t *testing.T) {
	store := StoreFunc(func(ctx context.Context) ([]models.Bill, error) {
		return []models.Bill{
			{ID: "1", Date: "2021-06-01", Status: models.BillStatusPending},
			{ID: "2", Date: "not-a-date", Status: models.BillStatusAccepted},
		}, nil
	})
	logger, buf := captureLogger()

	got, err := New(store, WithLogger(logger)).GetBills(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "1 Jui. 21", got[0].FormattedDate)
	assert.False(t, got[0].Degraded)

	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, "not-a-date", got[1].FormattedDate)
	assert.Equal(t, "Accepté", got[1].FormattedStatus)
	assert.True(t, got[1].Degraded)

	var found bool
	for _, entry := range logEntries(t, buf) {
		if entry["bill_id"] == "2" && entry["field"] == FieldDate {
			found = true
			assert.Equal(t, "WARN", entry["level"])
			assert.Equal(t, "not-a-date", entry["raw"])
		}
		assert.NotEqual(t, "1", entry["bill_id"], "no diagnostics expected for a valid record")
	}
	assert.True(t, found, "expected a diagnostic log entry for bill 2")
}

func TestFormat_Totality(t *testing.T) {
	records := []models.Bill{
		{ID: "a", Date: "2022-01-31", Status: models.BillStatusAccepted},
		{ID: "b", Date: "", Status: models.BillStatusPending},
		{ID: "c", Date: "31/01/2022", Status: "archived"},
		{ID: "d", Date: "2022-02-30", Status: ""},
		{ID: "e", Date: "2020-12-01T08:30:00Z", Status: models.BillStatusRefused},
	}
	logger, _ := captureLogger()
	reg := prometheus.NewRegistry()

	got := New(nil, WithLogger(logger), WithMetrics(metrics.New(reg))).Format(records)

	require.Len(t, got, len(records))
	for i, record := range records {
		assert.Equal(t, record.ID, got[i].ID, "identity at %d", i)
		assert.Equal(t, record, got[i].Bill, "raw record at %d", i)
	}
	assert.Equal(t, "", got[1].FormattedDate)
	assert.Equal(t, "31/01/2022", got[2].FormattedDate)
	assert.Equal(t, "archived", got[2].FormattedStatus)
	assert.Equal(t, "2022-02-30", got[3].FormattedDate)
	assert.Equal(t, "", got[3].FormattedStatus)
	assert.Equal(t, "1 Déc. 20", got[4].FormattedDate)

	_, dated := got[2].ParsedDate()
	assert.False(t, dated)
	_, dated = got[4].ParsedDate()
	assert.True(t, dated)
}

func TestFormat_Empty(t *testing.T) {
	got := New(nil).Format(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFormat_English(t *testing.T) {
	logger, _ := captureLogger()
	got := New(nil, WithLogger(logger), WithLocale(language.English)).FormatBill(models.Bill{
		ID: "1", Date: "2021-06-01", Status: models.BillStatusAccepted,
	})
	assert.Equal(t, "Jun 1, 2021", got.FormattedDate)
	assert.Equal(t, "Accepted", got.FormattedStatus)
}

func TestLoad_SortsMostRecentFirst(t *testing.T) {
	store := StoreFunc(func(ctx context.Context) ([]models.Bill, error) {
		return []models.Bill{
			{ID: "1", Date: "2021-01-01", Status: models.BillStatusPending},
			{ID: "2", Date: "2022-05-12", Status: models.BillStatusPending},
			{ID: "3", Date: "2020-03-03", Status: models.BillStatusPending},
		}, nil
	})

	got, err := New(store).Load(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, bill := range got {
		ids[i] = bill.ID
	}
	assert.Equal(t, []string{"2", "1", "3"}, ids)
}

func TestHandleClickIconEye(t *testing.T) {
	modal := &mockModal{}
	modal.On("ShowModal", "mockBillUrl").Return(nil).Once()

	b := New(&mockStore{}, WithModal(modal))
	require.NoError(t, b.HandleClickIconEye(FileRef("mockBillUrl")))

	modal.AssertExpectations(t)
	modal.AssertNumberOfCalls(t, "ShowModal", 1)
}

func TestHandleClickIconEye_DisplayBill(t *testing.T) {
	var shown []string
	modal := ModalFunc(func(url string) error {
		shown = append(shown, url)
		return nil
	})
	bill := models.NewDisplayBill(models.Bill{ID: "1", FileURL: "https://cdn.example.com/receipt.jpg"}, "", "", false)

	require.NoError(t, New(nil, WithModal(modal)).HandleClickIconEye(bill))
	assert.Equal(t, []string{"https://cdn.example.com/receipt.jpg"}, shown)
}

func TestHandleClickIconEye_NoModal(t *testing.T) {
	err := New(nil).HandleClickIconEye(FileRef("x"))
	assert.ErrorIs(t, err, ErrNoModal)
}

func TestHandleClickNewBill(t *testing.T) {
	nav := &mockNavigator{}
	nav.On("Navigate", routes.NewBill).Return(nil).Once()

	require.NoError(t, New(nil, WithNavigator(nav)).HandleClickNewBill())

	nav.AssertExpectations(t)
	nav.AssertNumberOfCalls(t, "Navigate", 1)
	assert.Equal(t, "#employee/bill/new", routes.NewBill)
}

func TestHandleClickNewBill_NavigatorError(t *testing.T) {
	navErr := errors.New("blocked")
	b := New(nil, WithNavigator(NavigatorFunc(func(string) error { return navErr })))
	assert.ErrorIs(t, b.HandleClickNewBill(), navErr)
	assert.ErrorIs(t, New(nil).HandleClickNewBill(), ErrNoNavigator)
}
