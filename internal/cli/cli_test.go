package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/pkg/billsapi"
)

type fakeBillService struct {
	billsapi.UnimplementedBillServiceHandler
	bills []models.Bill
	err   error
}

func (f *fakeBillService) ListBills(ctx context.Context, req *connect.Request[billsapi.ListBillsRequest]) (*connect.Response[billsapi.ListBillsResponse], error) {
	if req.Header().Get("Authorization") != "Bearer tok" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("missing token"))
	}
	if f.err != nil {
		return nil, f.err
	}
	return connect.NewResponse(&billsapi.ListBillsResponse{Bills: f.bills}), nil
}

func (f *fakeBillService) GetBill(ctx context.Context, req *connect.Request[billsapi.GetBillRequest]) (*connect.Response[billsapi.GetBillResponse], error) {
	for _, b := range f.bills {
		if b.ID == req.Msg.ID {
			return connect.NewResponse(&billsapi.GetBillResponse{Bill: b}), nil
		}
	}
	return nil, connect.NewError(connect.CodeNotFound, errors.New("bill not found"))
}

func startServer(t *testing.T, svc *fakeBillService) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(billsapi.NewBillServiceHandler(svc))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var sampleBills = []models.Bill{
	{ID: "1", Type: "Transports", Name: "train", Date: "2021-01-01", Amount: decimal.NewFromInt(40), Status: models.BillStatusPending},
	{ID: "2", Type: "Hôtel et logement", Name: "hotel", Date: "2022-05-12", Amount: decimal.RequireFromString("348.5"), Status: models.BillStatusAccepted, FileURL: "https://storage.example/2.jpg"},
	{ID: "3", Type: "Restaurants et bars", Name: "diner", Date: "not-a-date", Amount: decimal.NewFromInt(12), Status: models.BillStatusRefused},
}

func TestListCommand(t *testing.T) {
	url := startServer(t, &fakeBillService{bills: sampleBills})

	out, err := run(t, "list", "--server", url, "--token", "tok")
	require.NoError(t, err)

	assert.Contains(t, strings.ToUpper(out), "STATUS")
	for _, want := range []string{"12 Mai. 22", "348.50", "Accepté", "1 Jan. 21", "not-a-date"} {
		assert.Contains(t, out, want)
	}

	newest := strings.Index(out, "12 Mai. 22")
	older := strings.Index(out, "1 Jan. 21")
	undated := strings.Index(out, "not-a-date")
	assert.True(t, newest < older && older < undated, "rows not most recent first:\n%s", out)

	assert.True(t, strings.HasSuffix(out, "\nTotal: 400.50 (3 bills)\n"), out)
}

func TestListCommand_JSONAndLocale(t *testing.T) {
	url := startServer(t, &fakeBillService{bills: sampleBills})

	out, err := run(t, "list", "--server", url, "--token", "tok", "--locale", "en", "--json")
	require.NoError(t, err)

	var display []models.DisplayBill
	require.NoError(t, json.Unmarshal([]byte(out), &display))
	require.Len(t, display, 3)
	assert.Equal(t, []string{"2", "1", "3"}, []string{display[0].ID, display[1].ID, display[2].ID})
	assert.Equal(t, "Accepted", display[0].FormattedStatus)
	assert.True(t, display[2].Degraded)
}

func TestListCommand_Errors(t *testing.T) {
	url := startServer(t, &fakeBillService{err: connect.NewError(connect.CodeUnavailable, errors.New("db down"))})

	_, err := run(t, "list", "--server", url, "--token", "tok")
	assert.Error(t, err)

	_, err = run(t, "list", "--server", url)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestNewCommand(t *testing.T) {
	out, err := run(t, "new")
	require.NoError(t, err)
	assert.Equal(t, "#employee/bill/new\n", out)
}

func TestProofCommand(t *testing.T) {
	url := startServer(t, &fakeBillService{bills: sampleBills})

	out, err := run(t, "proof", "2", "--server", url, "--token", "tok")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example/2.jpg\n", out)

	_, err = run(t, "proof", "9", "--server", url, "--token", "tok")
	assert.EqualError(t, err, "bill 9 not found")

	_, err = run(t, "proof")
	assert.Error(t, err)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, err := run(t, "new", "--log-level", "verbose")
	assert.Error(t, err)
}
