// Package remote reads bills from a billed server over Connect RPC.
package remote

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/billed/internal/middleware"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/pkg/billsapi"
)

// Client is a bills store backed by a remote BillService.
type Client struct {
	bills billsapi.BillServiceClient
}

// New returns a Client for the server at baseURL, authenticated with token.
// httpClient may be nil to use http.DefaultClient.
func New(httpClient connect.HTTPClient, baseURL, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return NewFromService(billsapi.NewBillServiceClient(httpClient, baseURL,
		connect.WithInterceptors(middleware.BearerToken(token)),
	))
}

// NewFromService wraps an existing BillService client.
func NewFromService(bills billsapi.BillServiceClient) *Client {
	return &Client{bills: bills}
}

// List returns the bills visible to the session.
// Errors are returned as *connect.Error; timeouts follow ctx.
func (c *Client) List(ctx context.Context) ([]models.Bill, error) {
	resp, err := c.bills.ListBills(ctx, connect.NewRequest(&billsapi.ListBillsRequest{}))
	if err != nil {
		return nil, err
	}
	return resp.Msg.Bills, nil
}

// Get returns one bill.
func (c *Client) Get(ctx context.Context, id string) (*models.Bill, error) {
	resp, err := c.bills.GetBill(ctx, connect.NewRequest(&billsapi.GetBillRequest{ID: id}))
	if err != nil {
		return nil, fmt.Errorf("get bill %s: %w", id, err)
	}
	return &resp.Msg.Bill, nil
}
