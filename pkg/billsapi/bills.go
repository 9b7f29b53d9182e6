package billsapi

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// BillServiceName is the fully-qualified name of the BillService.
	BillServiceName = "billed.v1.BillService"

	BillServiceListBillsProcedure  = "/billed.v1.BillService/ListBills"
	BillServiceGetBillProcedure    = "/billed.v1.BillService/GetBill"
	BillServiceCreateBillProcedure = "/billed.v1.BillService/CreateBill"
)

// BillServiceHandler is implemented by the server side of the BillService.
type BillServiceHandler interface {
	ListBills(context.Context, *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error)
	GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error)
	CreateBill(context.Context, *connect.Request[CreateBillRequest]) (*connect.Response[CreateBillResponse], error)
}

// NewBillServiceHandler builds an HTTP handler serving svc, and returns the
// path it should be mounted on.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	list := connect.NewUnaryHandler(BillServiceListBillsProcedure, svc.ListBills, opts...)
	get := connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...)
	create := connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, opts...)

	return "/" + BillServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BillServiceListBillsProcedure:
			list.ServeHTTP(w, r)
		case BillServiceGetBillProcedure:
			get.ServeHTTP(w, r)
		case BillServiceCreateBillProcedure:
			create.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BillServiceClient calls a remote BillService.
type BillServiceClient interface {
	ListBills(context.Context, *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error)
	GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error)
	CreateBill(context.Context, *connect.Request[CreateBillRequest]) (*connect.Response[CreateBillResponse], error)
}

// NewBillServiceClient returns a client for the BillService at baseURL.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &billServiceClient{
		list:   connect.NewClient[ListBillsRequest, ListBillsResponse](httpClient, baseURL+BillServiceListBillsProcedure, opts...),
		get:    connect.NewClient[GetBillRequest, GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		create: connect.NewClient[CreateBillRequest, CreateBillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
	}
}

type billServiceClient struct {
	list   *connect.Client[ListBillsRequest, ListBillsResponse]
	get    *connect.Client[GetBillRequest, GetBillResponse]
	create *connect.Client[CreateBillRequest, CreateBillResponse]
}

func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	return c.get.CallUnary(ctx, req)
}

func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[CreateBillRequest]) (*connect.Response[CreateBillResponse], error) {
	return c.create.CallUnary(ctx, req)
}

// UnimplementedBillServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillServiceHandler struct{}

func (UnimplementedBillServiceHandler) ListBills(context.Context, *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billed.v1.BillService.ListBills is not implemented"))
}

func (UnimplementedBillServiceHandler) GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billed.v1.BillService.GetBill is not implemented"))
}

func (UnimplementedBillServiceHandler) CreateBill(context.Context, *connect.Request[CreateBillRequest]) (*connect.Response[CreateBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billed.v1.BillService.CreateBill is not implemented"))
}
