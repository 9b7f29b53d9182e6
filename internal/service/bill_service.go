package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billed/internal/calculator"
	"github.com/mmynk/billed/internal/middleware"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/storage"
	"github.com/mmynk/billed/pkg/billsapi"
)

var (
	errNotEmployee = errors.New("only employees can submit bills")
	errNotOwner    = errors.New("bill belongs to another employee")
)

// BillService implements the Connect BillService.
// It serves raw bill records; formatting happens in the bills container.
type BillService struct {
	billsapi.UnimplementedBillServiceHandler
	store    storage.Store
	validate *validator.Validate
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store) *BillService {
	return &BillService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func sessionUser(ctx context.Context) (*models.User, error) {
	user := middleware.GetUser(ctx)
	if user == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	return user, nil
}

// ListBills returns the caller's bills, or every bill for admins.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[billsapi.ListBillsRequest]) (*connect.Response[billsapi.ListBillsResponse], error) {
	user, err := sessionUser(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := storage.ForUser(s.store, user).List(ctx)
	if err != nil {
		slog.Error("ListBills failed", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Debug("ListBills successful", "user_id", user.ID, "count", len(bills))
	return connect.NewResponse(&billsapi.ListBillsResponse{Bills: bills}), nil
}

// GetBill retrieves a bill the caller may see.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[billsapi.GetBillRequest]) (*connect.Response[billsapi.GetBillResponse], error) {
	user, err := sessionUser(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.store.GetBill(ctx, req.Msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		slog.Error("GetBill failed", "bill_id", req.Msg.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if !user.IsAdmin() && bill.Email != user.Email {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotOwner)
	}

	return connect.NewResponse(&billsapi.GetBillResponse{Bill: *bill}), nil
}

// CreateBill validates and stores a new pending bill for the calling employee.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[billsapi.CreateBillRequest]) (*connect.Response[billsapi.CreateBillResponse], error) {
	user, err := sessionUser(ctx)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotEmployee)
	}

	if err := s.validate.Struct(req.Msg); err != nil {
		slog.Warn("CreateBill validation failed", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	amount, err := decimal.NewFromString(req.Msg.Amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid amount: %w", err))
	}

	vat := req.Msg.VAT
	if vat == "" && req.Msg.Pct > 0 {
		breakdown, err := calculator.SplitVAT(amount, req.Msg.Pct)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		vat = breakdown.Tax.StringFixed(2)
	}

	bill := &models.Bill{
		Email:      user.Email,
		Type:       req.Msg.Type,
		Name:       req.Msg.Name,
		Date:       req.Msg.Date,
		Amount:     amount,
		VAT:        vat,
		Pct:        req.Msg.Pct,
		Commentary: req.Msg.Commentary,
		FileURL:    req.Msg.FileURL,
		FileName:   req.Msg.FileName,
		Status:     models.BillStatusPending,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("CreateBill failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Bill created", "bill_id", bill.ID, "user_id", user.ID)
	return connect.NewResponse(&billsapi.CreateBillResponse{Bill: *bill}), nil
}
