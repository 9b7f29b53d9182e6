package bills

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/mmynk/billed/internal/models"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) List(ctx context.Context) ([]models.Bill, error) {
	args := m.Called(ctx)
	bills, _ := args.Get(0).([]models.Bill)
	return bills, args.Error(1)
}

type mockNavigator struct {
	mock.Mock
}

func (m *mockNavigator) Navigate(route string) error {
	return m.Called(route).Error(0)
}

type mockModal struct {
	mock.Mock
}

func (m *mockModal) ShowModal(url string) error {
	return m.Called(url).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
