package http

import (
	"context"
	"time"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateRental(ctx context.Context, in service.CreateRentalInput) (*domain.Rental, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

// MockProductService
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductService) List(ctx context.Context, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockProductService) AdjustStock(ctx context.Context, id string, newStock int32) (*domain.Product, error) {
	args := m.Called(ctx, id, newStock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) SetRentable(ctx context.Context, id string, rentable bool) error {
	args := m.Called(ctx, id, rentable)
	return args.Error(0)
}
func (m *MockProductService) Reconcile(ctx context.Context, id string) (*service.StockReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StockReport), args.Error(1)
}

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) Transition(ctx context.Context, rentalID string, target domain.RentalStatus) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) Get(ctx context.Context, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetActiveRental(ctx context.Context, userID string) (*domain.Rental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) List(ctx context.Context, in service.ListRentalsInput) (*service.RentalPage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RentalPage), args.Error(1)
}
func (m *MockRentalService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}
