package service

import (
	"context"
	"time"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockProductRepo) TryReserve(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Release(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) AdjustTotalStock(ctx context.Context, id string, newStock int32) (*domain.Product, error) {
	args := m.Called(ctx, id, newStock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) SetRentable(ctx context.Context, id string, rentable bool) error {
	args := m.Called(ctx, id, rentable)
	return args.Error(0)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetActiveByUser(ctx context.Context, userID string) (*domain.Rental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) List(ctx context.Context, filter repository.RentalListFilter) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) Update(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) ListOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) CountActiveByProduct(ctx context.Context, productID string) (int32, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int32), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) RentalCreated(ctx context.Context, rt *domain.Rental) {
	m.Called(ctx, rt)
}
func (m *MockNotifier) RentalStatusChanged(ctx context.Context, rt *domain.Rental, from domain.RentalStatus) {
	m.Called(ctx, rt, from)
}

// stubStore bundles the mocks behind repository.Store. Transact runs
// the closure directly; transaction semantics are covered by the
// postgres store tests.
type stubStore struct {
	products      *MockProductRepo
	rentals       *MockRentalRepo
	notifications *MockNotificationRepo
}

func newStubStore() *stubStore {
	return &stubStore{
		products:      new(MockProductRepo),
		rentals:       new(MockRentalRepo),
		notifications: new(MockNotificationRepo),
	}
}

func (s *stubStore) Products() repository.ProductRepository { return s.products }

func (s *stubStore) Rentals() repository.RentalRepository { return s.rentals }

func (s *stubStore) Notifications() repository.NotificationRepository { return s.notifications }

func (s *stubStore) Transact(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}
