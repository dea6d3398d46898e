package repository

import (
	"context"
	"time"

	"rentio-backend/internal/domain"
)

// RentalListFilter narrows List results. Search matches the denormalized
// user name/email and product name snapshots, case-insensitively.
type RentalListFilter struct {
	UserID   string
	Status   domain.RentalStatus
	Search   string
	Page     int32
	PageSize int32
}

// ProductRepository owns the product rows including the stock counters.
// TryReserve, Release and AdjustTotalStock are the only operations that
// may touch available_stock.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Product, int32, error)

	// TryReserve atomically decrements available_stock if the product is
	// rentable and has a unit available, returning the post-reserve row.
	// Failures are domain.ErrProductNotFound, ErrProductNotRentable or
	// ErrOutOfStock; concurrent reservations against the last unit can
	// never both succeed.
	TryReserve(ctx context.Context, id string) (*domain.Product, error)
	// Release returns one unit to available_stock, capped at stock.
	Release(ctx context.Context, id string) error
	// AdjustTotalStock sets stock and applies the same delta to
	// available_stock, floored at zero.
	AdjustTotalStock(ctx context.Context, id string, newStock int32) (*domain.Product, error)
	SetRentable(ctx context.Context, id string, rentable bool) error
}

// RentalRepository is a thin data-access boundary: no business rules,
// what is written can be read back exactly.
type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	// GetByIDForUpdate locks the row for the enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Rental, error)
	// GetActiveByUser returns the user's rental in an active status, or
	// (nil, nil) if there is none.
	GetActiveByUser(ctx context.Context, userID string) (*domain.Rental, error)
	List(ctx context.Context, filter RentalListFilter) ([]domain.Rental, int32, error)
	Update(ctx context.Context, rental *domain.Rental) error
	// ListOverdue returns PICKED_UP rentals whose end date is before now.
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error)
	// CountActiveByProduct supports reconciling stock - available_stock
	// against the rentals actually holding units.
	CountActiveByProduct(ctx context.Context, productID string) (int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}

// Store bundles the repositories with a transactional boundary.
// Transact runs fn against a store whose repositories share one
// database transaction; any error rolls back everything.
type Store interface {
	Products() ProductRepository
	Rentals() RentalRepository
	Notifications() NotificationRepository
	Transact(ctx context.Context, fn func(Store) error) error
}
