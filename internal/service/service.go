package service

import (
	"context"
	"fmt"
	"time"

	"rentio-backend/internal/domain"
)

// CreateRentalInput carries an already-authenticated customer identity;
// the auth collaborator supplies user fields, they are never re-derived
// here.
type CreateRentalInput struct {
	UserID    string
	UserName  string
	UserEmail string
	ProductID string
	StartDate time.Time
	EndDate   time.Time
	Notes     string
}

func (in CreateRentalInput) Validate() error {
	if in.UserID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if in.ProductID == "" {
		return fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidDateRange)
	}
	if !in.EndDate.After(in.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidDateRange)
	}
	return nil
}

type ListRentalsInput struct {
	UserID   string
	Status   domain.RentalStatus
	Search   string
	Page     int32
	PageSize int32
}

// RentalPage is a paginated list result.
type RentalPage struct {
	Items    []domain.Rental `json:"items"`
	Total    int32           `json:"total"`
	Page     int32           `json:"page"`
	PageSize int32           `json:"page_size"`
	HasNext  bool            `json:"has_next"`
	HasPrev  bool            `json:"has_prev"`
}

type BookingService interface {
	CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error)
}

type RentalService interface {
	// Transition moves a rental to the target status, applying the
	// side effects of the legal-transition table, all in one
	// transaction.
	Transition(ctx context.Context, rentalID string, target domain.RentalStatus) (*domain.Rental, error)
	Get(ctx context.Context, rentalID string) (*domain.Rental, error)
	GetActiveRental(ctx context.Context, userID string) (*domain.Rental, error)
	List(ctx context.Context, in ListRentalsInput) (*RentalPage, error)
	// SweepOverdue reclassifies PICKED_UP rentals whose end date has
	// passed to OVERDUE and returns how many it moved. Idempotent.
	SweepOverdue(ctx context.Context, now time.Time) (int, error)
}

// StockReport compares a product's inventory counters against the
// rentals currently holding its units. Drift is zero when every
// reserved unit is accounted for by a stock-holding rental.
type StockReport struct {
	ProductID      string `json:"product_id"`
	Stock          int32  `json:"stock"`
	AvailableStock int32  `json:"available_stock"`
	ReservedUnits  int32  `json:"reserved_units"`
	HoldingRentals int32  `json:"holding_rentals"`
	Drift          int32  `json:"drift"`
}

type ProductService interface {
	Create(ctx context.Context, product *domain.Product) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Product, int32, error)
	AdjustStock(ctx context.Context, id string, newStock int32) (*domain.Product, error)
	SetRentable(ctx context.Context, id string, rentable bool) error
	// Reconcile audits one product: reserved units (stock minus
	// available) must equal the number of stock-holding rentals.
	Reconcile(ctx context.Context, id string) (*StockReport, error)
}

type NotificationService interface {
	List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

// RentalNotifier observes creations and status changes after they
// commit. Implementations do the outbound I/O (email, in-app rows);
// the core never blocks or fails on them.
type RentalNotifier interface {
	RentalCreated(ctx context.Context, rental *domain.Rental)
	RentalStatusChanged(ctx context.Context, rental *domain.Rental, from domain.RentalStatus)
}

func normalizePage(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
