package service

import (
	"context"
	"fmt"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/logger"
	"rentio-backend/internal/repository"
	"rentio-backend/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	store         repository.Store
	notifier      RentalNotifier
	maxRentalDays int32 // 0 disables the duration cap
}

// NewBookingService creates the booking workflow. maxRentalDays is a
// policy knob, not a core invariant; 0 disables it.
func NewBookingService(store repository.Store, notifier RentalNotifier, maxRentalDays int32) BookingService {
	return &bookingService{
		store:         store,
		notifier:      notifier,
		maxRentalDays: maxRentalDays,
	}
}

// CreateRental reserves one inventory unit and creates the PENDING
// rental as a single transactional unit: if the insert fails the
// reservation rolls back with it, and vice versa.
func (s *bookingService) CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	totalDays, err := utils.TotalDays(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if s.maxRentalDays > 0 && totalDays > s.maxRentalDays {
		return nil, fmt.Errorf("%w: rental may not exceed %d days", domain.ErrInvalidDateRange, s.maxRentalDays)
	}

	var rental *domain.Rental
	err = s.store.Transact(ctx, func(tx repository.Store) error {
		// Pre-check for a friendly error; the partial unique index on
		// rentals closes the race between two concurrent bookings by
		// the same user.
		active, err := tx.Rentals().GetActiveByUser(ctx, in.UserID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrActiveRentalExists
		}

		product, err := tx.Products().TryReserve(ctx, in.ProductID)
		if err != nil {
			return err
		}

		rental = &domain.Rental{
			ID:               uuid.New().String(),
			UserID:           in.UserID,
			UserName:         in.UserName,
			UserEmail:        in.UserEmail,
			ProductID:        product.ID,
			ProductName:      product.Name,
			StartDate:        in.StartDate,
			EndDate:          in.EndDate,
			TotalDays:        totalDays,
			PricePerDayCents: product.PricePerDayCents,
			TotalPriceCents:  utils.TotalPriceCents(totalDays, product.PricePerDayCents),
			Status:           domain.RentalStatusPending,
			Notes:            in.Notes,
		}
		return tx.Rentals().Create(ctx, rental)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental created",
		"rental_id", rental.ID,
		"user_id", rental.UserID,
		"product_id", rental.ProductID,
		"total_days", rental.TotalDays,
		"total_price_cents", rental.TotalPriceCents)

	if s.notifier != nil {
		s.notifier.RentalCreated(ctx, rental)
	}
	return rental, nil
}
