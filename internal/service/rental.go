package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/logger"
	"rentio-backend/internal/repository"
)

type rentalService struct {
	store    repository.Store
	notifier RentalNotifier
}

func NewRentalService(store repository.Store, notifier RentalNotifier) RentalService {
	return &rentalService{store: store, notifier: notifier}
}

// Transition consults the legal-transition table, never re-derives it:
// the table is the single place that knows whether a status change
// releases inventory. Row lock, status write and release happen in one
// transaction, so a terminal transition releases at most once.
func (s *rentalService) Transition(ctx context.Context, rentalID string, target domain.RentalStatus) (*domain.Rental, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrIllegalTransition, target)
	}

	var rental *domain.Rental
	var from domain.RentalStatus
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		rt, err := tx.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}

		effect, ok := domain.TransitionRule(rt.Status, target)
		if !ok {
			return fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, rt.Status, target)
		}

		from = rt.Status
		rt.Status = target
		now := time.Now()
		if effect.StampsPickup && rt.PickupDate == nil {
			rt.PickupDate = &now
		}
		if effect.StampsReturn && rt.ReturnDate == nil {
			rt.ReturnDate = &now
		}

		if err := tx.Rentals().Update(ctx, rt); err != nil {
			return err
		}
		if effect.ReleasesStock {
			if err := tx.Products().Release(ctx, rt.ProductID); err != nil {
				return err
			}
		}
		rental = rt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental status changed",
		"rental_id", rental.ID,
		"from", from,
		"to", rental.Status)

	if s.notifier != nil {
		s.notifier.RentalStatusChanged(ctx, rental, from)
	}
	return rental, nil
}

func (s *rentalService) Get(ctx context.Context, rentalID string) (*domain.Rental, error) {
	return s.store.Rentals().GetByID(ctx, rentalID)
}

func (s *rentalService) GetActiveRental(ctx context.Context, userID string) (*domain.Rental, error) {
	rt, err := s.store.Rentals().GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, domain.ErrRentalNotFound
	}
	return rt, nil
}

func (s *rentalService) List(ctx context.Context, in ListRentalsInput) (*RentalPage, error) {
	page, pageSize := normalizePage(in.Page, in.PageSize)
	items, total, err := s.store.Rentals().List(ctx, repository.RentalListFilter{
		UserID:   in.UserID,
		Status:   in.Status,
		Search:   in.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}
	return &RentalPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasNext:  page*pageSize < total,
		HasPrev:  page > 1,
	}, nil
}

// SweepOverdue routes each late rental through Transition so the same
// side-effect table applies (currently none for PICKED_UP -> OVERDUE).
// Rentals returned or swept between the listing and the transition are
// skipped, which makes a re-run a no-op.
func (s *rentalService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.store.Rentals().ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, rt := range candidates {
		if _, err := s.Transition(ctx, rt.ID, domain.RentalStatusOverdue); err != nil {
			if errors.Is(err, domain.ErrIllegalTransition) || errors.Is(err, domain.ErrRentalNotFound) {
				continue
			}
			return count, err
		}
		count++
	}
	return count, nil
}
