package service

import (
	"context"
	"fmt"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/logger"
	"rentio-backend/internal/repository"
)

// notificationWriter records rental events as in-app notification rows.
type notificationWriter struct {
	store repository.Store
}

func NewNotificationWriter(store repository.Store) RentalNotifier {
	return &notificationWriter{store: store}
}

func (w *notificationWriter) RentalCreated(ctx context.Context, rt *domain.Rental) {
	note := &domain.Notification{
		UserID:  rt.UserID,
		Title:   "Rental Created",
		Message: fmt.Sprintf("Your rental of %s (%d days) was created and is pending confirmation", rt.ProductName, rt.TotalDays),
		Attributes: map[string]string{
			"type":      "RENTAL_CREATED",
			"rental_id": rt.ID,
		},
	}
	if err := w.store.Notifications().Create(ctx, note); err != nil {
		logger.Error("Failed to write rental created notification", "rental_id", rt.ID, "error", err)
	}
}

func (w *notificationWriter) RentalStatusChanged(ctx context.Context, rt *domain.Rental, from domain.RentalStatus) {
	note := &domain.Notification{
		UserID:  rt.UserID,
		Title:   "Rental Status Updated",
		Message: fmt.Sprintf("Your rental of %s is now %s", rt.ProductName, rt.Status),
		Attributes: map[string]string{
			"type":      "RENTAL_STATUS_CHANGED",
			"rental_id": rt.ID,
			"from":      string(from),
			"to":        string(rt.Status),
		},
	}
	if err := w.store.Notifications().Create(ctx, note); err != nil {
		logger.Error("Failed to write rental status notification", "rental_id", rt.ID, "error", err)
	}
}

// MultiNotifier fans out events to several notifiers.
type MultiNotifier []RentalNotifier

func (m MultiNotifier) RentalCreated(ctx context.Context, rt *domain.Rental) {
	for _, n := range m {
		n.RentalCreated(ctx, rt)
	}
}

func (m MultiNotifier) RentalStatusChanged(ctx context.Context, rt *domain.Rental, from domain.RentalStatus) {
	for _, n := range m {
		n.RentalStatusChanged(ctx, rt, from)
	}
}
