package service

import (
	"context"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/repository"
)

type notificationService struct {
	store repository.Store
}

func NewNotificationService(store repository.Store) NotificationService {
	return &notificationService{store: store}
}

func (s *notificationService) List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.store.Notifications().List(ctx, userID, page, pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return s.store.Notifications().MarkAsRead(ctx, notificationID, userID)
}
