package service

import (
	"context"

	"github.com/krosec/sec-guard/internal/model"
)

// NotificationService covers the read/unread flows for internal
// notifications. Records themselves are created by the approval flow.
type NotificationService struct {
	store Store
}

func NewNotificationService(store Store) *NotificationService {
	return &NotificationService{store: store}
}

func (s *NotificationService) ListByClient(ctx context.Context, clientID int64, unreadOnly bool) ([]model.Notification, error) {
	return s.store.ListNotificationsByClientID(ctx, clientID, unreadOnly)
}

func (s *NotificationService) UnreadCount(ctx context.Context, clientID int64) (int64, error) {
	return s.store.CountUnreadByClientID(ctx, clientID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	return s.store.MarkNotificationRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, clientID int64) error {
	return s.store.MarkAllNotificationsRead(ctx, clientID)
}

func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteNotification(ctx, id)
}
