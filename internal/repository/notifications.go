package repository

import (
	"context"

	"github.com/krosec/sec-guard/internal/model"
)

func (s *Store) ListNotificationsByClientID(ctx context.Context, clientID int64, unreadOnly bool) ([]model.Notification, error) {
	query := `
		SELECT id, employee_id, client_id, title, message, sent_at, is_read
		FROM notifications
		WHERE client_id = ?
	`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY sent_at DESC`

	var notifications []model.Notification
	if err := s.db.WithContext(ctx).Raw(query, clientID).Scan(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *Store) CountUnreadByClientID(ctx context.Context, clientID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM notifications WHERE client_id = ? AND is_read = FALSE
	`, clientID).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) SaveNotification(ctx context.Context, notification *model.Notification) error {
	return s.db.WithContext(ctx).Raw(`
		INSERT INTO notifications (employee_id, client_id, title, message, sent_at, is_read)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`, notification.EmployeeID, notification.ClientID, notification.Title,
		notification.Message, notification.SentAt, notification.IsRead,
	).Scan(&notification.ID).Error
}

func (s *Store) MarkNotificationRead(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE notifications SET is_read = TRUE WHERE id = ?
	`, id).Error
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, clientID int64) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE notifications SET is_read = TRUE WHERE client_id = ? AND is_read = FALSE
	`, clientID).Error
}

func (s *Store) DeleteNotification(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Exec(`DELETE FROM notifications WHERE id = ?`, id).Error
}
