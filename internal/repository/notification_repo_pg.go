package repository

import (
	"context"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository interface {
	FanOutToAdmins(ctx context.Context, notification *domain.Notification) (int, error)
	ListByRecipient(ctx context.Context, recipientID int64, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	UnreadCount(ctx context.Context, recipientID int64) (int, error)
}

type PGNotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) NotificationRepository {
	return &PGNotificationRepository{db: db}
}

// FanOutToAdmins inserts one notification row per admin user and reports how
// many recipients were reached.
func (r *PGNotificationRepository) FanOutToAdmins(ctx context.Context, n *domain.Notification) (int, error) {
	cmd, err := r.db.Exec(ctx, `INSERT INTO notifications (recipient_id, title, message, notification_type, booking_id)
		SELECT id, $1, $2, $3, $4 FROM users WHERE role = 'admin'`,
		n.Title, n.Message, n.Type, n.BookingID)
	if err != nil {
		return 0, err
	}
	return int(cmd.RowsAffected()), nil
}

func (r *PGNotificationRepository) ListByRecipient(ctx context.Context, recipientID int64, limit int) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, `SELECT id, recipient_id, title, message, notification_type, booking_id, is_read, created_at
		FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC LIMIT $2`, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type, &n.BookingID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PGNotificationRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGNotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = true WHERE recipient_id = $1 AND NOT is_read`, recipientID)
	return err
}

func (r *PGNotificationRepository) UnreadCount(ctx context.Context, recipientID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND NOT is_read`, recipientID).Scan(&count)
	return count, err
}

var _ NotificationRepository = (*PGNotificationRepository)(nil)
