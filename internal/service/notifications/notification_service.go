package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/Domenick1991/courtbooking/internal/kafka"
	"github.com/Domenick1991/courtbooking/internal/repository"
)

const defaultListLimit = 50

type NotificationUseCase interface {
	HandleEvent(ctx context.Context, event kafka.BookingEvent) error
	List(ctx context.Context, recipientID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	UnreadCount(ctx context.Context, recipientID int64) (int, error)
}

type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// HandleEvent turns a booking event into panel notifications for every admin
// user. Unknown event types are skipped, not failed, so the consumer keeps
// its offset moving.
func (s *NotificationService) HandleEvent(ctx context.Context, event kafka.BookingEvent) error {
	var title string
	switch domain.NotificationType(event.Type) {
	case domain.NotificationBookingCreated:
		title = "New online booking"
	case domain.NotificationBookingCancelled:
		title = "Online booking cancelled"
	default:
		log.Printf("WARNING: skipping booking event with unknown type %q", event.Type)
		return nil
	}

	notification := &domain.Notification{
		Title: title,
		Message: fmt.Sprintf("%s booked %s on %s from %s to %s",
			event.CustomerName, event.CourtName, event.Date, event.StartTime, event.EndTime),
		Type:      domain.NotificationType(event.Type),
		BookingID: &event.BookingID,
	}
	if domain.NotificationType(event.Type) == domain.NotificationBookingCancelled {
		notification.Message = fmt.Sprintf("%s cancelled the booking of %s on %s from %s to %s",
			event.CustomerName, event.CourtName, event.Date, event.StartTime, event.EndTime)
	}

	recipients, err := s.notifications.FanOutToAdmins(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to fan out %s notification: %w", event.Type, err)
	}
	log.Printf("delivered %s notification for booking %d to %d admins", event.Type, event.BookingID, recipients)
	return nil
}

func (s *NotificationService) List(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	return s.notifications.ListByRecipient(ctx, recipientID, defaultListLimit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID int64) error {
	return s.notifications.MarkRead(ctx, id, recipientID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID int64) error {
	return s.notifications.MarkAllRead(ctx, recipientID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID int64) (int, error) {
	return s.notifications.UnreadCount(ctx, recipientID)
}

var _ NotificationUseCase = (*NotificationService)(nil)
