package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"society-backend-go/internal/models"
	"society-backend-go/pkg/mailer"
	"society-backend-go/pkg/messagequeue"
)

// TransferEvent is the message published to the notifications queue when an
// ownership transfer completes.
type TransferEvent struct {
	Event           string    `json:"event"` // "ownership.transferred"
	FlatID          string    `json:"flatId"`
	FlatNumber      string    `json:"flatNumber"`
	NewOwnerID      string    `json:"newOwnerId"`
	NewOwnerName    string    `json:"newOwnerName"`
	PreviousOwnerID string    `json:"previousOwnerId,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// notificationService implements the Notifier interface over the message
// queue and the mailer. Every delivery is best-effort: failures are logged
// and never propagated, and either channel may be absent.
type notificationService struct {
	queue     messagequeue.MessageQueue // optional
	queueName string
	mail      *mailer.Mailer // optional
	logger    *zap.Logger
}

// NewNotificationService creates a Notifier. Either the queue or the mailer
// may be nil; the corresponding channel is then skipped.
func NewNotificationService(mq messagequeue.MessageQueue, queueName string, m *mailer.Mailer, logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &notificationService{
		queue:     mq,
		queueName: queueName,
		mail:      m,
		logger:    logger,
	}
}

func (s *notificationService) TransferCompleted(ctx context.Context, flat *models.Flat, newOwner *models.Owner, previousOwnerID string) {
	if flat == nil || newOwner == nil {
		return
	}

	if s.queue != nil && s.queueName != "" {
		event := TransferEvent{
			Event:           "ownership.transferred",
			FlatID:          flat.ID,
			FlatNumber:      flat.FlatNumber,
			NewOwnerID:      newOwner.ID,
			NewOwnerName:    newOwner.Name,
			PreviousOwnerID: previousOwnerID,
			OccurredAt:      time.Now().UTC(),
		}
		body, err := json.Marshal(event)
		if err != nil {
			s.logger.Warn("failed to encode transfer event", zap.Error(err))
		} else if err := s.queue.Publish(s.queueName, body); err != nil {
			s.logger.Warn("failed to publish transfer event",
				zap.String("queue", s.queueName),
				zap.String("flatId", flat.ID),
				zap.Error(err),
			)
		}
	}

	if s.mail != nil && newOwner.Email != "" {
		subject := fmt.Sprintf("Ownership of flat %s confirmed", flat.FlatNumber)
		body := fmt.Sprintf(
			"<p>Dear %s,</p><p>Your ownership of flat <b>%s</b> has been recorded. Welcome!</p>",
			newOwner.Name, flat.FlatNumber,
		)
		if err := s.mail.Send(newOwner.Email, subject, body); err != nil {
			s.logger.Warn("failed to send transfer email",
				zap.String("flatId", flat.ID),
				zap.String("ownerId", newOwner.ID),
				zap.Error(err),
			)
		}
	}
}
