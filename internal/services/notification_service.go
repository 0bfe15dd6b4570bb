package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tourproof/internal/models/db_models"
	"tourproof/internal/models/response_models"
	"tourproof/internal/repositories"
	"tourproof/pkg/metrics"
	"tourproof/pkg/utils"
)

const maxNotificationPage = 200

// Subscriber receives committed ledger events. Delivery is best effort: a
// failing subscriber is logged and never affects the operation.
type Subscriber interface {
	Name() string
	Handle(ctx context.Context, notification *db_models.Notification) error
}

type NotificationServiceInterface interface {
	Publish(ctx context.Context, notifications []*db_models.Notification)
	ListNotifications(ctx context.Context, afterID uint64, limit int) ([]response_models.Notification, error)
}

type NotificationService struct {
	repo        repositories.NotificationRepository
	subscribers []Subscriber
	logger      *zap.Logger
}

func NewNotificationService(repo repositories.NotificationRepository, logger *zap.Logger, subscribers []Subscriber) NotificationServiceInterface {
	return &NotificationService{
		repo:        repo,
		subscribers: subscribers,
		logger:      logger,
	}
}

func (n *NotificationService) Publish(ctx context.Context, notifications []*db_models.Notification) {
	for _, notification := range notifications {
		for _, sub := range n.subscribers {
			if err := sub.Handle(ctx, notification); err != nil {
				n.logger.Warn("notification subscriber failed",
					zap.String("subscriber", sub.Name()),
					zap.String("type", notification.Type),
					zap.Uint64("notification_id", notification.ID),
					zap.Error(err))
			}
		}
	}
}

func (n *NotificationService) ListNotifications(ctx context.Context, afterID uint64, limit int) ([]response_models.Notification, error) {
	if limit < 1 || limit > maxNotificationPage {
		return nil, utils.ErrInvalidPageSize
	}
	rows, err := n.repo.ListAfter(ctx, afterID, limit)
	if err != nil {
		return nil, readFailed(n.logger, "list_notifications", err)
	}
	result := make([]response_models.Notification, 0, len(rows))
	for _, row := range rows {
		result = append(result, response_models.Notification{
			ID:         row.ID,
			Type:       row.Type,
			TourID:     row.TourID,
			Attributes: map[string]interface{}(row.Attributes),
			CreatedAt:  utils.FormatUnixRFC3339(row.CreatedAt),
		})
	}
	return result, nil
}

// LogSubscriber writes every event to the structured log.
type LogSubscriber struct {
	logger *zap.Logger
}

func NewLogSubscriber(logger *zap.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger.Named("events")}
}

func (l *LogSubscriber) Name() string { return "log" }

func (l *LogSubscriber) Handle(_ context.Context, notification *db_models.Notification) error {
	fields := []zap.Field{
		zap.Uint64("notification_id", notification.ID),
		zap.String("type", notification.Type),
	}
	if notification.TourID != nil {
		fields = append(fields, zap.Uint64("tour_id", *notification.TourID))
	}
	for key, value := range notification.Attributes {
		if key == "tourId" {
			continue
		}
		fields = append(fields, zap.Any(key, value))
	}
	l.logger.Info("ledger event", fields...)
	return nil
}

// MetricsSubscriber turns committed events into Prometheus counters.
type MetricsSubscriber struct {
	metrics *metrics.LedgerMetrics
}

func NewMetricsSubscriber() *MetricsSubscriber {
	return &MetricsSubscriber{metrics: metrics.Ledger()}
}

func (m *MetricsSubscriber) Name() string { return "metrics" }

func (m *MetricsSubscriber) Handle(_ context.Context, notification *db_models.Notification) error {
	switch notification.Type {
	case db_models.EventTourCreated:
		m.metrics.ObserveTourCreated()
	case db_models.EventTourUpvoted:
		m.metrics.ObserveVote()
	case db_models.EventTourVerified:
		m.metrics.ObserveVerified()
	case db_models.EventCheckInConfirmed:
		m.metrics.ObserveCheckIn()
	case db_models.EventPointsAwarded:
		amount, err := strconv.ParseInt(attribute(notification, "amount"), 10, 64)
		if err != nil {
			return fmt.Errorf("points.awarded amount: %w", err)
		}
		m.metrics.ObservePoints(attribute(notification, "role"), float64(amount))
	}
	return nil
}

// MailSubscriber mails the owner when a tour is verified and each recipient
// of awarded points.
type MailSubscriber struct {
	accounts repositories.AccountRepository
	mail     IMailService
	logger   *zap.Logger
	appURL   string
	dispatch func(func())
}

func NewMailSubscriber(accounts repositories.AccountRepository, mail IMailService, appURL string, logger *zap.Logger) *MailSubscriber {
	return &MailSubscriber{
		accounts: accounts,
		mail:     mail,
		logger:   logger,
		appURL:   appURL,
		dispatch: func(f func()) { go f() },
	}
}

func (s *MailSubscriber) Name() string { return "mail" }

func (s *MailSubscriber) Handle(ctx context.Context, notification *db_models.Notification) error {
	var recipient, subject, body string
	switch notification.Type {
	case db_models.EventTourVerified:
		recipient = attribute(notification, "owner")
		subject = fmt.Sprintf("Tour #%s is verified", attribute(notification, "tourId"))
		body = fmt.Sprintf("Your tour reached %s upvotes and is now open for check-ins.", attribute(notification, "upvotes"))
	case db_models.EventPointsAwarded:
		recipient = attribute(notification, "recipient")
		subject = "You earned reward points"
		body = fmt.Sprintf("You received %s points for tour #%s. Your balance is now %s.",
			attribute(notification, "amount"), attribute(notification, "tourId"), attribute(notification, "balance"))
	default:
		return nil
	}

	id, err := uuid.Parse(recipient)
	if err != nil {
		return fmt.Errorf("mail recipient %q: %w", recipient, err)
	}
	account, err := s.accounts.FindById(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return nil
	}

	to := account.Email
	link := fmt.Sprintf("%s/tours/%s", s.appURL, attribute(notification, "tourId"))
	s.dispatch(func() {
		if err := s.mail.SendMailToNotifyUser(to, subject, body, "View tour", link); err != nil {
			s.logger.Warn("failed to send notification mail",
				zap.String("to", to),
				zap.String("type", notification.Type),
				zap.Error(err))
		}
	})
	return nil
}
