package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bountyboard/bounty-service/internal/config"
	"github.com/bountyboard/bounty-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBugCreated, n.handleBugCreated)
	n.dispatcher.Subscribe(events.EventSubmissionReceived, n.handleSubmissionReceived)
	n.dispatcher.Subscribe(events.EventSubmissionApproved, n.handleSubmissionDecision)
	n.dispatcher.Subscribe(events.EventSubmissionRejected, n.handleSubmissionDecision)
	n.dispatcher.Subscribe(events.EventBountyPaid, n.handleBountyPaid)
}

func (n *NotificationService) handleBugCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("BugCreated", zap.String("bug_id", event.BugID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSubmissionReceived(ctx context.Context, event events.Event) error {
	n.logger.Info("SubmissionReceived", zap.String("bug_id", event.BugID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSubmissionDecision(ctx context.Context, event events.Event) error {
	n.logger.Info("SubmissionDecision", zap.String("bug_id", event.BugID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBountyPaid(ctx context.Context, event events.Event) error {
	n.logger.Info("BountyPaid", zap.String("bug_id", event.BugID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("bug_id", event.BugID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("bug_id", event.BugID),
		zap.String("event_type", string(event.Type)))
}
