package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/events"
)

// NotificationService turns domain events into log-backed notifications.
// There is no outbound channel yet; the structured log is the audit trail.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIssueCreated, n.handleIssueEvent)
	n.dispatcher.Subscribe(events.EventIssueAssigned, n.handleIssueEvent)
	n.dispatcher.Subscribe(events.EventIssueStatusChanged, n.handleIssueEvent)
	n.dispatcher.Subscribe(events.EventIssueCommented, n.handleIssueEvent)
	n.dispatcher.Subscribe(events.EventUserRoleChanged, n.handleUserEvent)
}

func (n *NotificationService) handleIssueEvent(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.Int64("issue_id", event.IssueID),
		zap.String("actor", event.Actor.Email),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserEvent(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("actor", event.Actor.Email),
		zap.Any("payload", event.Payload))
	return nil
}
