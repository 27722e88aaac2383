package alerts

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"appbuilder/editor-backend/internal/notifications"
)

// Publisher delivers alerts to the user's editor sessions
type Publisher interface {
	PublishAlert(ctx context.Context, userID, applicationID string, alert interface{}) (*notifications.DeliveryResult, error)
}

type Service interface {
	Show(ctx context.Context, userID, applicationID string, payload Payload) (*Result, error)
}

type alertService struct {
	publisher Publisher
	logger    *zap.Logger
}

func NewService(publisher Publisher, logger *zap.Logger) Service {
	return &alertService{publisher: publisher, logger: logger}
}

// Show validates the payload, records the console line and pushes the toast
func (s *alertService) Show(ctx context.Context, userID, applicationID string, payload Payload) (*Result, error) {
	alert, err := ShowAlert(payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info(alert.ConsoleText,
		zap.String("user_id", userID),
		zap.String("application_id", applicationID))

	delivery, err := s.publisher.PublishAlert(ctx, userID, applicationID, alert)
	if err != nil {
		return nil, fmt.Errorf("failed to publish alert: %w", err)
	}
	return &Result{Alert: *alert, Delivery: delivery}, nil
}
