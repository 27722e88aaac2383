package notifications

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"appbuilder/editor-backend/internal/notifications/websocket"
)

// Sender is the subset of the websocket manager used for delivery
type Sender interface {
	SendToUser(userID string, message websocket.Message) error
}

// Service pushes editor notifications over the websocket hub
type Service struct {
	sender Sender
	logger *zap.Logger
}

func NewService(sender Sender, logger *zap.Logger) *Service {
	return &Service{sender: sender, logger: logger}
}

// PublishOnboardingStatus pushes a status bar update to every session of the user
func (s *Service) PublishOnboardingStatus(ctx context.Context, userID, applicationID string, status interface{}) error {
	result := s.deliver(ctx, userID, websocket.Message{
		Type:          websocket.MessageTypeOnboardingStatus,
		Data:          status,
		Timestamp:     time.Now(),
		ApplicationID: applicationID,
	})
	return resultError(result)
}

// PublishAlert pushes a validated alert to the user's sessions
func (s *Service) PublishAlert(ctx context.Context, userID, applicationID string, alert interface{}) (*DeliveryResult, error) {
	result := s.deliver(ctx, userID, websocket.Message{
		Type:          websocket.MessageTypeAlert,
		Data:          alert,
		Timestamp:     time.Now(),
		ApplicationID: applicationID,
	})
	return result, resultError(result)
}

func (s *Service) deliver(ctx context.Context, userID string, message websocket.Message) *DeliveryResult {
	result := &DeliveryResult{
		Channel:     "websocket",
		Target:      userID,
		AttemptedAt: time.Now(),
	}

	if err := ctx.Err(); err != nil {
		result.Status = StatusFailed
		result.ErrorMessage = err.Error()
		return result
	}

	err := s.sender.SendToUser(userID, message)
	switch {
	case err == nil:
		result.Status = StatusDelivered
	case errors.Is(err, websocket.ErrUserNotConnected):
		// nobody to push to; the editor fetches state on next load
		result.Status = StatusSkipped
		result.ErrorMessage = err.Error()
	default:
		result.Status = StatusFailed
		result.ErrorMessage = err.Error()
		s.logger.Warn("Failed to push notification",
			zap.String("user_id", userID),
			zap.String("type", string(message.Type)),
			zap.Error(err))
	}
	return result
}

func resultError(result *DeliveryResult) error {
	if result.Status == StatusFailed {
		return errors.New(result.ErrorMessage)
	}
	return nil
}
