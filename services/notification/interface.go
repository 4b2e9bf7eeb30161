package notification

import (
	"context"
	"errors"
	"fmt"

	"medibook/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoDeviceToken is returned when the recipient never registered a device.
var ErrNoDeviceToken = errors.New("user has no FCM token")

// Sender delivers a single FCM message. *messaging.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type UserLookup interface {
	GetByID(id string) (*models.User, error)
}

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	users  UserLookup
	sender Sender
	logger *zap.Logger
}

func NewDefaultNotificationService(users UserLookup, sender Sender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if users == nil || sender == nil {
		return nil, fmt.Errorf("notification service initialization error: user lookup or sender is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{users: users, sender: sender, logger: logger}, nil
}

// SendPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("SendPushNotification: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendPushNotification: user %s: %w", userID, ErrNoDeviceToken)
	}

	payload := make(map[string]string, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	if _, ok := payload["role"]; !ok {
		payload["role"] = string(u.Role)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: payload,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "appointments",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendPushNotification: failed to send FCM message: %w", err)
	}
	s.logger.Debug("push notification sent", zap.String("userId", userID), zap.String("messageId", id))
	return nil
}
