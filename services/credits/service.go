package credits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"medibook/database/repository"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

const (
	metaUserID  = "userId"
	metaCredits = "credits"

	MinPurchase = 1
	MaxPurchase = 100

	eventPaymentSucceeded = "payment_intent.succeeded"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

type CreditService interface {
	Balance(ctx context.Context, userID string) (*models.CreditBalance, error)
	History(ctx context.Context, userID string, limit int) ([]models.CreditTransaction, error)
	StartPurchase(ctx context.Context, userID string, credits int) (*models.CreditPurchaseIntent, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type DefaultCreditService struct {
	Users      userRepo.UserRepository
	Gateway    PaymentGateway
	PriceCents int64
	Currency   string
	Logger     *zap.Logger
}

func (s *DefaultCreditService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultCreditService) Balance(ctx context.Context, userID string) (*models.CreditBalance, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	return &models.CreditBalance{UserID: u.ID, Credits: u.Credits}, nil
}

func (s *DefaultCreditService) History(ctx context.Context, userID string, limit int) ([]models.CreditTransaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Users.Transactions(userID, limit)
}

// StartPurchase creates a PaymentIntent; credits are granted by the webhook.
func (s *DefaultCreditService) StartPurchase(ctx context.Context, userID string, credits int) (*models.CreditPurchaseIntent, error) {
	if credits < MinPurchase || credits > MaxPurchase {
		return nil, services.NewValidationError("credits", fmt.Sprintf("must be between %d and %d", MinPurchase, MaxPurchase))
	}
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	if u.Role != models.RolePatient {
		return nil, fmt.Errorf("%w: only patients can buy credits", services.ErrForbidden)
	}

	amount := int64(credits) * s.PriceCents
	pi, err := s.Gateway.CreateIntent(ctx, userID, credits, amount, s.Currency)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	s.logger().Info("credit purchase started",
		zap.String("userId", userID), zap.Int("credits", credits), zap.String("paymentIntent", pi.ID))

	return &models.CreditPurchaseIntent{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		Credits:         credits,
		AmountCents:     amount,
		Currency:        s.Currency,
	}, nil
}

// HandleWebhook grants the purchased credits once per PaymentIntent.
// Other event types are acknowledged and ignored.
func (s *DefaultCreditService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.Gateway.ParseEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	logger := s.logger().With(zap.String("eventId", event.ID), zap.String("type", string(event.Type)))
	if event.Type != eventPaymentSucceeded {
		logger.Debug("ignoring stripe event")
		return nil
	}
	if event.Data == nil {
		return services.NewValidationError("data", "event has no payload")
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return services.NewValidationError("data", "malformed payment intent")
	}
	userID := pi.Metadata[metaUserID]
	credits, err := strconv.Atoi(pi.Metadata[metaCredits])
	if userID == "" || err != nil || credits <= 0 {
		return services.NewValidationError("metadata", "payment intent is missing userId or credits")
	}
	if want := int64(credits) * s.PriceCents; pi.Amount != want {
		logger.Error("payment amount mismatch", zap.Int64("amount", pi.Amount), zap.Int64("expected", want))
		return services.NewValidationError("amount", "does not match the purchased credits")
	}

	err = s.Users.GrantCredits(ctx, userID, credits, models.CreditPurchase, pi.ID)
	if errors.Is(err, repository.ErrDuplicateReference) {
		logger.Info("duplicate payment event ignored", zap.String("paymentIntent", pi.ID))
		return nil
	}
	if err != nil {
		return services.FromRepo(err)
	}
	logger.Info("credits granted", zap.String("userId", userID), zap.Int("credits", credits))
	return nil
}
