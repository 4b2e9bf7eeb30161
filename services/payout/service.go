package payout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/database/repository"
	payoutRepo "medibook/database/repository/payout"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services"
	"medibook/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PayoutService interface {
	Request(ctx context.Context, doctorID, paypalEmail string) (*models.Payout, error)
	ForDoctor(ctx context.Context, doctorID string) ([]models.Payout, error)
	Pending(ctx context.Context) ([]models.Payout, error)
	Approve(ctx context.Context, adminID, payoutID string) (*models.Payout, error)
}

// Rates are whole currency units per credit.
type Rates struct {
	CreditValue          int
	PlatformFeePerCredit int
}

// Amounts returns the gross amount, platform fee and net amount for credits.
func (r Rates) Amounts(credits int) (amount, fee, net int) {
	amount = credits * r.CreditValue
	fee = credits * r.PlatformFeePerCredit
	return amount, fee, amount - fee
}

type DefaultPayoutService struct {
	Users    userRepo.UserRepository
	Payouts  payoutRepo.PayoutRepository
	Notifier notification.NotificationService
	Rates    Rates
	Now      func() time.Time
	Logger   *zap.Logger
}

func (s *DefaultPayoutService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultPayoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Request records a payout of the doctor's whole balance.
func (s *DefaultPayoutService) Request(ctx context.Context, doctorID, paypalEmail string) (*models.Payout, error) {
	doctor, err := s.Users.GetByID(doctorID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	if !doctor.IsVerifiedDoctor() {
		return nil, fmt.Errorf("%w: only verified doctors can request payouts", services.ErrForbidden)
	}
	if doctor.Credits <= 0 {
		return nil, fmt.Errorf("%w: no credits available for payout", services.ErrInsufficientCredits)
	}

	existing, err := s.Payouts.ListByDoctor(doctorID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.Status == models.PayoutProcessing {
			return nil, fmt.Errorf("%w: a payout is already being processed", services.ErrConflict)
		}
	}

	amount, fee, net := s.Rates.Amounts(doctor.Credits)
	p := &models.Payout{
		ID:          uuid.New().String(),
		DoctorID:    doctorID,
		Credits:     doctor.Credits,
		Amount:      amount,
		PlatformFee: fee,
		NetAmount:   net,
		PaypalEmail: paypalEmail,
		Status:      models.PayoutProcessing,
		CreatedAt:   s.now(),
	}
	if err := s.Payouts.Create(p); err != nil {
		return nil, services.FromRepo(err)
	}
	s.logger().Info("payout requested",
		zap.String("doctorId", doctorID), zap.String("payoutId", p.ID), zap.Int("credits", p.Credits))
	return p, nil
}

func (s *DefaultPayoutService) ForDoctor(ctx context.Context, doctorID string) ([]models.Payout, error) {
	return s.Payouts.ListByDoctor(doctorID)
}

func (s *DefaultPayoutService) Pending(ctx context.Context) ([]models.Payout, error) {
	return s.Payouts.ListByStatus(models.PayoutProcessing)
}

// Approve settles the payout in the ledger and notifies the doctor.
func (s *DefaultPayoutService) Approve(ctx context.Context, adminID, payoutID string) (*models.Payout, error) {
	p, err := s.Payouts.Approve(ctx, payoutID, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			if _, getErr := s.Payouts.GetByID(payoutID); errors.Is(getErr, repository.ErrNotFound) {
				return nil, services.FromRepo(getErr)
			}
		}
		return nil, services.FromRepo(err)
	}
	logger := s.logger().With(zap.String("payoutId", p.ID), zap.String("doctorId", p.DoctorID))
	logger.Info("payout approved", zap.String("adminId", adminID))

	if s.Notifier != nil {
		body := fmt.Sprintf("Your payout of $%d (%d credits) was processed.", p.NetAmount, p.Credits)
		data := map[string]string{"type": "payout_processed", "payoutId": p.ID}
		if err := s.Notifier.SendPushNotification(ctx, p.DoctorID, "Payout processed", body, data); err != nil {
			logger.Warn("failed to notify doctor", zap.Error(err))
		}
	}
	return p, nil
}
