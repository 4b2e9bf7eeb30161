package doctor

import (
	"context"
	"fmt"

	"medibook/models"
	"medibook/services"

	"go.uber.org/zap"
)

func (s *DefaultDoctorService) ListDoctors(ctx context.Context, specialty string) ([]models.PublicDoctor, error) {
	if specialty != "" {
		canonical, ok := models.CanonicalSpecialty(specialty)
		if !ok {
			return []models.PublicDoctor{}, nil
		}
		specialty = canonical
	}
	doctors, err := s.Users.ListDoctors(specialty, models.VerificationVerified)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicDoctor, 0, len(doctors))
	for i := range doctors {
		out = append(out, doctors[i].Public())
	}
	return out, nil
}

// GetDoctor returns a verified doctor's public profile.
func (s *DefaultDoctorService) GetDoctor(ctx context.Context, doctorID string) (*models.PublicDoctor, error) {
	u, err := s.Users.GetByID(doctorID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	if !u.IsVerifiedDoctor() {
		return nil, fmt.Errorf("%w: doctor %s", services.ErrNotFound, doctorID)
	}
	p := u.Public()
	return &p, nil
}

func (s *DefaultDoctorService) PendingDoctors(ctx context.Context) ([]models.User, error) {
	return s.Users.ListDoctors("", models.VerificationPending)
}

func (s *DefaultDoctorService) SetVerification(ctx context.Context, doctorID string, status models.VerificationStatus) (*models.User, error) {
	if status != models.VerificationVerified && status != models.VerificationRejected {
		return nil, services.NewValidationError("status", "must be VERIFIED or REJECTED")
	}
	u, err := s.Users.SetVerification(doctorID, status)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	logger := s.logger().With(zap.String("doctorId", doctorID), zap.String("status", string(status)))
	logger.Info("doctor verification updated")

	if s.Notifier != nil {
		body := "Your profile is verified. Set your availability to start receiving bookings."
		if status == models.VerificationRejected {
			body = "Your verification request was declined. Contact support for details."
		}
		data := map[string]string{"type": "verification", "status": string(status)}
		if err := s.Notifier.SendPushNotification(ctx, doctorID, "Verification update", body, data); err != nil {
			logger.Warn("failed to notify doctor", zap.Error(err))
		}
	}
	return u, nil
}
