package doctor

import (
	"context"
	"io"

	availabilityRepo "medibook/database/repository/availability"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/notification"
	"medibook/services/storage"

	"go.uber.org/zap"
)

type DoctorService interface {
	// Onboarding
	OnboardPatient(ctx context.Context, userID string) (*models.User, error)
	OnboardDoctor(ctx context.Context, userID string, profile models.DoctorProfile, credential io.Reader, filename string) (*models.User, error)

	// Availability window
	SetAvailability(ctx context.Context, doctorID string, startMinute, endMinute int, timeZone string) (*models.Availability, error)
	GetAvailability(ctx context.Context, doctorID string) (*models.Availability, error)

	// Directory
	ListDoctors(ctx context.Context, specialty string) ([]models.PublicDoctor, error)
	GetDoctor(ctx context.Context, doctorID string) (*models.PublicDoctor, error)

	// Admin
	PendingDoctors(ctx context.Context) ([]models.User, error)
	SetVerification(ctx context.Context, doctorID string, status models.VerificationStatus) (*models.User, error)
}

type DefaultDoctorService struct {
	Users          userRepo.UserRepository
	Windows        availabilityRepo.AvailabilityRepository
	Storage        storage.StorageService
	Notifier       notification.NotificationService
	InitialCredits int
	Logger         *zap.Logger
}

func (s *DefaultDoctorService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
