package booking

import (
	"context"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/availability"
	"medibook/services/notification"
	"medibook/services/tasks"

	"go.uber.org/zap"
)

// BookingService manages the appointment lifecycle.
type BookingService interface {
	Book(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, actorID, appointmentID string) (*models.Appointment, error)
	AddNotes(ctx context.Context, doctorID, appointmentID, notes string) (*models.Appointment, error)
	Complete(ctx context.Context, doctorID, appointmentID string) (*models.Appointment, error)
	ListForUser(ctx context.Context, user *models.User) ([]models.Appointment, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
	Availability availability.AvailabilityService
	Notifier     notification.NotificationService
	Reminders    tasks.ReminderScheduler
	CreditCost   int
	Now          func() time.Time
	Logger       *zap.Logger
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
