package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/database/repository"
	"medibook/models"

	"go.uber.org/zap"
)

// The repository methods the service depends on.
type (
	UserReader interface {
		GetByID(id string) (*models.User, error)
	}
	WindowReader interface {
		GetByDoctor(doctorID string) (*models.Availability, error)
	}
	AppointmentReader interface {
		ListOverlapping(doctorID string, from, to time.Time) ([]models.Appointment, error)
	}
)

type AvailabilityService interface {
	// DoctorSlots returns the free slots of a verified doctor for the next days.
	DoctorSlots(ctx context.Context, doctorID string, days int) (*models.DoctorSlotsResponse, error)
	// CheckSlot verifies that [start, end) is a bookable slot of the doctor's
	// window. It does not look at existing appointments.
	CheckSlot(ctx context.Context, doctorID string, start, end time.Time) error
}

type DefaultAvailabilityService struct {
	Users        UserReader
	Windows      WindowReader
	Appointments AppointmentReader
	Calculator   Calculator
	DefaultZone  string
	DefaultDays  int
	Now          func() time.Time
	Logger       *zap.Logger
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAvailabilityService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// Location resolves the window's IANA zone, falling back to the default zone.
func (s *DefaultAvailabilityService) Location(window *models.Availability) (*time.Location, error) {
	name := s.DefaultZone
	if window != nil && window.TimeZone != "" {
		name = window.TimeZone
	}
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, NewConfigurationError(CodeInvalidTimeZone, fmt.Sprintf("unknown time zone %q", name))
	}
	return loc, nil
}

// verifiedDoctor loads the doctor and hides anyone not VERIFIED.
func (s *DefaultAvailabilityService) verifiedDoctor(doctorID string) (*models.User, error) {
	doctor, err := s.Users.GetByID(doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	if !doctor.IsVerifiedDoctor() {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// window loads the doctor's window and the current time in its zone.
func (s *DefaultAvailabilityService) window(doctorID string) (*models.Availability, time.Time, error) {
	window, err := s.Windows.GetByDoctor(doctorID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load availability: %w", err)
	}
	if err := checkWindow(window); err != nil {
		return nil, time.Time{}, err
	}
	loc, err := s.Location(window)
	if err != nil {
		return nil, time.Time{}, err
	}
	return window, s.now().In(loc), nil
}

func (s *DefaultAvailabilityService) DoctorSlots(ctx context.Context, doctorID string, days int) (*models.DoctorSlotsResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.verifiedDoctor(doctorID); err != nil {
		return nil, err
	}
	window, now, err := s.window(doctorID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = s.DefaultDays
	}
	if days <= 0 {
		days = DefaultDayCount
	}

	y, m, d := now.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	to := time.Date(y, m, d+days, 0, 0, 0, 0, now.Location())
	appts, err := s.Appointments.ListOverlapping(doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	booked := make([]models.BookedInterval, 0, len(appts))
	for _, a := range appts {
		booked = append(booked, a.Interval())
	}

	slots, err := s.Calculator.ComputeAvailability(window, booked, now, days)
	if err != nil {
		return nil, err
	}
	s.logger().Debug("computed doctor slots",
		zap.String("doctorId", doctorID),
		zap.Int("days", days),
		zap.Int("booked", len(booked)),
	)
	return &models.DoctorSlotsResponse{
		DoctorID: doctorID,
		TimeZone: now.Location().String(),
		Days:     slots,
	}, nil
}

func (s *DefaultAvailabilityService) CheckSlot(ctx context.Context, doctorID string, start, end time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.verifiedDoctor(doctorID); err != nil {
		return err
	}
	window, now, err := s.window(doctorID)
	if err != nil {
		return err
	}
	return s.Calculator.ValidateSlot(window, start, end, now)
}
