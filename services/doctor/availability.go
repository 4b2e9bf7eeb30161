package doctor

import (
	"context"
	"fmt"
	"time"

	"medibook/models"
	"medibook/services"
)

const minutesPerDay = 24 * 60

// ParseClock converts "15:04" into minutes from midnight. "24:00" is accepted
// as the end of the day.
func ParseClock(value string) (int, error) {
	if value == "24:00" {
		return minutesPerDay, nil
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (s *DefaultDoctorService) SetAvailability(ctx context.Context, doctorID string, startMinute, endMinute int, timeZone string) (*models.Availability, error) {
	doctor, err := s.Users.GetByID(doctorID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	if doctor.Role != models.RoleDoctor {
		return nil, fmt.Errorf("%w: only doctors have availability", services.ErrForbidden)
	}
	if startMinute < 0 || endMinute > minutesPerDay {
		return nil, services.NewValidationError("window", "times must lie within the day")
	}
	if startMinute >= endMinute {
		return nil, services.NewValidationError("window", "start time must be before end time")
	}
	if timeZone != "" {
		if _, err := time.LoadLocation(timeZone); err != nil {
			return nil, services.NewValidationError("timeZone", fmt.Sprintf("unknown time zone %q", timeZone))
		}
	}

	return s.Windows.Upsert(&models.Availability{
		DoctorID:    doctorID,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		TimeZone:    timeZone,
		Status:      models.AvailabilityAvailable,
	})
}

func (s *DefaultDoctorService) GetAvailability(ctx context.Context, doctorID string) (*models.Availability, error) {
	window, err := s.Windows.GetByDoctor(doctorID)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, fmt.Errorf("%w: no availability configured", services.ErrNotFound)
	}
	return window, nil
}
