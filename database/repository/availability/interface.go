package availabilityRepo

import "medibook/models"

// AvailabilityRepository stores each doctor's daily booking window.
type AvailabilityRepository interface {
	// GetByDoctor returns the doctor's window, or nil when none is configured.
	GetByDoctor(doctorID string) (*models.Availability, error)
	// Upsert replaces the doctor's window.
	Upsert(window *models.Availability) (*models.Availability, error)
}
