package appointmentRepo

import (
	"context"
	"time"

	"medibook/models"
)

type AppointmentRepository interface {
	GetByID(id string) (*models.Appointment, error)
	// ListOverlapping returns SCHEDULED appointments of a doctor that overlap [from, to).
	ListOverlapping(doctorID string, from, to time.Time) ([]models.Appointment, error)
	// ListScheduled returns a patient's or doctor's SCHEDULED appointments sorted by start.
	ListScheduled(userID string, asDoctor bool) ([]models.Appointment, error)
	// Book inserts the appointment and moves appt.Credits from the patient to
	// the doctor in one transaction.
	Book(ctx context.Context, appt *models.Appointment) error
	// Cancel marks a SCHEDULED appointment cancelled and reverses its credit
	// transfer in one transaction.
	Cancel(ctx context.Context, id string) (*models.Appointment, error)
	UpdateNotes(id, notes string) (*models.Appointment, error)
	Complete(id string) (*models.Appointment, error)
}
