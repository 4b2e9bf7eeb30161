package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medibook/database/repository"
	"medibook/models"
	"medibook/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book reserves a slot for the patient and moves the appointment cost from the
// patient's balance to the doctor's. Pushes and reminders are best effort.
func (s *DefaultBookingService) Book(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	logger := s.logger().With(zap.String("patientId", patientID), zap.String("doctorId", req.DoctorID))

	patient, err := s.Users.GetByID(patientID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	if patient.Role != models.RolePatient {
		return nil, fmt.Errorf("%w: only patients can book appointments", services.ErrForbidden)
	}
	if patient.Credits < s.CreditCost {
		return nil, fmt.Errorf("%w: %d required, %d available", services.ErrInsufficientCredits, s.CreditCost, patient.Credits)
	}

	start, end := req.StartTime.UTC(), req.EndTime.UTC()
	if err := s.Availability.CheckSlot(ctx, req.DoctorID, start, end); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:                 uuid.New().String(),
		PatientID:          patientID,
		DoctorID:           req.DoctorID,
		StartTime:          start,
		EndTime:            end,
		Status:             models.AppointmentScheduled,
		PatientDescription: strings.TrimSpace(req.Description),
		Credits:            s.CreditCost,
	}
	if err := s.Appointments.Book(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			logger.Info("slot taken during booking", zap.Time("start", start))
			return nil, ErrSlotTaken
		}
		return nil, services.FromRepo(err)
	}
	logger.Info("appointment booked", zap.String("appointmentId", appt.ID), zap.Time("start", start))

	s.afterBooking(ctx, appt, patient)
	return appt, nil
}

func (s *DefaultBookingService) afterBooking(ctx context.Context, appt *models.Appointment, patient *models.User) {
	logger := s.logger().With(zap.String("appointmentId", appt.ID))

	doctorName := ""
	if doctor, err := s.Users.GetByID(appt.DoctorID); err == nil {
		doctorName = doctor.Name
	}

	if s.Notifier != nil {
		body := fmt.Sprintf("%s booked %s.", displayName(patient.Name, "A patient"), appt.StartTime.Format("Jan 2, 3:04 PM MST"))
		data := map[string]string{"type": "appointment_booked", "appointmentId": appt.ID}
		if err := s.Notifier.SendPushNotification(ctx, appt.DoctorID, "New appointment", body, data); err != nil {
			logger.Warn("failed to notify doctor", zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleAppointmentReminders(ctx, *appt, displayName(patient.Name, "your patient"), doctorName); err != nil {
			logger.Warn("failed to schedule reminders", zap.Error(err))
		}
	}
}

func displayName(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

// ListForUser returns the caller's upcoming appointments sorted by start.
func (s *DefaultBookingService) ListForUser(ctx context.Context, user *models.User) ([]models.Appointment, error) {
	switch user.Role {
	case models.RolePatient:
		return s.Appointments.ListScheduled(user.ID, false)
	case models.RoleDoctor:
		return s.Appointments.ListScheduled(user.ID, true)
	}
	return []models.Appointment{}, nil
}
