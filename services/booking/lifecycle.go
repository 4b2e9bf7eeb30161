package booking

import (
	"context"
	"fmt"

	"medibook/models"
	"medibook/services"

	"go.uber.org/zap"
)

// loadScheduled fetches an appointment that is still SCHEDULED.
func (s *DefaultBookingService) loadScheduled(appointmentID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	if appt.Status != models.AppointmentScheduled {
		return nil, fmt.Errorf("%w: appointment is %s", services.ErrConflict, appt.Status)
	}
	return appt, nil
}

// Cancel lets either participant cancel; the credits go back to the patient.
func (s *DefaultBookingService) Cancel(ctx context.Context, actorID, appointmentID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	if !appt.IsParticipant(actorID) {
		return nil, fmt.Errorf("%w: not a participant of this appointment", services.ErrForbidden)
	}
	if appt.Status != models.AppointmentScheduled {
		return nil, fmt.Errorf("%w: appointment is %s", services.ErrConflict, appt.Status)
	}

	cancelled, err := s.Appointments.Cancel(ctx, appointmentID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	logger := s.logger().With(zap.String("appointmentId", appointmentID), zap.String("actorId", actorID))
	logger.Info("appointment cancelled")

	if s.Reminders != nil {
		if err := s.Reminders.CancelAppointmentReminders(*cancelled); err != nil {
			logger.Warn("failed to delete reminders", zap.Error(err))
		}
	}
	if s.Notifier != nil {
		recipient := cancelled.DoctorID
		if actorID == cancelled.DoctorID {
			recipient = cancelled.PatientID
		}
		body := fmt.Sprintf("The consultation on %s was cancelled.", cancelled.StartTime.Format("Jan 2, 3:04 PM MST"))
		data := map[string]string{"type": "appointment_cancelled", "appointmentId": cancelled.ID}
		if err := s.Notifier.SendPushNotification(ctx, recipient, "Appointment cancelled", body, data); err != nil {
			logger.Warn("failed to notify participant", zap.Error(err))
		}
	}
	return cancelled, nil
}

// AddNotes stores the doctor's consultation notes.
func (s *DefaultBookingService) AddNotes(ctx context.Context, doctorID, appointmentID, notes string) (*models.Appointment, error) {
	appt, err := s.loadScheduled(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: only the appointment's doctor can add notes", services.ErrForbidden)
	}
	updated, err := s.Appointments.UpdateNotes(appointmentID, notes)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	return updated, nil
}

// Complete marks a finished appointment COMPLETED.
func (s *DefaultBookingService) Complete(ctx context.Context, doctorID, appointmentID string) (*models.Appointment, error) {
	appt, err := s.loadScheduled(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: only the appointment's doctor can complete it", services.ErrForbidden)
	}
	if s.now().Before(appt.EndTime) {
		return nil, fmt.Errorf("%w: %w", services.ErrConflict, ErrNotFinished)
	}
	updated, err := s.Appointments.Complete(appointmentID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	s.logger().Info("appointment completed", zap.String("appointmentId", appointmentID))
	return updated, nil
}
