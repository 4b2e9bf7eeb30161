package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medibook/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeSendReminder = "reminder:send"
	ReminderQueue    = "default"
)

// ReminderTaskID is unique per appointment and recipient.
func ReminderTaskID(appointmentID, userID string) string {
	return fmt.Sprintf("reminder:%s:%s", appointmentID, userID)
}

func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(payload.FireAt),
		asynq.TaskID(ReminderTaskID(payload.AppointmentID, payload.UserID)),
		asynq.Queue(ReminderQueue),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskDeleter is satisfied by *asynq.Inspector.
type TaskDeleter interface {
	DeleteTask(queue, id string) error
}

// ReminderScheduler plans and withdraws appointment reminders.
type ReminderScheduler interface {
	ScheduleAppointmentReminders(ctx context.Context, appt models.Appointment, patientName, doctorName string) error
	CancelAppointmentReminders(appt models.Appointment) error
}

type AsynqReminderScheduler struct {
	client    Enqueuer
	inspector TaskDeleter
	lead      time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewAsynqReminderScheduler(client Enqueuer, inspector TaskDeleter, lead time.Duration, logger *zap.Logger) *AsynqReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqReminderScheduler{
		client:    client,
		inspector: inspector,
		lead:      lead,
		now:       time.Now,
		logger:    logger,
	}
}

// ScheduleAppointmentReminders enqueues one reminder for each participant at
// start minus the lead time. Reminders whose fire time has passed are skipped.
func (s *AsynqReminderScheduler) ScheduleAppointmentReminders(ctx context.Context, appt models.Appointment, patientName, doctorName string) error {
	fireAt := appt.StartTime.Add(-s.lead)
	if fireAt.Before(s.now()) {
		s.logger.Debug("reminder fire time already passed", zap.String("appointmentId", appt.ID))
		return nil
	}
	when := appt.StartTime.UTC().Format("Jan 2, 3:04 PM MST")

	payloads := []models.ReminderPayload{
		{
			AppointmentID: appt.ID,
			UserID:        appt.PatientID,
			Title:         "Upcoming consultation",
			Body:          fmt.Sprintf("Your consultation with Dr. %s starts %s.", doctorName, when),
			FireAt:        fireAt,
		},
		{
			AppointmentID: appt.ID,
			UserID:        appt.DoctorID,
			Title:         "Upcoming consultation",
			Body:          fmt.Sprintf("Your consultation with %s starts %s.", patientName, when),
			FireAt:        fireAt,
		},
	}

	var errs []error
	for _, p := range payloads {
		task, opts, err := NewReminderTask(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
			if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
				continue
			}
			errs = append(errs, fmt.Errorf("enqueue reminder for %s: %w", p.UserID, err))
		}
	}
	return errors.Join(errs...)
}

// CancelAppointmentReminders removes pending reminders of both participants.
func (s *AsynqReminderScheduler) CancelAppointmentReminders(appt models.Appointment) error {
	var errs []error
	for _, userID := range []string{appt.PatientID, appt.DoctorID} {
		err := s.inspector.DeleteTask(ReminderQueue, ReminderTaskID(appt.ID, userID))
		if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) && !errors.Is(err, asynq.ErrQueueNotFound) {
			errs = append(errs, fmt.Errorf("delete reminder for %s: %w", userID, err))
		}
	}
	return errors.Join(errs...)
}
