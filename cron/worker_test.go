package cron

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"medibook/models"
	"medibook/services/notification"
	"medibook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	userID string
	title  string
	data   map[string]string
	err    error
}

func (f *fakeNotifier) SendPushNotification(_ context.Context, userID, title, _ string, data map[string]string) error {
	f.userID, f.title, f.data = userID, title, data
	return f.err
}

func reminderTask(t *testing.T) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewReminderTask(models.ReminderPayload{
		AppointmentID: "appt-1",
		UserID:        "patient-1",
		Title:         "Upcoming consultation",
		Body:          "soon",
		FireAt:        time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return task
}

func TestHandleReminderTask(t *testing.T) {
	n := &fakeNotifier{}
	h := HandleReminderTask(n, zap.NewNop())

	if err := h(context.Background(), reminderTask(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.userID != "patient-1" || n.title != "Upcoming consultation" {
		t.Errorf("unexpected push to %q titled %q", n.userID, n.title)
	}
	if n.data["appointmentId"] != "appt-1" || n.data["fireAt"] != "2025-03-10T08:00:00Z" {
		t.Errorf("unexpected data %v", n.data)
	}
}

func TestHandleReminderTaskErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "no device token", err: fmt.Errorf("wrapped: %w", notification.ErrNoDeviceToken), wantErr: false},
		{name: "fcm failure", err: errors.New("fcm unavailable"), wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := HandleReminderTask(&fakeNotifier{err: c.err}, zap.NewNop())(context.Background(), reminderTask(t))
			if (err != nil) != c.wantErr {
				t.Errorf("expected error=%v, got %v", c.wantErr, err)
			}
		})
	}

	bad := asynq.NewTask(tasks.TypeSendReminder, []byte("{"))
	err := HandleReminderTask(&fakeNotifier{}, zap.NewNop())(context.Background(), bad)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected SkipRetry for a bad payload, got %v", err)
	}
}
