package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medibook/config"
	"medibook/models"
	"medibook/services/notification"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection shared by the client, inspector and worker.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker runs the async worker in background. The returned server
// must be shut down by the caller.
func InitReminderWorker(notifSvc notification.NotificationService) *asynq.Server {
	logger := utils.GetLogger()
	concurrency := config.AppConfig.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				tasks.ReminderQueue: 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, HandleReminderTask(notifSvc, logger))

	go func() {
		logger.Info("starting reminder worker", zap.Int("concurrency", concurrency))
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("failed to start reminder worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("reminder worker disabled after max retry attempts")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleReminderTask sends the reminder push. Recipients without a device
// token are skipped without retry.
func HandleReminderTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}

		logger.Info("sending reminder",
			zap.String("appointmentId", p.AppointmentID),
			zap.String("userId", p.UserID),
		)

		data := map[string]string{
			"type":          "reminder",
			"appointmentId": p.AppointmentID,
			"fireAt":        p.FireAt.Format(time.RFC3339),
		}
		err := notifSvc.SendPushNotification(ctx, p.UserID, p.Title, p.Body, data)
		if errors.Is(err, notification.ErrNoDeviceToken) {
			logger.Warn("reminder recipient has no device", zap.String("userId", p.UserID))
			return nil
		}
		if err != nil {
			logger.Error("failed to send reminder", zap.Error(err))
		}
		return err
	}
}
