package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotificationRelayJob periodically drains the notification outbox.
// Runs every second so status-change notifications reach the messaging
// topic shortly after the transaction that staged them commits.
type NotificationRelayJob struct {
	handler commands.PublishNotificationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationRelayJob creates a job for relaying staged notifications.
func NewNotificationRelayJob(
	handler commands.PublishNotificationsCommandHandler,
	logger *slog.Logger,
) *NotificationRelayJob {
	return &NotificationRelayJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "notification_relay_job"),
	}
}

// Start begins the relay job to run every second.
func (j *NotificationRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewPublishNotificationsCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Notification relay command creation failed", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Notification relay job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *NotificationRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}
