package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mindgraphix/platform/internal/core/events"
	"github.com/mindgraphix/platform/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers such as the notification event consumer.`,
}

var notificationWorkerCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Start the notification event worker",
	Long:  `Consume registration and contact-form events from the event bus`,
	Run: func(cmd *cobra.Command, args []string) {
		startNotificationWorker()
	},
}

func startNotificationWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"), cfg.Observability.Logging.Level)
	lg := logger.L()

	eventBus := events.NewEventBus(lg)

	eventBus.Subscribe(events.EventTypeUserRegistered, func(ctx context.Context, event events.Event) error {
		lg.Info("sending welcome notification",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	eventBus.Subscribe(events.EventTypeContactReceived, func(ctx context.Context, event events.Event) error {
		lg.Info("notifying staff of contact message",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	lg.Info("notification worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	lg.Info("received signal, shutting down notification worker", "signal", sig)
}

func init() {
	workerCmd.AddCommand(notificationWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
