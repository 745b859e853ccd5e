package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"solosolver-be/internal/config"
	"solosolver-be/internal/entity"
	"solosolver-be/pkg/events"
	pktNats "solosolver-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	watchDurable string
	watchSubject string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream COMPLAINT_ANALYZED events from NATS",
	Long: `Print every analyzed complaint as it is recorded. Requires EVENT_BUS=nats
on the server side.

Examples:
  complaintctl watch
  complaintctl watch --durable ops-dashboard`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDurable, "durable", "", "durable consumer name (default: new messages only)")
	watchCmd.Flags().StringVar(&watchSubject, "subject", "", "subject to follow (default: COMPLAINT_ANALYZED_TOPIC)")

	rootCmd.AddCommand(watchCmd)
}

func statusColor(s entity.InteractionStatus) *color.Color {
	switch s {
	case entity.InteractionStatusSuccess:
		return okColor
	case entity.InteractionStatusFallback:
		return warnColor
	default:
		return errColor
	}
}

func formatEvent(e events.Event) string {
	p := e.Payload()
	return fmt.Sprintf("%v user=%v category=%v decision=%v sentiment=%v aggression=%v source=%v",
		p["occurred_at"], p["user_id"], p["complaint_category"], p["decision"],
		p["sentiment"], p["aggression"], p["classification_source"])
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	subject := watchSubject
	if subject == "" {
		subject = cfg.Events.AnalyzedTopic
	}

	sub, err := pktNats.NewSubscriber(cfg.Events.NatsURL)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	cancel, err := sub.Subscribe(ctx, subject, watchDurable, func(_ context.Context, e events.Event) error {
		status, _ := e.Payload()["status"].(string)
		statusColor(entity.InteractionStatus(status)).Fprintf(out, "%-8s ", status)
		fmt.Fprintln(out, formatEvent(e))
		return nil
	})
	if err != nil {
		return err
	}
	defer cancel()

	labelColor.Fprintf(out, "watching %s on %s (ctrl-c to stop)\n", subject, cfg.Events.NatsURL)
	<-ctx.Done()
	// let in-flight handlers print
	time.Sleep(100 * time.Millisecond)
	return nil
}
