package consumer

import (
	"context"
	"encoding/json"

	"go-salon/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Notifier menerima ringkasan batch payroll yang selesai dibuat.
// Implementasi default hanya menulis audit log; integrasi email/WA tinggal
// mengganti implementasi ini.
type Notifier interface {
	NotifyPayrollGenerated(ctx context.Context, event events.PayrollGenerationCompletedEvent) error
}

func ConsumePayrollGeneration(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_generation")
	log.Info("payroll generation consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll generation consumer stopped")
				return
			}
			log.Error("fetch payroll generation message failed", zap.Error(err))
			continue
		}

		var event events.PayrollGenerationCompletedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll generation event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifier.NotifyPayrollGenerated(ctx, event); err != nil {
			log.Error("notify payroll generation failed",
				zap.String("generation_id", event.GenerationID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll generation message failed", zap.Error(err))
			continue
		}

		log.Info("payroll generation notification handled",
			zap.String("generation_id", event.GenerationID),
			zap.Int("employee_count", event.EmployeeCount),
			zap.Int64("total_amount", event.TotalAmount),
		)
	}
}

// LogNotifier adalah implementasi Notifier berbasis audit log.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) NotifyPayrollGenerated(ctx context.Context, event events.PayrollGenerationCompletedEvent) error {
	n.Logger.Named("audit").Info("payroll batch generated",
		zap.String("generation_id", event.GenerationID),
		zap.Int("month", event.Month),
		zap.Int("year", event.Year),
		zap.Int("employee_count", event.EmployeeCount),
		zap.Int64("total_amount", event.TotalAmount),
		zap.String("generated_by", event.GeneratedBy),
	)
	return nil
}
