package service

import (
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/metrics"
	"github.com/andrey2025-maker/SelenaZoo/internal/transport"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BroadcastService fans a payload message out to a frozen recipient
// snapshot, accounting every delivery.
type BroadcastService struct {
	messenger transport.Messenger
	delay     time.Duration
	logger    *zap.Logger
}

// NewBroadcastService creates a new broadcast service. delay is the
// pause between consecutive sends.
func NewBroadcastService(messenger transport.Messenger, delay time.Duration, logger *zap.Logger) *BroadcastService {
	return &BroadcastService{
		messenger: messenger,
		delay:     delay,
		logger:    logger,
	}
}

// Run copies the payload to every recipient in order. Sends are
// strictly sequential to respect the transport rate limit; individual
// failures never abort the pass and nothing is retried.
func (s *BroadcastService) Run(recipients []domain.User, payload domain.MessageRef) *domain.Report {
	report := &domain.Report{
		RunID: uuid.NewString(),
		Total: len(recipients),
	}

	s.logger.Info("Broadcast started",
		zap.String("run_id", report.RunID),
		zap.Int("recipients", report.Total),
	)

	for i, user := range recipients {
		err := s.messenger.Copy(user.ID, payload)
		kind := transport.Classify(err)

		if kind == transport.KindOK {
			report.AddSuccess()
			metrics.BroadcastDeliveries.WithLabelValues("success").Inc()
		} else {
			report.AddFailure(domain.DeliveryFailure{
				UserID:   user.ID,
				Username: user.Username,
				Kind:     kind.FailKind(),
				Detail:   truncateDetail(err.Error()),
			})
			metrics.BroadcastDeliveries.WithLabelValues(string(kind.FailKind())).Inc()
			s.logger.Warn("Broadcast delivery failed",
				zap.String("run_id", report.RunID),
				zap.Int64("user_id", user.ID),
				zap.String("kind", string(kind.FailKind())),
				zap.Error(err),
			)
		}

		if i < len(recipients)-1 && s.delay > 0 {
			time.Sleep(s.delay)
		}
	}

	metrics.BroadcastRuns.Inc()
	s.logger.Info("Broadcast finished",
		zap.String("run_id", report.RunID),
		zap.Int("success", report.Success),
		zap.Int("failed", report.Failed),
	)
	return report
}

// Dispatch runs the fan-out on its own goroutine so the caller's
// update loop keeps draining other actors' events, and hands the
// finished report to done. The recipient snapshot is frozen by the
// caller before dispatch.
func (s *BroadcastService) Dispatch(recipients []domain.User, payload domain.MessageRef, done func(*domain.Report)) {
	go func() {
		done(s.Run(recipients, payload))
	}()
}

// truncateDetail bounds raw error text carried into the report.
func truncateDetail(msg string) string {
	const limit = 30
	runes := []rune(msg)
	if len(runes) <= limit {
		return msg
	}
	return string(runes[:limit]) + "..."
}
