package email

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"taskflow/internal/config"
	cache_utils "taskflow/internal/util/cache"
	"taskflow/internal/util/metrics"
)

const (
	outboxPollInterval = 2 * time.Second
	outboxBatchSize    = 50
	sendTimeout        = 30 * time.Second
)

// EmailWorkerService drains the outbox into a Sender. Like every queue
// consumer here it should run on one instance only.
type EmailWorkerService struct {
	queueService *cache_utils.ValkeyQueueService
	queueKey     string
	sender       Sender
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (s *EmailWorkerService) SetSender(sender Sender) {
	s.sender = sender
}

func (s *EmailWorkerService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go s.runOutboxWorker()

	s.logger.Info("Email outbox worker started",
		slog.Duration("interval", outboxPollInterval),
		slog.Int("batchSize", outboxBatchSize))
}

// StopWorkers flushes what is already queued before returning.
func (s *EmailWorkerService) StopWorkers() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	s.wg.Wait()
}

// ExecuteBackgroundTasksForTest drains the outbox once in a blocking way.
func (s *EmailWorkerService) ExecuteBackgroundTasksForTest() int {
	return s.processOutbox(context.Background())
}

func (s *EmailWorkerService) runOutboxWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(outboxPollInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Email outbox worker shutting down due to shutdown signal")
			s.processOutbox(context.Background())
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Email outbox worker shutting down")
			s.processOutbox(context.Background())
			return

		case <-ticker.C:
			s.processOutbox(s.ctx)
		}
	}
}

func (s *EmailWorkerService) processOutbox(ctx context.Context) int {
	sent := 0

	for {
		items, err := s.queueService.DequeueBatch(s.queueKey, outboxBatchSize)
		if err != nil {
			s.logger.Error("Failed to dequeue emails from Valkey", slog.String("error", err.Error()))
			return sent
		}

		for _, data := range items {
			var message EmailMessage
			if err := json.Unmarshal(data, &message); err != nil {
				s.logger.Error("Failed to unmarshal email from outbox", slog.String("error", err.Error()))
				continue
			}

			if s.send(ctx, &message) {
				sent++
			}
		}

		if len(items) < outboxBatchSize {
			return sent
		}
	}
}

func (s *EmailWorkerService) send(ctx context.Context, message *EmailMessage) bool {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	err := s.sender.Send(sendCtx, message)
	metrics.RecordEmail("sent", err)

	if err != nil {
		s.logger.Error("Failed to send email",
			slog.String("id", message.ID.String()),
			slog.String("kind", string(message.Kind)),
			slog.String("to", message.To),
			slog.String("error", err.Error()))
		return false
	}

	return true
}
