package workers

import (
	"context"
	"time"

	"munka_backend/internal/config"
	"munka_backend/internal/logger"
	"munka_backend/internal/repositories"
)

// CompletionWorker expires stale completion codes in the background so an
// abandoned code cannot be verified days later.
type CompletionWorker struct {
	codeRepo repositories.CompletionCodeRepository
}

func NewCompletionWorker(codeRepo repositories.CompletionCodeRepository) *CompletionWorker {
	return &CompletionWorker{codeRepo: codeRepo}
}

func (w *CompletionWorker) Start(ctx context.Context) {
	go w.sweepExpiredCodes(ctx)
}

func (w *CompletionWorker) sweepExpiredCodes(ctx context.Context) {
	cfg := config.GetConfig()
	interval := time.Duration(cfg.Completion.SweepIntervalMinutes) * time.Minute
	ttl := time.Duration(cfg.Completion.CodeTTLHours) * time.Hour

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("completion worker stopped")
			return
		case <-ticker.C:
			deleted, err := w.codeRepo.DeleteOlderThan(time.Now().Add(-ttl))
			if err != nil {
				logger.Error("failed to sweep expired completion codes", "error", err)
			} else if deleted > 0 {
				logger.Info("swept expired completion codes", "deleted", deleted)
			}
		}
	}
}
