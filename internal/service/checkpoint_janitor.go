package service

import (
	"context"
	"time"

	"ai-chathub-be/internal/pkg/logger"
	"ai-chathub-be/internal/repository/unitofwork"
)

// CheckpointJanitor expires abandoned stream checkpoints. An upstream crash
// between publish and cleanup can leave a resumable-but-dead row; age-based
// expiry makes those self-heal.
type CheckpointJanitor struct {
	uowFactory unitofwork.RepositoryFactory
	ttl        time.Duration
	interval   time.Duration
	logger     logger.ILogger
}

func NewCheckpointJanitor(uowFactory unitofwork.RepositoryFactory, ttl time.Duration, log logger.ILogger) *CheckpointJanitor {
	return &CheckpointJanitor{
		uowFactory: uowFactory,
		ttl:        ttl,
		interval:   ttl / 6,
		logger:     log,
	}
}

// Run blocks until ctx is done. Call it on its own goroutine.
func (j *CheckpointJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *CheckpointJanitor) sweep(ctx context.Context) {
	uow := j.uowFactory.NewUnitOfWork(ctx)
	cutoff := time.Now().Add(-j.ttl)
	removed, err := uow.StreamCheckpointRepository().DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Janitor", "Checkpoint sweep failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if removed > 0 {
		j.logger.Info("Janitor", "Expired stale stream checkpoints", map[string]interface{}{"count": removed})
	}
}
