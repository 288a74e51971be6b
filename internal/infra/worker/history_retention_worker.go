package worker

import (
	"context"
	"log/slog"
	"time"
)

type HistoryPruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// HistoryRetentionWorker periodically drops buyer-history entries older than
// the retention window so the audit table stays bounded.
type HistoryRetentionWorker struct {
	history      HistoryPruner
	retention    time.Duration
	tickInterval time.Duration
	logger       *slog.Logger
}

func NewHistoryRetentionWorker(history HistoryPruner, logger *slog.Logger) *HistoryRetentionWorker {
	return &HistoryRetentionWorker{
		history:      history,
		retention:    90 * 24 * time.Hour,
		tickInterval: 6 * time.Hour,
		logger:       logger,
	}
}

func (w *HistoryRetentionWorker) Start(ctx context.Context) {
	w.logger.Info("history retention worker started", "retention", w.retention.String())

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("history retention worker stopped")
			return
		case <-ticker.C:
			w.prune(ctx)
		}
	}
}

func (w *HistoryRetentionWorker) prune(ctx context.Context) {
	dropped, err := w.history.Prune(ctx, w.retention)
	if err != nil {
		w.logger.Error("history prune failed", "error", err)
		return
	}
	if dropped > 0 {
		w.logger.Info("pruned old buyer history", "dropped", dropped)
	}
}
