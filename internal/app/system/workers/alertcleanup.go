// internal/app/system/workers/alertcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ResolvedPurger deletes resolved alerts older than the retention window.
// Satisfied by the alert history store.
type ResolvedPurger interface {
	PurgeResolved(ctx context.Context, olderThan time.Duration) (int64, error)
}

// AlertCleanup is a background worker that purges old resolved alerts so the
// history collection does not grow without bound.
type AlertCleanup struct {
	alerts    ResolvedPurger
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewAlertCleanup creates a new alert cleanup worker.
//
// Parameters:
//   - alerts: the alert history store
//   - logger: zap logger for logging
//   - interval: how often to run cleanup (e.g., 1 hour)
//   - retention: how long resolved alerts are kept (e.g., 30 days)
func NewAlertCleanup(alerts ResolvedPurger, logger *zap.Logger, interval, retention time.Duration) *AlertCleanup {
	return &AlertCleanup{
		alerts:    alerts,
		log:       logger,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *AlertCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("alert cleanup worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *AlertCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("alert cleanup worker stopped")
}

func (w *AlertCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *AlertCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.alerts.PurgeResolved(ctx, w.retention)
	if err != nil {
		w.log.Error("failed to purge resolved alerts", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("purged resolved alerts", zap.Int64("count", count))
	}
}
