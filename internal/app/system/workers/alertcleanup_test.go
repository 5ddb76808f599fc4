package workers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/riskwatch/internal/app/system/workers"
	"go.uber.org/zap"
)

// recordingPurger counts PurgeResolved calls and signals the first one.
type recordingPurger struct {
	mu        sync.Mutex
	calls     int
	olderThan time.Duration
	first     chan struct{}
	once      sync.Once
}

func newRecordingPurger() *recordingPurger {
	return &recordingPurger{first: make(chan struct{})}
}

func (p *recordingPurger) PurgeResolved(ctx context.Context, olderThan time.Duration) (int64, error) {
	p.mu.Lock()
	p.calls++
	p.olderThan = olderThan
	p.mu.Unlock()
	p.once.Do(func() { close(p.first) })
	return 1, nil
}

func (p *recordingPurger) snapshot() (int, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls, p.olderThan
}

func TestAlertCleanup_PurgesOnInterval(t *testing.T) {
	purger := newRecordingPurger()
	w := workers.NewAlertCleanup(purger, zap.NewNop(), 10*time.Millisecond, 24*time.Hour)

	w.Start()
	defer w.Stop()

	select {
	case <-purger.first:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup never ran")
	}

	calls, olderThan := purger.snapshot()
	if calls < 1 {
		t.Fatalf("calls: got %d, want >= 1", calls)
	}
	if olderThan != 24*time.Hour {
		t.Errorf("retention passed to purge: got %s, want 24h", olderThan)
	}
}

func TestAlertCleanup_StopHaltsWorker(t *testing.T) {
	purger := newRecordingPurger()
	w := workers.NewAlertCleanup(purger, zap.NewNop(), 10*time.Millisecond, time.Hour)

	w.Start()
	select {
	case <-purger.first:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup never ran")
	}
	w.Stop()

	calls, _ := purger.snapshot()
	time.Sleep(50 * time.Millisecond)
	after, _ := purger.snapshot()
	if after != calls {
		t.Errorf("purge ran after Stop: %d calls before, %d after", calls, after)
	}
}
