package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhatminh/vifin/internal/api"
	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/service"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPollerDeliversUpdates(t *testing.T) {
	svc := &service.MockNotificationService{
		ListNotificationsFn: func(context.Context, int) ([]model.Notification, error) {
			return []model.Notification{{ID: 1, Title: "Chi tiêu lớn"}}, nil
		},
		UnreadCountFn: func(context.Context) (int, error) {
			return 3, nil
		},
	}

	var mu sync.Mutex
	var updates []Update
	p := NewPoller(svc, 10*time.Millisecond, func(u Update) {
		mu.Lock()
		updates = append(updates, u)
		mu.Unlock()
	})

	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(updates) >= 2
	})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, updates[0].UnreadCount)
	require.Len(t, updates[0].Notifications, 1)
	assert.Equal(t, "Chi tiêu lớn", updates[0].Notifications[0].Title)
}

func TestPollerStopsCleanly(t *testing.T) {
	var mu sync.Mutex
	var calls int
	svc := &service.MockNotificationService{
		ListNotificationsFn: func(context.Context, int) ([]model.Notification, error) {
			return nil, nil
		},
	}

	p := NewPoller(svc, 5*time.Millisecond, func(Update) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	p.Start(context.Background())
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 1
	})

	p.Stop()
	mu.Lock()
	after := calls
	mu.Unlock()

	// No handler invocation may land after Stop returns.
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, after, calls)
	mu.Unlock()
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := NewPoller(&service.MockNotificationService{}, 5*time.Millisecond, nil)
	p.Start(context.Background())
	p.Stop()
	assert.NotPanics(t, func() { p.Stop() })
}

func TestPollerRestartAfterStopIsNoop(t *testing.T) {
	svc := &service.MockNotificationService{}
	p := NewPoller(svc, 5*time.Millisecond, nil)

	p.Start(context.Background())
	p.Stop()
	callsAtStop := svc.ListCalls

	p.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, callsAtStop, svc.ListCalls)
}

func TestPollerSkipsFailedPolls(t *testing.T) {
	var mu sync.Mutex
	var attempt int
	svc := &service.MockNotificationService{
		ListNotificationsFn: func(context.Context, int) ([]model.Notification, error) {
			mu.Lock()
			defer mu.Unlock()
			attempt++
			if attempt == 1 {
				return nil, &api.TransportError{Err: context.DeadlineExceeded}
			}
			return []model.Notification{{ID: attempt}}, nil
		},
	}

	var updates int
	p := NewPoller(svc, 5*time.Millisecond, func(Update) {
		mu.Lock()
		updates++
		mu.Unlock()
	})

	p.Start(context.Background())
	defer p.Stop()

	// The failed first poll produces no update; later ticks recover.
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return updates >= 1
	})
	mu.Lock()
	assert.GreaterOrEqual(t, attempt, 2)
	mu.Unlock()
}

func TestPollerZeroIntervalUsesDefault(t *testing.T) {
	p := NewPoller(&service.MockNotificationService{}, 0, nil)
	assert.Equal(t, DefaultInterval, p.interval)
}
