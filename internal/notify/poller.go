// Package notify polls the notification endpoints on a fixed interval.
// The poller is an explicit lifecycle object: whoever mounts a notification
// view owns it and must guarantee Stop on teardown so no orphaned timers
// survive.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/service"
)

// DefaultInterval is the polling cadence.
const DefaultInterval = 30 * time.Second

// DefaultLimit bounds how many notifications each poll fetches.
const DefaultLimit = 20

// Update is one poll result delivered to the handler.
type Update struct {
	Notifications []model.Notification
	UnreadCount   int
}

// Handler receives poll results. It is never called after Stop returns.
type Handler func(Update)

// Poller fetches the notification list and unread count on an interval.
type Poller struct {
	svc      service.NotificationService
	interval time.Duration
	limit    int
	handler  Handler

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// NewPoller creates a poller. A zero interval selects DefaultInterval.
func NewPoller(svc service.NotificationService, interval time.Duration, handler Handler) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		svc:      svc,
		interval: interval,
		limit:    DefaultLimit,
		handler:  handler,
	}
}

// Start begins polling immediately, then on every tick. Starting an
// already-running or stopped poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil || p.stopped {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx)
}

// Stop cancels the timer and waits for the loop to exit. An in-flight fetch
// may still resolve, but its result is discarded; the handler is never
// invoked after Stop returns. Safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.stopped = true
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	notifications, err := p.svc.ListNotifications(ctx, p.limit)
	if err != nil {
		// Ambient reads degrade silently; the next tick tries again.
		slog.Debug("notification poll failed", "error", err)
		return
	}

	unread, err := p.svc.UnreadCount(ctx)
	if err != nil {
		slog.Debug("unread count fetch failed", "error", err)
		return
	}

	// Drop the result if torn down while the fetch was in flight.
	if ctx.Err() != nil {
		return
	}
	if p.handler != nil {
		p.handler(Update{Notifications: notifications, UnreadCount: unread})
	}
}
