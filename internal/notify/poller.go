package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/Amansahu83/clothstore-web/internal/backend"
	"github.com/Amansahu83/clothstore-web/internal/kvstore"
	"golang.org/x/sync/singleflight"
)

// FeedCapacity bounds the in-memory notification feed.
const FeedCapacity = 10

// Notification is one surfaced "new order" entry, newest first in the feed.
type Notification struct {
	OrderID    int64     `json:"order_id"`
	Message    string    `json:"message"`
	Amount     float64   `json:"amount"`
	ObservedAt time.Time `json:"observed_at"`
}

// OrdersFetcher is the slice of the backend client the poller needs.
type OrdersFetcher interface {
	AdminOrders(ctx context.Context) ([]backend.Order, error)
}

// Sessions gates polling on the current session's role.
type Sessions interface {
	IsAdmin(ctx context.Context) bool
}

// Poller periodically compares the backend's order list against a
// persisted high-water-mark timestamp and surfaces orders created after it
// as notifications. It only does work for an admin session.
//
// The watermark starts at "now" the first time an admin session is seen,
// so orders that already existed are never surfaced. It advances to "now"
// whenever a poll finds at least one new order, and is persisted so a
// restart does not re-surface old orders.
type Poller struct {
	store    kvstore.Store
	fetch    OrdersFetcher
	sessions Sessions
	interval time.Duration
	now      func() time.Time

	flight singleflight.Group

	mu          sync.Mutex
	initialized bool
	watermark   time.Time
	feed        []Notification
}

func NewPoller(store kvstore.Store, fetch OrdersFetcher, sessions Sessions, interval time.Duration) *Poller {
	return &Poller{
		store:    store,
		fetch:    fetch,
		sessions: sessions,
		interval: interval,
		now:      time.Now,
	}
}

// Run owns the polling timer, ticking at the configured period until ctx
// is cancelled. authCh is the auth-changed broadcast: a login that grants
// admin arms the poller, a logout clears the feed and puts it back to
// sleep.
func (p *Poller) Run(ctx context.Context, authCh <-chan struct{}) {
	p.ensureInitialized(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Errors are already logged; the next tick retries naturally.
			_ = p.CheckNow(ctx)
		case <-authCh:
			p.onAuthChanged(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// CheckNow runs one poll step. Concurrent calls collapse into a single
// flight so the watermark cannot advance twice for one batch.
func (p *Poller) CheckNow(ctx context.Context) error {
	_, err, _ := p.flight.Do("poll", func() (interface{}, error) {
		return nil, p.poll(ctx)
	})
	return err
}

// Feed returns a copy of the current feed, newest first.
func (p *Poller) Feed() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Notification, len(p.feed))
	copy(out, p.feed)
	return out
}

// Unread is the feed length; entries are unread until cleared.
func (p *Poller) Unread() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.feed)
}

// Clear empties the in-memory feed. The persisted watermark is left alone
// so already-seen orders do not come back on the next poll.
func (p *Poller) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.feed = nil
}

func (p *Poller) onAuthChanged(ctx context.Context) {
	if p.sessions.IsAdmin(ctx) {
		p.ensureInitialized(ctx)
		return
	}
	// Session teardown or admin loss: drop the feed and go dormant. The
	// watermark key is removed by ClearAuth itself on logout.
	p.mu.Lock()
	p.feed = nil
	p.initialized = false
	p.mu.Unlock()
}

// ensureInitialized establishes the watermark for an admin session. A
// stored watermark is adopted as-is; an absent or unreadable one is set to
// the current instant and persisted.
func (p *Poller) ensureInitialized(ctx context.Context) {
	if !p.sessions.IsAdmin(ctx) {
		return
	}
	p.mu.Lock()
	if p.initialized {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	watermark := time.Time{}
	if raw, err := p.store.Get(ctx, kvstore.KeyWatermark); err == nil {
		if millis, errParse := strconv.ParseInt(raw, 10, 64); errParse == nil {
			watermark = time.UnixMilli(millis)
		}
	}
	if watermark.IsZero() {
		watermark = p.now()
		p.persistWatermark(ctx, watermark)
	}

	p.mu.Lock()
	p.watermark = watermark
	p.initialized = true
	p.mu.Unlock()
}

// poll is one timer-driven step. It is a no-op for a non-admin session; a
// fetch error changes nothing and the timer keeps its schedule.
func (p *Poller) poll(ctx context.Context) error {
	if !p.sessions.IsAdmin(ctx) {
		return nil
	}
	p.mu.Lock()
	initialized, watermark := p.initialized, p.watermark
	p.mu.Unlock()
	if !initialized {
		return nil
	}

	orders, err := p.fetch.AdminOrders(ctx)
	if err != nil {
		log.Printf("notifications: fetching orders failed: %v", err)
		return err
	}

	var fresh []Notification
	for _, o := range orders {
		if o.CreatedAt.After(watermark) {
			fresh = append(fresh, Notification{
				OrderID:    o.ID,
				Message:    fmt.Sprintf("New order #%d from %s", o.ID, o.UserName),
				Amount:     o.TotalAmount,
				ObservedAt: o.CreatedAt,
			})
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	now := p.now()
	p.mu.Lock()
	// The session may have been torn down while the fetch was in flight;
	// committing then would repopulate a feed that logout just emptied.
	if !p.initialized {
		p.mu.Unlock()
		return nil
	}
	p.feed = append(fresh, p.feed...)
	if len(p.feed) > FeedCapacity {
		p.feed = p.feed[:FeedCapacity]
	}
	p.watermark = now
	p.mu.Unlock()

	p.persistWatermark(ctx, now)
	return nil
}

func (p *Poller) persistWatermark(ctx context.Context, t time.Time) {
	value := strconv.FormatInt(t.UnixMilli(), 10)
	if err := p.store.Set(ctx, kvstore.KeyWatermark, value); err != nil {
		log.Printf("notifications: persisting watermark failed: %v", err)
	}
}
