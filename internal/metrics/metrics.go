package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// OrderCounters tracks checkout activity since the process started. The
// admin dashboard shows a snapshot next to the stored totals.
type OrderCounters struct {
	Placed        Counter
	Cancelled     Counter
	Rejected      Counter
	StatusChanges Counter
	startedAt     time.Time
}

func NewOrderCounters() *OrderCounters {
	return &OrderCounters{startedAt: time.Now()}
}

type OrderSnapshot struct {
	Placed        uint64        `json:"placed"`
	Cancelled     uint64        `json:"cancelled"`
	Rejected      uint64        `json:"rejected"`
	StatusChanges uint64        `json:"statusChanges"`
	Uptime        time.Duration `json:"uptimeNs"`
}

func (c *OrderCounters) Snapshot() OrderSnapshot {
	s := OrderSnapshot{
		Placed:        c.Placed.Load(),
		Cancelled:     c.Cancelled.Load(),
		Rejected:      c.Rejected.Load(),
		StatusChanges: c.StatusChanges.Load(),
	}
	if !c.startedAt.IsZero() {
		s.Uptime = time.Since(c.startedAt)
	}
	return s
}
