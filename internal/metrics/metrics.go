// Package metrics keeps process-local counters exposed on /metrics.
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

var (
	RequestsTotal Counter
	RateLimited   Counter
	OrdersPlaced  Counter
	OrderFailures Counter
)

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	RequestsTotal uint64 `json:"requests_total"`
	RateLimited   uint64 `json:"requests_rate_limited"`
	OrdersPlaced  uint64 `json:"orders_placed"`
	OrderFailures uint64 `json:"order_failures"`
}

func Take() Snapshot {
	return Snapshot{
		RequestsTotal: RequestsTotal.Load(),
		RateLimited:   RateLimited.Load(),
		OrdersPlaced:  OrdersPlaced.Load(),
		OrderFailures: OrderFailures.Load(),
	}
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
