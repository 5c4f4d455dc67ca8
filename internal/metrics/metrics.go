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

// HTTP counts served requests and the ones that ended in a 5xx.
type HTTP struct {
	Requests Counter
	Errors   Counter
}

// Observe records one finished request.
func (h *HTTP) Observe(status int) {
	h.Requests.Inc()
	if status >= 500 {
		h.Errors.Inc()
	}
}

type Snapshot struct {
	Requests uint64 `json:"requests"`
	Errors   uint64 `json:"errors"`
}

func (h *HTTP) Snapshot() Snapshot {
	return Snapshot{Requests: h.Requests.Load(), Errors: h.Errors.Load()}
}
