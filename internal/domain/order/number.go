package order

import (
	"strconv"
	"sync"
	"time"
)

// numberPrefix tags order numbers so they are recognizable to humans apart
// from the internal numeric id.
const numberPrefix = "PED-"

// NumberGenerator issues unique, human-legible order numbers of the form
// PED-<unix milliseconds>. The generated value is strictly monotonic: when
// two calls land on the same millisecond the second one is bumped past the
// first, so concurrent callers can never receive the same number.
type NumberGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewNumberGenerator returns a generator seeded from the wall clock on first
// use.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{}
}

// Next returns a fresh order number.
func (g *NumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now

	return numberPrefix + strconv.FormatInt(now, 10)
}
