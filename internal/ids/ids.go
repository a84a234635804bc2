// Package ids issues the timestamp-based identifiers used by the quote,
// order and address stores, plus random part ids.
package ids

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	QuotePrefix   = "QUOTE-"
	OrderPrefix   = "ORD-"
	AddressPrefix = "addr_"
	PartPrefix    = "part-"
)

// Clock issues millisecond timestamps that strictly increase, so two ids
// generated within the same millisecond never collide.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClock returns a Clock reading from now. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Next returns the next unique millisecond stamp.
func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return ms
}

// Quote returns a new QUOTE-<timestamp> id.
func (c *Clock) Quote() string { return QuotePrefix + strconv.FormatInt(c.Next(), 10) }

// Order returns a new ORD-<timestamp> id.
func (c *Clock) Order() string { return OrderPrefix + strconv.FormatInt(c.Next(), 10) }

// Address returns a new addr_<timestamp> id.
func (c *Clock) Address() string { return AddressPrefix + strconv.FormatInt(c.Next(), 10) }

// NewPartID returns a random part id.
func NewPartID() string { return PartPrefix + uuid.NewString() }

// NewSessionID returns a random quoting-session id.
func NewSessionID() string { return uuid.NewString() }
