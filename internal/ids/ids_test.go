package ids

import (
	"strings"
	"testing"
	"time"
)

func TestClockNeverRepeatsWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	c := NewClock(func() time.Time { return fixed })

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := c.Quote()
		if seen[id] {
			t.Fatalf("duplicate id %s at iteration %d", id, i)
		}
		seen[id] = true
	}
	if got := c.Order(); got != "ORD-1700000000100" {
		t.Fatalf("order id = %q, want ORD-1700000000100", got)
	}
}

func TestPrefixes(t *testing.T) {
	c := NewClock(nil)
	if !strings.HasPrefix(c.Address(), "addr_") {
		t.Fatalf("address id missing prefix")
	}
	if a, b := NewPartID(), NewPartID(); a == b || !strings.HasPrefix(a, "part-") {
		t.Fatalf("unexpected part ids %q %q", a, b)
	}
}
