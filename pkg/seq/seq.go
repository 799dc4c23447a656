// Package seq implements the per-node outgoing message counter.
//
// Every envelope a node emits takes the next value of the counter as its
// msg_id, so ids are strictly increasing over the life of the process and
// the first id handed out is 1. Replies correlate to requests through
// in_reply_to, never through the counter.
//
// Counter is not goroutine-safe. A node handles one envelope at a time and
// owns its counter exclusively.
package seq

// Counter is a monotonically increasing message counter. The zero value is
// ready to use.
type Counter struct {
	n uint64
}

// Tick advances the counter and returns the new value.
func (c *Counter) Tick() uint64 {
	c.n++
	return c.n
}

// Next is Tick returned as a pointer, the shape optional msg_id fields take.
func (c *Counter) Next() *uint64 {
	v := c.Tick()
	return &v
}

// Value returns the current counter value without advancing it.
func (c *Counter) Value() uint64 { return c.n }
