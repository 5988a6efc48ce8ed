package kinematics

import "sync"

// Mailbox is a single-slot, latest-value-wins handoff for complete
// joint-variable vectors. Producers (UI, serial feedback, IK results) call
// Put with a full vector; the simulation tick calls Take before each
// forward-kinematics evaluation and applies the whole snapshot, so no
// partial-joint update is ever visible across a computation boundary.
// Safe for any number of concurrent producers and one or more consumers.
type Mailbox struct {
	mu     sync.Mutex
	values []float64
	full   bool
}

// NewMailbox creates an empty mailbox.
//
// Returns:
//   - *Mailbox: the new mailbox
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Put deposits a complete joint-variable vector, replacing any undelivered
// previous value. The vector is copied; the caller keeps ownership of values.
//
// Parameters:
//   - values: the full joint-variable vector, base to tip
func (m *Mailbox) Put(values []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cap(m.values) < len(values) {
		m.values = make([]float64, len(values))
	}
	m.values = m.values[:len(values)]
	copy(m.values, values)
	m.full = true
}

// Take removes and returns the most recently deposited vector. The second
// return is false when no new value has arrived since the last Take.
// The returned slice is owned by the caller.
//
// Returns:
//   - []float64: the latest complete vector, or nil
//   - bool: true if a value was present
func (m *Mailbox) Take() ([]float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.full {
		return nil, false
	}
	out := append([]float64(nil), m.values...)
	m.full = false
	return out, true
}
