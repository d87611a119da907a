package hce

import (
	"sort"
	"sync"
)

// Port is the logical channel number carried in P2 of an application command.
type Port uint8

// ResponseTable maps ports to the payload served on the next command for
// that port. It holds at most one entry per port, and the last Put wins.
// All methods are safe for concurrent use.
type ResponseTable struct {
	mu      sync.Mutex
	entries map[Port][]byte
}

// NewResponseTable returns an empty table.
func NewResponseTable() *ResponseTable {
	return &ResponseTable{entries: make(map[Port][]byte)}
}

// Put stores a copy of data for port, replacing any previous entry.
func (t *ResponseTable) Put(port Port, data []byte) {
	entry := append(make([]byte, 0, len(data)), data...)

	t.mu.Lock()
	t.entries[port] = entry
	t.mu.Unlock()
}

// Get returns a copy of the entry for port without consuming it.
func (t *ResponseTable) Get(port Port) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[port]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), entry...), true
}

// Take returns the entry for port. Unless permanent is set, the entry is
// removed under the same lock, so one Put is served at most once.
func (t *ResponseTable) Take(port Port, permanent bool) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[port]
	if !ok {
		return nil, false
	}
	if !permanent {
		delete(t.entries, port)
		return entry, true
	}
	return append([]byte(nil), entry...), true
}

// Remove deletes the entry for port. Removing an absent port is a no-op.
func (t *ResponseTable) Remove(port Port) {
	t.mu.Lock()
	delete(t.entries, port)
	t.mu.Unlock()
}

// Len returns the number of configured ports.
func (t *ResponseTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Ports returns the configured ports in ascending order.
func (t *ResponseTable) Ports() []Port {
	t.mu.Lock()
	ports := make([]Port, 0, len(t.entries))
	for p := range t.entries {
		ports = append(ports, p)
	}
	t.mu.Unlock()

	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })
	return ports
}
