// internal/domain/cart/store.go
package cart

import "sync"

// Store keeps one in-memory cart per client session. Carts are deliberately
// ephemeral: they do not survive a service restart, matching the tab-scoped
// lifetime of the selection they represent. Inventory is never checked here;
// the upstream API stays authoritative at purchase time.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

// NewStore creates a new cart store
func NewStore() *Store {
	return &Store{
		carts: make(map[string][]Line),
	}
}

// Add puts a line into the client's cart. If a line for the same event
// already exists the quantities are summed per ticket tier; otherwise the
// line is appended, preserving insertion order.
func (s *Store) Add(clientID string, line Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[clientID]
	for i := range lines {
		if lines[i].EventID == line.EventID {
			lines[i].StandardQuantity += line.StandardQuantity
			lines[i].VIPQuantity += line.VIPQuantity
			return
		}
	}
	s.carts[clientID] = append(lines, line)
}

// Remove deletes the line for an event. Removing an absent event is a no-op.
func (s *Store) Remove(clientID, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[clientID]
	for i := range lines {
		if lines[i].EventID == eventID {
			s.carts[clientID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the given tier's quantity on the matching line to an
// exact value. The caller validates quantity >= 0; the store does not clamp.
// Updating an absent event is a no-op.
func (s *Store) UpdateQuantity(clientID, eventID string, ticketType TicketType, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[clientID]
	for i := range lines {
		if lines[i].EventID != eventID {
			continue
		}
		if ticketType == TicketVIP {
			lines[i].VIPQuantity = quantity
		} else {
			lines[i].StandardQuantity = quantity
		}
		return
	}
}

// Clear empties the client's cart
func (s *Store) Clear(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, clientID)
}

// Lines returns a copy of the client's cart in insertion order
func (s *Store) Lines(clientID string) []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]Line, len(s.carts[clientID]))
	copy(lines, s.carts[clientID])
	return lines
}

// Total returns the sum of line subtotals across the client's cart
func (s *Store) Total(clientID string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, line := range s.carts[clientID] {
		total += line.Subtotal()
	}
	return total
}
