// internal/domain/order/store.go
package order

import "sync"

// Store keeps an append-only order list per client session. Orders are used
// to render the ticket and purchase-history views; status transitions, if
// any, come from the upstream API and are not applied here.
type Store struct {
	mu     sync.RWMutex
	orders map[string][]Order
}

// NewStore creates a new order store
func NewStore() *Store {
	return &Store{
		orders: make(map[string][]Order),
	}
}

// Append adds orders to the client's list in the given sequence
func (s *Store) Append(clientID string, orders ...Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[clientID] = append(s.orders[clientID], orders...)
}

// List returns a copy of the client's orders in append order
func (s *Store) List(clientID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]Order, len(s.orders[clientID]))
	copy(orders, s.orders[clientID])
	return orders
}

// Get returns the client's order with the given id
func (s *Store) Get(clientID, orderID string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders[clientID] {
		if o.ID == orderID {
			return o, true
		}
	}
	return Order{}, false
}

// Count returns the number of orders held for the client
func (s *Store) Count(clientID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders[clientID])
}
