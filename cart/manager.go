package cart

import "sync"

// Manager hands out one Store per customer. Carts live in memory for the
// duration of the process; they are session state, not persisted data.
type Manager struct {
	mu    sync.Mutex
	carts map[uint]*Store
}

func NewManager() *Manager {
	return &Manager{
		carts: make(map[uint]*Store),
	}
}

// Get returns the customer's cart, creating an empty one on first use.
func (m *Manager) Get(customerID uint) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.carts[customerID]
	if !ok {
		store = NewStore()
		m.carts[customerID] = store
	}
	return store
}

// Drop discards the customer's cart entirely, e.g. on logout.
func (m *Manager) Drop(customerID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, customerID)
}
