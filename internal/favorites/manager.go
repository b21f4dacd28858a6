package favorites

import (
	"sync"

	"github.com/bobmcallan/wealth-portal/internal/common"
)

// Manager hands out one Store per visitor so concurrent requests from the
// same visitor serialise their read-modify-write.
type Manager struct {
	kv     KeyValue
	logger *common.Logger
	stores sync.Map // key -> *Store
}

// NewManager creates a manager over kv.
func NewManager(kv KeyValue, logger *common.Logger) *Manager {
	return &Manager{kv: kv, logger: logger}
}

// For returns the store for visitorID.
func (m *Manager) For(visitorID string) *Store {
	key := Key(visitorID)
	if s, ok := m.stores.Load(key); ok {
		return s.(*Store)
	}
	s, _ := m.stores.LoadOrStore(key, NewStore(m.kv, key, m.logger))
	return s.(*Store)
}
