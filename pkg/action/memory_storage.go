package action

import (
	"context"
	"sync"

	"github.com/tenantkit/tenantkit/pkg/grants"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// memoryStorage implements Storage over the in-memory stores. RunInTx
// serializes transactions with a mutex and rolls both stores back to a
// pre-transaction snapshot when the callback fails, which is enough to
// test action atomicity without a database.
type memoryStorage struct {
	mu      sync.Mutex
	tenants *tenant.MemoryStore
	grants  *grants.MemoryStore
}

// NewMemoryStorage creates a Storage over in-memory stores. Both stores
// double as the Users store and the grant store respectively; pass the
// same instances to the checker so reads and writes observe one state.
func NewMemoryStorage(tenants *tenant.MemoryStore, grantStore *grants.MemoryStore) Storage {
	return &memoryStorage{tenants: tenants, grants: grantStore}
}

func (m *memoryStorage) Tenants() tenant.Store   { return m.tenants }
func (m *memoryStorage) Users() tenant.UserStore { return m.tenants }
func (m *memoryStorage) Grants() grants.Store    { return m.grants }

// RunInTx executes fn with rollback-on-error semantics.
func (m *memoryStorage) RunInTx(ctx context.Context, fn func(ctx context.Context, s Storage) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tenantSnap := m.tenants.Snapshot()
	grantSnap := m.grants.Snapshot()

	if err := fn(ctx, m); err != nil {
		m.tenants.Restore(tenantSnap)
		m.grants.Restore(grantSnap)
		return err
	}
	return nil
}
