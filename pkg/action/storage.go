package action

import (
	"context"

	"github.com/tenantkit/tenantkit/pkg/grants"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// Storage bundles the stores an action mutates and the transaction
// boundary around them. RunInTx hands the callback a Storage view whose
// stores operate inside one transaction: either every write in the
// callback commits, or none do.
type Storage interface {
	Tenants() tenant.Store
	Users() tenant.UserStore
	Grants() grants.Store

	RunInTx(ctx context.Context, fn func(ctx context.Context, s Storage) error) error
}
