package grants_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/pkg/grants"
)

func TestScope(t *testing.T) {
	t.Parallel()

	t.Run("global sentinel", func(t *testing.T) {
		t.Parallel()

		assert.True(t, grants.Global.IsGlobal())
		assert.Equal(t, "global", grants.Global.String())

		_, ok := grants.Global.TenantID()
		assert.False(t, ok)
	})

	t.Run("tenant scope round trip", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		scope := grants.ForTenant(id)

		assert.False(t, scope.IsGlobal())
		assert.Equal(t, id.String(), scope.String())

		parsed, ok := scope.TenantID()
		require.True(t, ok)
		assert.Equal(t, id, parsed)
	})

	t.Run("malformed scope", func(t *testing.T) {
		t.Parallel()

		_, ok := grants.Scope("not-a-uuid").TenantID()
		assert.False(t, ok)
	})
}
