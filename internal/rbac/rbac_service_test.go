package rbac_test

import (
	"testing"

	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/rbac"
	"github.com/jyhens/Layer2-Application/internal/rbac/infra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	require.NoError(t, err)
	return rbac.NewService(e)
}

func TestService_Enforce(t *testing.T) {
	svc := newService(t)

	t.Run("approver decides leave", func(t *testing.T) {
		ok, err := svc.Enforce(domain.EnforceRequest{Role: domain.RoleApprover, Resource: "leave", Action: "approve"})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("employee cannot decide leave", func(t *testing.T) {
		ok, err := svc.Enforce(domain.EnforceRequest{Role: domain.RoleEmployee, Resource: "leave", Action: "reject"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown role denied", func(t *testing.T) {
		ok, err := svc.Enforce(domain.EnforceRequest{Role: domain.Role("GUEST"), Resource: "leave", Action: "read"})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestService_Permissions(t *testing.T) {
	svc := newService(t)

	employee, err := svc.Permissions(domain.RoleEmployee)
	require.NoError(t, err)
	approver, err := svc.Permissions(domain.RoleApprover)
	require.NoError(t, err)
	admin, err := svc.Permissions(domain.RoleAdmin)
	require.NoError(t, err)

	assert.Contains(t, employee, domain.Permission{Resource: "leave", Action: "create"})
	assert.NotContains(t, employee, domain.Permission{Resource: "leave", Action: "approve"})
	assert.Contains(t, approver, domain.Permission{Resource: "leave", Action: "approve"})
	assert.Contains(t, approver, domain.Permission{Resource: "leave", Action: "create"})
	assert.Contains(t, admin, domain.Permission{Resource: "project", Action: "assign"})
	assert.Greater(t, len(admin), len(approver))
	assert.Greater(t, len(approver), len(employee))

	assert.Equal(t, "customer", employee[0].Resource)

	none, err := svc.Permissions(domain.Role("GUEST"))
	require.NoError(t, err)
	assert.Empty(t, none)
}
