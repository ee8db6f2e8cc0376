package seed_test

import (
	"context"
	"testing"

	"github.com/jyhens/Layer2-Application/internal/customer"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/employee"
	"github.com/jyhens/Layer2-Application/internal/project"
	"github.com/jyhens/Layer2-Application/internal/seed"
	"github.com/jyhens/Layer2-Application/internal/shared/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun(t *testing.T) {
	db, _ := testdb.Open(t, &employee.Employee{}, &customer.Customer{}, &project.Project{}, &project.Assignment{})
	ctx := context.Background()

	applied, err := seed.Run(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, applied)

	count := func(model any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(9), count(&employee.Employee{}))
	assert.Equal(t, int64(2), count(&customer.Customer{}))
	assert.Equal(t, int64(3), count(&project.Project{}))
	assert.Equal(t, int64(9), count(&project.Assignment{}))

	var admin employee.Employee
	require.NoError(t, db.First(&admin, "id = ?", seed.AdminID).Error)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	var bobProjects int64
	require.NoError(t, db.Model(&project.Assignment{}).Where("employee_id = ?", seed.BobID).Count(&bobProjects).Error)
	assert.Equal(t, int64(2), bobProjects)

	t.Run("second run is a no-op", func(t *testing.T) {
		applied, err := seed.Run(ctx, db, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, int64(9), count(&employee.Employee{}))
	})
}
