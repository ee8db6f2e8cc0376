package customer_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/customer"
	"github.com/jyhens/Layer2-Application/internal/shared/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCustomerRepository(t *testing.T) {
	db, _ := testdb.Open(t, &customer.Customer{})
	require.NoError(t, db.Exec(`CREATE TABLE projects (id TEXT PRIMARY KEY, customer_id TEXT NOT NULL)`).Error)

	repo := customer.NewRepository(db)
	ctx := context.Background()

	b := &customer.Customer{ID: uuid.New(), Name: "Customer B"}
	a := &customer.Customer{ID: uuid.New(), Name: "Customer A"}
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, a))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Customer A", all[0].Name)

	require.NoError(t, db.Exec(`INSERT INTO projects (id, customer_id) VALUES (?, ?)`, uuid.NewString(), a.ID).Error)

	inUse, err := repo.HasProjects(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = repo.HasProjects(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, inUse)

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), gorm.ErrRecordNotFound)
}
