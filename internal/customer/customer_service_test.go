package customer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/customer"
	customererrors "github.com/jyhens/Layer2-Application/internal/customer/errors"
	customerMock "github.com/jyhens/Layer2-Application/internal/customer/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (customer.Service, *customerMock.MockRepository, sqlmock.Sqlmock) {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := customerMock.NewMockRepository(ctrl)
	return customer.NewService(db, repo), repo, sqlMock
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, c *customer.Customer) error {
				assert.Equal(t, "Customer A", c.Name)
				return nil
			})

		resp, err := svc.Create(ctx, customer.CreateCustomerRequest{Name: " Customer A "})

		require.NoError(t, err)
		assert.Equal(t, "Customer A", resp.Name)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("blank name", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.Create(ctx, customer.CreateCustomerRequest{Name: "  "})

		assert.ErrorIs(t, err, customererrors.ErrNameRequired)
	})
}

func TestCustomerService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	svc, repo, _ := setupService(t)
	repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByID(ctx, id.String())
	assert.ErrorIs(t, err, customererrors.ErrCustomerNotFound)

	_, err = svc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, customererrors.ErrInvalidCustomerID)
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	svc, repo, sqlMock := setupService(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByID(ctx, id).Return(&customer.Customer{ID: id, Name: "Old"}, nil)
	repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	resp, err := svc.Update(ctx, id.String(), customer.UpdateCustomerRequest{Name: "New"})

	require.NoError(t, err)
	assert.Equal(t, "New", resp.Name)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc, repo, sqlMock := setupService(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().HasProjects(ctx, id).Return(false, nil)
		repo.EXPECT().Delete(ctx, id).Return(nil)

		assert.NoError(t, svc.Delete(ctx, id.String()))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("has projects", func(t *testing.T) {
		svc, repo, sqlMock := setupService(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().HasProjects(ctx, id).Return(true, nil)

		err := svc.Delete(ctx, id.String())

		assert.ErrorIs(t, err, customererrors.ErrCustomerHasProjects)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, sqlMock := setupService(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().HasProjects(ctx, id).Return(false, nil)
		repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, id.String()), customererrors.ErrCustomerNotFound)
	})

	t.Run("repo error", func(t *testing.T) {
		svc, repo, sqlMock := setupService(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().HasProjects(ctx, id).Return(false, errors.New("db down"))

		assert.EqualError(t, svc.Delete(ctx, id.String()), "db down")
	})
}
