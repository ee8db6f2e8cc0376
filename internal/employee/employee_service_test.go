package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/employee"
	employeeerrors "github.com/jyhens/Layer2-Application/internal/employee/errors"
	employeeMock "github.com/jyhens/Layer2-Application/internal/employee/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   employee.NewService(db, repo, rdb),
		repo:      repo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func strPtr(v string) *string { return &v }

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - trims name and defaults role", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "Alice", e.Name)
				assert.Equal(t, domain.RoleEmployee, e.Role)
				assert.Nil(t, e.JobTitle)
				assert.NotEqual(t, uuid.Nil, e.ID)
				return nil
			})
		deps.redismock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Name:     "  Alice  ",
			JobTitle: strPtr("   "),
		})

		require.NoError(t, err)
		assert.Equal(t, "Alice", resp.Name)
		assert.Equal(t, "EMPLOYEE", resp.Role)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("success - explicit role", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Name:     "Peter",
			JobTitle: strPtr(" Team Lead "),
			Role:     "approver",
		})

		require.NoError(t, err)
		assert.Equal(t, "APPROVER", resp.Role)
		require.NotNil(t, resp.JobTitle)
		assert.Equal(t, "Team Lead", *resp.JobTitle)
	})

	t.Run("blank name", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "   "})

		assert.ErrorIs(t, err, employeeerrors.ErrNameRequired)
	})

	t.Run("invalid role", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "Bob", Role: "OWNER"})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidRole)
	})

	t.Run("repo error", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db error"))

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "Bob"})

		assert.EqualError(t, err, "db error")
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindAll(ctx).
			Return([]employee.Employee{
				{ID: uuid.New(), Name: "Alice", Role: domain.RoleEmployee},
				{ID: uuid.New(), Name: "Bob", Role: domain.RoleApprover},
			}, nil)

		resp, err := deps.service.GetAll(ctx)

		require.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Alice", resp[0].Name)
		assert.Equal(t, "APPROVER", resp[1].Role)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db error"))

		resp, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)

		cached, _ := json.Marshal([]employee.EmployeeOptionResponse{
			{ID: uuid.New().String(), Name: "Carlos"},
		})
		deps.redismock.ExpectGet(employee.OptionsCacheKey).SetVal(string(cached))
		deps.repo.EXPECT().FindOptions(gomock.Any()).Times(0)

		resp, err := deps.service.GetOptions(ctx)

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Carlos", resp[0].Name)
	})

	t.Run("cache miss", func(t *testing.T) {
		deps := setupServiceTest(t)

		id := uuid.New()
		deps.redismock.ExpectGet(employee.OptionsCacheKey).RedisNil()
		deps.repo.EXPECT().
			FindOptions(gomock.Any()).
			Return([]employee.Employee{{ID: id, Name: "Daria"}}, nil)

		want, _ := json.Marshal([]employee.EmployeeOptionResponse{{ID: id.String(), Name: "Daria"}})
		deps.redismock.ExpectSet(employee.OptionsCacheKey, want, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx)

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Daria", resp[0].Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGet(employee.OptionsCacheKey).RedisNil()
		deps.repo.EXPECT().
			FindOptions(gomock.Any()).
			Return(nil, errors.New("database connection lost"))

		resp, err := deps.service.GetOptions(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "database connection lost")
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindByID(ctx, targetID).
			Return(&employee.Employee{ID: targetID, Name: "Eren", Role: domain.RoleEmployee}, nil)

		resp, err := deps.service.GetByID(ctx, targetID.String())

		require.NoError(t, err)
		assert.Equal(t, targetID.String(), resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByID(ctx, targetID).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, targetID.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID).
			Return(&employee.Employee{ID: targetID, Name: "Old", Role: domain.RoleApprover}, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "Fatima", e.Name)
				assert.Equal(t, domain.RoleApprover, e.Role)
				return nil
			})
		deps.redismock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

		resp, err := deps.service.Update(ctx, targetID.String(), employee.UpdateEmployeeRequest{Name: " Fatima "})

		require.NoError(t, err)
		assert.Equal(t, "Fatima", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, targetID.String(), employee.UpdateEmployeeRequest{Name: "X"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("update failed", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID).Return(&employee.Employee{ID: targetID}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(errors.New("db connection error"))

		_, err := deps.service.Update(ctx, targetID.String(), employee.UpdateEmployeeRequest{Name: "X"})

		assert.Error(t, err)
	})
}

func TestEmployeeService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	admin := domain.Caller{EmployeeID: uuid.New(), Name: "Amira", Role: domain.RoleAdmin}
	targetID := uuid.New()

	t.Run("non admin forbidden", func(t *testing.T) {
		deps := setupServiceTest(t)
		caller := domain.Caller{EmployeeID: uuid.New(), Role: domain.RoleApprover}

		_, err := deps.service.UpdateRole(ctx, caller, targetID.String(), employee.UpdateRoleRequest{Role: "ADMIN"})

		assert.ErrorIs(t, err, employeeerrors.ErrAdminRequired)
	})

	t.Run("promote employee", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID).
			Return(&employee.Employee{ID: targetID, Name: "Bob", Role: domain.RoleEmployee}, nil)
		deps.repo.EXPECT().CountByRole(gomock.Any(), gomock.Any()).Times(0)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.UpdateRole(ctx, admin, targetID.String(), employee.UpdateRoleRequest{Role: "APPROVER"})

		require.NoError(t, err)
		assert.Equal(t, "APPROVER", resp.Role)
	})

	t.Run("last admin cannot be demoted", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, admin.EmployeeID).
			Return(&employee.Employee{ID: admin.EmployeeID, Role: domain.RoleAdmin}, nil)
		deps.repo.EXPECT().CountByRole(ctx, domain.RoleAdmin).Return(int64(1), nil)

		_, err := deps.service.UpdateRole(ctx, admin, admin.EmployeeID.String(), employee.UpdateRoleRequest{Role: "EMPLOYEE"})

		assert.ErrorIs(t, err, employeeerrors.ErrLastAdminDemotion)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin demoted when another admin remains", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID).
			Return(&employee.Employee{ID: targetID, Role: domain.RoleAdmin}, nil)
		deps.repo.EXPECT().CountByRole(ctx, domain.RoleAdmin).Return(int64(2), nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.UpdateRole(ctx, admin, targetID.String(), employee.UpdateRoleRequest{Role: "EMPLOYEE"})

		require.NoError(t, err)
		assert.Equal(t, "EMPLOYEE", resp.Role)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID).
			Return(&employee.Employee{ID: targetID, Role: domain.RoleEmployee}, nil)
		deps.repo.EXPECT().Delete(ctx, targetID).Return(nil)
		deps.redismock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

		err := deps.service.Delete(ctx, targetID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("last admin", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID).
			Return(&employee.Employee{ID: targetID, Role: domain.RoleAdmin}, nil)
		deps.repo.EXPECT().CountByRole(ctx, domain.RoleAdmin).Return(int64(1), nil)

		err := deps.service.Delete(ctx, targetID.String())

		assert.ErrorIs(t, err, employeeerrors.ErrLastAdminDeletion)
	})

	t.Run("db error", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID).
			Return(&employee.Employee{ID: targetID, Role: domain.RoleEmployee}, nil)
		deps.repo.EXPECT().Delete(ctx, targetID).Return(errors.New("db error"))

		err := deps.service.Delete(ctx, targetID.String())

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_ResolveCaller(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindByID(ctx, id).
			Return(&employee.Employee{ID: id, Name: "Sofia", Role: domain.RoleApprover}, nil)

		caller, err := deps.service.ResolveCaller(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, domain.Caller{EmployeeID: id, Name: "Sofia", Role: domain.RoleApprover}, caller)
	})

	t.Run("unknown", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.ResolveCaller(ctx, id)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
