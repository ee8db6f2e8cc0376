package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	employeeerrors "github.com/jyhens/Layer2-Application/internal/employee/errors"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	OptionsCacheKey = "employees:options"
	optionsCacheTTL = time.Hour
	maxNameLength   = 200
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateRole(ctx context.Context, caller domain.Caller, id string, req UpdateRoleRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	ResolveCaller(ctx context.Context, id uuid.UUID) (domain.Caller, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested", zap.String("request_id", rid))

	name, err := normalizeName(req.Name)
	if err != nil {
		return EmployeeResponse{}, err
	}
	role := domain.RoleEmployee
	if req.Role != "" {
		r, ok := domain.ParseRole(req.Role)
		if !ok {
			return EmployeeResponse{}, employeeerrors.ErrInvalidRole
		}
		role = r
	}

	e := &Employee{
		ID:       uuid.New(),
		Name:     name,
		JobTitle: normalizeOptional(req.JobTitle),
		Role:     role,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", e.ID.String()),
		zap.String("role", e.Role.String()),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (any, error) {
		employees, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(employees))
		for i, e := range employees {
			resp[i] = EmployeeOptionResponse{ID: e.ID.String(), Name: e.Name}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, OptionsCacheKey, data, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	employeeID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	e.Name = name
	e.JobTitle = normalizeOptional(req.JobTitle)

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*e), nil
}

func (s *service) UpdateRole(ctx context.Context, caller domain.Caller, id string, req UpdateRoleRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee role requested",
		zap.String("employee_id", id),
		zap.String("actor_id", caller.EmployeeID.String()),
		zap.String("target_role", req.Role),
	)

	if !caller.Role.IsAdmin() {
		return EmployeeResponse{}, employeeerrors.ErrAdminRequired
	}
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee role begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if e.Role.IsAdmin() && !role.IsAdmin() {
		admins, err := qtx.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			s.logger.Error("update employee role count admins failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if admins <= 1 {
			s.logger.Warn("update employee role refused last admin", zap.String("employee_id", id))
			return EmployeeResponse{}, employeeerrors.ErrLastAdminDemotion
		}
	}

	e.Role = role
	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee role persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee role commit failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee role success",
		zap.String("employee_id", id),
		zap.String("role", role.String()),
	)
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	employeeID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, employeeID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if e.Role.IsAdmin() {
		admins, err := qtx.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if admins <= 1 {
			s.logger.Warn("delete employee refused last admin", zap.String("employee_id", id))
			return employeeerrors.ErrLastAdminDeletion
		}
	}

	if err := qtx.Delete(ctx, employeeID); err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// ResolveCaller loads the directory entry behind an authenticated id.
func (s *service) ResolveCaller(ctx context.Context, id uuid.UUID) (domain.Caller, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Caller{}, mapRepositoryError(err)
	}
	return domain.Caller{EmployeeID: e.ID, Name: e.Name, Role: e.Role}, nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("invalidate employee options cache failed",
			zap.String("key", OptionsCacheKey),
			zap.Error(err),
		)
	}
}

func normalizeName(v string) (string, error) {
	name := strings.TrimSpace(v)
	if name == "" {
		return "", employeeerrors.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", employeeerrors.ErrNameTooLong
	}
	return name, nil
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID.String(),
		Name:     e.Name,
		JobTitle: e.JobTitle,
		Role:     e.Role.String(),
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
