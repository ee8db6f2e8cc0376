package project

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	projecterrors "github.com/jyhens/Layer2-Application/internal/project/errors"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id string) (ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error)
	Delete(ctx context.Context, id string) error

	Assign(ctx context.Context, projectID string, req AssignRequest) (AssignmentResponse, error)
	GetAssignments(ctx context.Context, projectID string) ([]AssignmentResponse, error)
	Unassign(ctx context.Context, projectID, employeeID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

type projectInput struct {
	name       string
	customerID uuid.UUID
	start      time.Time
	end        *time.Time
}

func validateProject(name, customerID, startDate string, endDate *string) (projectInput, error) {
	var in projectInput

	in.name = strings.TrimSpace(name)
	if in.name == "" {
		return in, projecterrors.ErrNameRequired
	}
	if utf8.RuneCountInString(in.name) > 200 {
		return in, projecterrors.ErrNameTooLong
	}

	cid, err := uuid.Parse(customerID)
	if err != nil {
		return in, projecterrors.ErrInvalidCustomerID
	}
	in.customerID = cid

	in.start, err = domain.ParseDate(startDate)
	if err != nil {
		return in, projecterrors.ErrInvalidDate
	}
	if endDate != nil && strings.TrimSpace(*endDate) != "" {
		end, err := domain.ParseDate(*endDate)
		if err != nil {
			return in, projecterrors.ErrInvalidDate
		}
		if end.Before(in.start) {
			return in, projecterrors.ErrInvalidPeriod
		}
		in.end = &end
	}
	return in, nil
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create project requested",
		zap.String("request_id", rid),
		zap.String("customer_id", req.CustomerID),
	)

	in, err := validateProject(req.Name, req.CustomerID, req.StartDate, req.EndDate)
	if err != nil {
		return ProjectResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create project begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ok, err := qtx.CustomerExists(ctx, in.customerID)
	if err != nil {
		return ProjectResponse{}, err
	}
	if !ok {
		return ProjectResponse{}, projecterrors.ErrCustomerNotFound
	}

	p := &Project{
		ID:         uuid.New(),
		Name:       in.name,
		CustomerID: in.customerID,
		StartDate:  in.start,
		EndDate:    in.end,
	}
	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create project persist failed", zap.String("request_id", rid), zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create project commit failed", zap.String("request_id", rid), zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("create project success",
		zap.String("request_id", rid),
		zap.String("project_id", p.ID.String()),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProjectResponse, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProjectResponse, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}

	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}
	in, err := validateProject(req.Name, req.CustomerID, req.StartDate, req.EndDate)
	if err != nil {
		return ProjectResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, projectID)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}

	ok, err := qtx.CustomerExists(ctx, in.customerID)
	if err != nil {
		return ProjectResponse{}, err
	}
	if !ok {
		return ProjectResponse{}, projecterrors.ErrCustomerNotFound
	}

	p.Name = in.name
	p.CustomerID = in.customerID
	p.StartDate = in.start
	p.EndDate = in.end

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update project persist failed", zap.String("project_id", id), zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ProjectResponse{}, err
	}

	s.logger.Info("update project success", zap.String("project_id", id))
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return projecterrors.ErrInvalidProjectID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, projectID); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete project commit failed", zap.String("project_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete project success", zap.String("project_id", id))
	return nil
}

func (s *service) Assign(ctx context.Context, projectID string, req AssignRequest) (AssignmentResponse, error) {
	s.logger.Debug("assign employee requested",
		zap.String("project_id", projectID),
		zap.String("employee_id", req.EmployeeID),
	)

	pid, err := uuid.Parse(projectID)
	if err != nil {
		return AssignmentResponse{}, projecterrors.ErrInvalidProjectID
	}
	eid, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AssignmentResponse{}, projecterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign employee begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, pid); err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	ok, err := qtx.EmployeeExists(ctx, eid)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if !ok {
		return AssignmentResponse{}, projecterrors.ErrEmployeeNotFound
	}

	if err := qtx.Assign(ctx, &Assignment{ID: uuid.New(), EmployeeID: eid, ProjectID: pid}); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, projecterrors.ErrAlreadyAssigned) {
			s.logger.Warn("assign employee duplicate",
				zap.String("project_id", projectID),
				zap.String("employee_id", req.EmployeeID),
			)
		} else {
			s.logger.Error("assign employee persist failed", zap.Error(err))
		}
		return AssignmentResponse{}, mapped
	}

	assigned, err := qtx.FindAssignments(ctx, pid)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("assign employee commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	resp := AssignmentResponse{EmployeeID: eid.String()}
	for _, a := range assigned {
		if a.EmployeeID == eid {
			resp.EmployeeName = a.EmployeeName
			break
		}
	}

	s.logger.Info("assign employee success",
		zap.String("project_id", projectID),
		zap.String("employee_id", req.EmployeeID),
	)
	return resp, nil
}

func (s *service) GetAssignments(ctx context.Context, projectID string) ([]AssignmentResponse, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, projecterrors.ErrInvalidProjectID
	}

	if _, err := s.repo.FindByID(ctx, pid); err != nil {
		return nil, mapRepositoryError(err)
	}

	assigned, err := s.repo.FindAssignments(ctx, pid)
	if err != nil {
		return nil, err
	}

	res := make([]AssignmentResponse, len(assigned))
	for i, a := range assigned {
		res[i] = AssignmentResponse{EmployeeID: a.EmployeeID.String(), EmployeeName: a.EmployeeName}
	}
	return res, nil
}

func (s *service) Unassign(ctx context.Context, projectID, employeeID string) error {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return projecterrors.ErrInvalidProjectID
	}
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return projecterrors.ErrInvalidEmployeeID
	}

	if err := s.repo.Unassign(ctx, pid, eid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return projecterrors.ErrAssignmentNotFound
		}
		s.logger.Error("unassign employee failed", zap.Error(err))
		return err
	}

	s.logger.Info("unassign employee success",
		zap.String("project_id", projectID),
		zap.String("employee_id", employeeID),
	)
	return nil
}

func mapToResponse(p Project) ProjectResponse {
	resp := ProjectResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		CustomerID: p.CustomerID.String(),
		StartDate:  domain.FormatDate(p.StartDate),
	}
	if p.EndDate != nil {
		end := domain.FormatDate(*p.EndDate)
		resp.EndDate = &end
	}
	return resp
}
