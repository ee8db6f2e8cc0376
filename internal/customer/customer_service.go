package customer

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	customererrors "github.com/jyhens/Layer2-Application/internal/customer/errors"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error)
	GetAll(ctx context.Context) ([]CustomerResponse, error)
	GetByID(ctx context.Context, id string) (CustomerResponse, error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("customer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customer.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return CustomerResponse{}, err
	}

	c := &Customer{ID: uuid.New(), Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create customer persist failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return CustomerResponse{}, err
	}

	s.logger.Info("create customer success", zap.String("customer_id", c.ID.String()))
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, customererrors.ErrInvalidCustomerID
	}

	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, customererrors.ErrInvalidCustomerID
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		return CustomerResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CustomerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByID(ctx, customerID)
	if err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}
	c.Name = name

	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("update customer persist failed", zap.String("customer_id", id), zap.Error(err))
		return CustomerResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CustomerResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return customererrors.ErrInvalidCustomerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inUse, err := qtx.HasProjects(ctx, customerID)
	if err != nil {
		return err
	}
	if inUse {
		s.logger.Warn("delete customer refused, projects exist", zap.String("customer_id", id))
		return customererrors.ErrCustomerHasProjects
	}

	if err := qtx.Delete(ctx, customerID); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete customer commit failed", zap.String("customer_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete customer success", zap.String("customer_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customererrors.ErrCustomerNotFound
	}
	return err
}

func normalizeName(v string) (string, error) {
	name := strings.TrimSpace(v)
	if name == "" {
		return "", customererrors.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > 200 {
		return "", customererrors.ErrNameTooLong
	}
	return name, nil
}

func mapToResponse(c Customer) CustomerResponse {
	return CustomerResponse{
		ID:   c.ID.String(),
		Name: c.Name,
	}
}
