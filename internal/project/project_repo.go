package project

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/conflict"
	"github.com/jyhens/Layer2-Application/internal/shared/dbtx"
	"gorm.io/gorm"
)

//go:generate mockgen -source=project_repo.go -destination=mock/project_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Project) error
	FindAll(ctx context.Context) ([]Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
	EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error)

	Assign(ctx context.Context, a *Assignment) error
	FindAssignments(ctx context.Context, projectID uuid.UUID) ([]AssignedEmployee, error)
	Unassign(ctx context.Context, projectID, employeeID uuid.UUID) error

	ActiveProjectIDs(ctx context.Context, employeeID uuid.UUID, date time.Time) ([]uuid.UUID, error)
	TeamAssignments(ctx context.Context, projectIDs []uuid.UUID, excludeEmployeeID uuid.UUID) ([]conflict.TeamMember, error)
}

type activeProjectRow struct {
	ProjectID uuid.UUID
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, p *Project) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Project, error) {
	var projects []Project
	err := r.conn(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&projects).Error
	return projects, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var p Project
	if err := r.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.conn(ctx)
	if err := db.Where("project_id = ?", id).Delete(&Assignment{}).Error; err != nil {
		return err
	}

	res := db.Delete(&Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "customers", id)
}

func (r *repository) EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "employees", id)
}

func (r *repository) exists(ctx context.Context, table string, id uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table(table).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Assign(ctx context.Context, a *Assignment) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindAssignments(ctx context.Context, projectID uuid.UUID) ([]AssignedEmployee, error) {
	var rows []AssignedEmployee
	err := r.conn(ctx).
		Table("project_assignments").
		Select("project_assignments.employee_id AS employee_id, employees.name AS employee_name").
		Joins("JOIN employees ON employees.id = project_assignments.employee_id").
		Where("project_assignments.project_id = ?", projectID).
		Order("employees.name ASC").
		Order("project_assignments.employee_id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Unassign(ctx context.Context, projectID, employeeID uuid.UUID) error {
	res := r.conn(ctx).
		Where("project_id = ? AND employee_id = ?", projectID, employeeID).
		Delete(&Assignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ActiveProjectIDs lists the projects the employee is assigned to whose
// period contains date, ordered by project id.
func (r *repository) ActiveProjectIDs(ctx context.Context, employeeID uuid.UUID, date time.Time) ([]uuid.UUID, error) {
	var rows []activeProjectRow
	err := r.conn(ctx).
		Table("project_assignments").
		Select("project_assignments.project_id AS project_id").
		Joins("JOIN projects ON projects.id = project_assignments.project_id").
		Where("project_assignments.employee_id = ?", employeeID).
		Scopes(ActiveOn(date)).
		Order("project_assignments.project_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ProjectID
	}
	return ids, nil
}

// TeamAssignments returns every other employee assigned to one of projectIDs.
// Rows are ordered by project name, project id, employee name, employee id.
func (r *repository) TeamAssignments(ctx context.Context, projectIDs []uuid.UUID, excludeEmployeeID uuid.UUID) ([]conflict.TeamMember, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	var team []conflict.TeamMember
	err := r.conn(ctx).
		Table("project_assignments").
		Select(`project_assignments.project_id AS project_id,
			projects.name AS project_name,
			project_assignments.employee_id AS employee_id,
			employees.name AS employee_name`).
		Joins("JOIN projects ON projects.id = project_assignments.project_id").
		Joins("JOIN employees ON employees.id = project_assignments.employee_id").
		Where("project_assignments.project_id IN ?", projectIDs).
		Where("project_assignments.employee_id <> ?", excludeEmployeeID).
		Order("projects.name ASC").
		Order("projects.id ASC").
		Order("employees.name ASC").
		Order("employees.id ASC").
		Scan(&team).Error
	return team, err
}
