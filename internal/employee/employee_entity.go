package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
)

type Employee struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name      string      `gorm:"type:varchar(200);not null"`
	JobTitle  *string     `gorm:"type:varchar(200)"`
	Role      domain.Role `gorm:"type:varchar(20);not null;default:'EMPLOYEE';index:idx_employees_role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
