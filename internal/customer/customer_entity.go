package customer

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Customer) TableName() string {
	return "customers"
}
