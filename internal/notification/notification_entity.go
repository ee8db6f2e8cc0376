package notification

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSubmitted Kind = "SUBMITTED"
	KindApproved  Kind = "APPROVED"
	KindRejected  Kind = "REJECTED"
)

type Notification struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_user_read"`
	LeaveRequestID uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_leave_request"`
	Kind           Kind       `gorm:"type:varchar(20);not null"`
	Date           time.Time  `gorm:"type:date;not null"`
	ActorID        *uuid.UUID `gorm:"type:uuid"`
	ActorName      *string    `gorm:"type:varchar(200)"`
	Comment        *string    `gorm:"type:text"`
	CreatedAt      time.Time
	IsRead         bool `gorm:"not null;default:false;index:idx_notifications_user_read"`
}

func (Notification) TableName() string {
	return "notifications"
}
