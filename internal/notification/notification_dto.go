package notification

import "time"

type ListQuery struct {
	UserID     string `form:"user_id"`
	OnlyUnread bool   `form:"only_unread"`
}

type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

type NotificationResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	LeaveRequestID string    `json:"leave_request_id"`
	Kind           string    `json:"kind"`
	Date           string    `json:"date"`
	ActorID        *string   `json:"actor_id"`
	ActorName      *string   `json:"actor_name"`
	Comment        *string   `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
	IsRead         bool      `json:"is_read"`
}
