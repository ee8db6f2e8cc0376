package events

import "time"

const LeaveNotificationTopic = "leave.notification.v1"

const (
	LeaveSubmittedEvent = "leave.submitted"
	LeaveApprovedEvent  = "leave.approved"
	LeaveRejectedEvent  = "leave.rejected"
)

// LeaveNotificationEvent carries one inbox entry for the employee who owns
// the leave request. NotificationID is fixed when the event is enqueued so
// redelivery stores the entry once.
type LeaveNotificationEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	LeaveRequestID string    `json:"leave_request_id"`
	Kind           string    `json:"kind"`
	Date           string    `json:"date"`
	ActorID        *string   `json:"actor_id,omitempty"`
	ActorName      *string   `json:"actor_name,omitempty"`
	Comment        *string   `json:"comment,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
