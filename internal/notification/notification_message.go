package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/events"
)

// Message is what the leave workflow hands to a Notifier. The recipient is
// always the employee who owns the leave request.
type Message struct {
	RecipientID    uuid.UUID
	LeaveRequestID uuid.UUID
	Kind           Kind
	Date           time.Time
	Actor          *domain.Caller
	Comment        *string
}

func (m Message) eventType() string {
	switch m.Kind {
	case KindApproved:
		return events.LeaveApprovedEvent
	case KindRejected:
		return events.LeaveRejectedEvent
	default:
		return events.LeaveSubmittedEvent
	}
}

func (m Message) toEntity(id uuid.UUID, now time.Time) Notification {
	n := Notification{
		ID:             id,
		UserID:         m.RecipientID,
		LeaveRequestID: m.LeaveRequestID,
		Kind:           m.Kind,
		Date:           domain.DateOf(m.Date),
		Comment:        m.Comment,
		CreatedAt:      now,
	}
	if m.Actor != nil && !m.Actor.IsZero() {
		actorID := m.Actor.EmployeeID
		actorName := m.Actor.Name
		n.ActorID = &actorID
		n.ActorName = &actorName
	}
	return n
}

// EventFor builds the event that delivers msg as inbox entry id.
func EventFor(msg Message, id uuid.UUID, requestID string, now time.Time) events.LeaveNotificationEvent {
	return toEvent(msg.toEntity(id, now), requestID, msg.eventType())
}

func toEvent(n Notification, requestID string, eventType string) events.LeaveNotificationEvent {
	evt := events.LeaveNotificationEvent{
		EventType:      eventType,
		RequestID:      requestID,
		NotificationID: n.ID.String(),
		UserID:         n.UserID.String(),
		LeaveRequestID: n.LeaveRequestID.String(),
		Kind:           string(n.Kind),
		Date:           domain.FormatDate(n.Date),
		ActorName:      n.ActorName,
		Comment:        n.Comment,
		OccurredAt:     n.CreatedAt,
	}
	if n.ActorID != nil {
		v := n.ActorID.String()
		evt.ActorID = &v
	}
	return evt
}

// FromEvent rebuilds the inbox entry carried by a consumed event.
func FromEvent(evt events.LeaveNotificationEvent) (Notification, error) {
	var n Notification
	var err error

	if n.ID, err = uuid.Parse(evt.NotificationID); err != nil {
		return n, err
	}
	if n.UserID, err = uuid.Parse(evt.UserID); err != nil {
		return n, err
	}
	if n.LeaveRequestID, err = uuid.Parse(evt.LeaveRequestID); err != nil {
		return n, err
	}
	if n.Date, err = domain.ParseDate(evt.Date); err != nil {
		return n, err
	}
	if evt.ActorID != nil {
		actorID, err := uuid.Parse(*evt.ActorID)
		if err != nil {
			return n, err
		}
		n.ActorID = &actorID
	}

	n.Kind = Kind(evt.Kind)
	n.ActorName = evt.ActorName
	n.Comment = evt.Comment
	n.CreatedAt = evt.OccurredAt.UTC()
	return n, nil
}
