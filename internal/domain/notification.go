package domain

import (
	"bytes"
	"encoding/json"
)

type Notification struct {
	ID        string           `json:"id,omitempty"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	TripID    int64            `json:"tripId"`
	UserID    int64            `json:"userId"`
	Timestamp string           `json:"timestamp"`
	ItemName  string           `json:"itemName,omitempty"`
	UserName  string           `json:"userName,omitempty"`
	Read      bool             `json:"read,omitempty"`
}

type NotificationType string

const (
	NotifTripUpdate    NotificationType = "trip_update"
	NotifExpenseAdd    NotificationType = "expense_add"
	NotifExpenseUpdate NotificationType = "expense_update"
	NotifExpenseDelete NotificationType = "expense_delete"
	NotifPackingAdd    NotificationType = "packing_add"
	NotifPackingUpdate NotificationType = "packing_update"
	NotifPackingDelete NotificationType = "packing_delete"
	NotifChatMessage   NotificationType = "chat_message"
	NotifMemberJoined  NotificationType = "member_joined"
)

// NotificationTypes lists the canonical notification variants.
func NotificationTypes() []NotificationType {
	return []NotificationType{
		NotifTripUpdate,
		NotifExpenseAdd,
		NotifExpenseUpdate,
		NotifExpenseDelete,
		NotifPackingAdd,
		NotifPackingUpdate,
		NotifPackingDelete,
		NotifChatMessage,
		NotifMemberJoined,
	}
}

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifTripUpdate,
		NotifExpenseAdd, NotifExpenseUpdate, NotifExpenseDelete,
		NotifPackingAdd, NotifPackingUpdate, NotifPackingDelete,
		NotifChatMessage, NotifMemberJoined:
		return true
	default:
		return false
	}
}

const (
	EventNotification = "notification"
	EventAuth         = "auth"
)

// Envelope is the wire wrapper for every realtime message.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type AuthPayload struct {
	UserID int64 `json:"userId"`
}

// HasPayload reports whether the envelope carries a non-null payload.
func (e Envelope) HasPayload() bool {
	p := bytes.TrimSpace(e.Payload)
	return len(p) > 0 && string(p) != "null"
}

func NewEnvelope(typ string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typ, Payload: data}, nil
}
