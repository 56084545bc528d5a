package notification

import "time"

// EventType classifies what happened.
type EventType string

const (
	EventNewReport      EventType = "new_report"
	EventInventoryAlert EventType = "inventory_alert"
	EventUserActivity   EventType = "user_activity"
)

// Audience selects who the frontend should fan the event out to.
type Audience string

const (
	AudienceAll    Audience = "all"
	AudienceAdmins Audience = "admins"
)

// Event is the payload published on the notifications channel. The
// websocket gateway consumes it and pushes to connected browsers; this
// package only produces.
type Event struct {
	Type      EventType              `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Audience  Audience               `json:"audience"`
	CreatedAt time.Time              `json:"created_at"`
}
