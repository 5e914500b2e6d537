package events

import "time"

// Activity event types.
const (
	TypeIndexGenerated         = "INDEX_GENERATED"
	TypeModulesEnriched        = "MODULES_ENRICHED"
	TypeModuleEnrichmentFailed = "MODULE_ENRICHMENT_FAILED"
	TypeAnalysisGenerated      = "ANALYSIS_GENERATED"
	TypeLoginSucceeded         = "LOGIN_SUCCEEDED"
	TypeLoginFailed            = "LOGIN_FAILED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "INDEX_GENERATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// New stamps an event with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
