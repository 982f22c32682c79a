package domain

import "time"

// Snapshot field keys. Version snapshots and diff results key their
// entries by these names.
const (
	FieldTitle             = "title"
	FieldDescription       = "description"
	FieldStartTime         = "start_time"
	FieldEndTime           = "end_time"
	FieldLocation          = "location"
	FieldIsRecurring       = "is_recurring"
	FieldRecurrencePattern = "recurrence_pattern"
)

// Event is the calendar event domain model.
type Event struct {
	ID                int64
	UID               int64
	Title             string
	Description       string
	StartTime         time.Time
	EndTime           time.Time
	Location          string
	IsRecurring       bool
	RecurrencePattern string
	IsDeleted         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Snapshot renders the full current state as a version snapshot.
func (e *Event) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		FieldTitle:             e.Title,
		FieldDescription:       e.Description,
		FieldStartTime:         e.StartTime.UTC().Format(time.RFC3339),
		FieldEndTime:           e.EndTime.UTC().Format(time.RFC3339),
		FieldLocation:          e.Location,
		FieldIsRecurring:       e.IsRecurring,
		FieldRecurrencePattern: e.RecurrencePattern,
	}
}
