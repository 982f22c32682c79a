package dto

import "github.com/planhub/collab-event-service/pkg/timex"

// EventCreateRequest event creation request parameters. Times are
// RFC 3339 strings.
type EventCreateRequest struct {
	Title             string `json:"title" form:"title" binding:"required,max=255"`
	Description       string `json:"description" form:"description"`
	StartTime         string `json:"startTime" form:"startTime" binding:"required"`
	EndTime           string `json:"endTime" form:"endTime" binding:"required"`
	Location          string `json:"location" form:"location"`
	IsRecurring       bool   `json:"isRecurring" form:"isRecurring"`
	RecurrencePattern string `json:"recurrencePattern" form:"recurrencePattern"`
}

// EventBatchCreateRequest creates several events in one call.
type EventBatchCreateRequest struct {
	Events []EventCreateRequest `json:"events" binding:"required,min=1,max=100,dive"`
}

// EventUpdateRequest event update request parameters. Every field is
// optional; only fields present in the payload are applied.
type EventUpdateRequest struct {
	Title             Field[string] `json:"title"`
	Description       Field[string] `json:"description"`
	StartTime         Field[string] `json:"startTime"`
	EndTime           Field[string] `json:"endTime"`
	Location          Field[string] `json:"location"`
	IsRecurring       Field[bool]   `json:"isRecurring"`
	RecurrencePattern Field[string] `json:"recurrencePattern"`
}

// EventListRequest list query parameters.
type EventListRequest struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

// ---------------- DTO / Response ----------------

// EventDTO event response payload.
type EventDTO struct {
	ID                int64      `json:"id"`
	UID               int64      `json:"uid"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	StartTime         timex.Time `json:"startTime"`
	EndTime           timex.Time `json:"endTime"`
	Location          string     `json:"location"`
	IsRecurring       bool       `json:"isRecurring"`
	RecurrencePattern string     `json:"recurrencePattern"`
	CreatedAt         timex.Time `json:"createdAt"`
	UpdatedAt         timex.Time `json:"updatedAt"`
}
