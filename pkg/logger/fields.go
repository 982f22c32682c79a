package logger

// Shared log field names, kept consistent across the project so logs
// stay queryable.
const (
	// FieldTraceID request trace ID
	FieldTraceID = "traceId"

	// FieldUID acting user ID
	FieldUID = "uid"

	// FieldEventID event ID
	FieldEventID = "eventId"

	// FieldVersionID ledger snapshot ID
	FieldVersionID = "versionId"

	// FieldVersionNumber ledger version number
	FieldVersionNumber = "versionNumber"

	// FieldMethod method name
	FieldMethod = "method"

	// FieldDuration elapsed time
	FieldDuration = "duration"

	// FieldRole collaboration role
	FieldRole = "role"
)
