package service

import (
	"reflect"
	"time"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/pkg/textdiff"

	"github.com/bytedance/sonic"
)

// normalizeValue pushes a value through JSON so that in-memory
// snapshots compare equal to snapshots read back from storage
// (ints become float64, structs become maps, and so on).
func normalizeValue(v interface{}) interface{} {
	data, err := sonic.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := sonic.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

func valuesEqual(a, b interface{}) bool {
	return reflect.DeepEqual(normalizeValue(a), normalizeValue(b))
}

// diffSnapshots compares two snapshots field by field over the union
// of their keys. Only differing fields appear in the result; a key
// missing from one side reads as nil.
func diffSnapshots(a, b map[string]interface{}) map[string]domain.FieldDiff {
	fields := make(map[string]domain.FieldDiff)
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	for k := range keys {
		from := normalizeValue(a[k])
		to := normalizeValue(b[k])
		if !reflect.DeepEqual(from, to) {
			fields[k] = domain.FieldDiff{From: from, To: to}
		}
	}
	return fields
}

// fieldChange builds a changelog entry for one field, attaching a
// compact text patch when both sides are long strings.
func fieldChange(old, new interface{}) domain.FieldChange {
	change := domain.FieldChange{
		Old: normalizeValue(old),
		New: normalizeValue(new),
	}
	oldStr, oldOK := change.Old.(string)
	newStr, newOK := change.New.(string)
	if oldOK && newOK && (len(oldStr) > textdiff.PatchThreshold || len(newStr) > textdiff.PatchThreshold) {
		change.Patch = textdiff.Patch(oldStr, newStr)
	}
	return change
}

// parseEventTime accepts RFC 3339 with or without sub-second parts.
func parseEventTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Parse("2006-01-02 15:04:05", value)
	}
	return t, nil
}
