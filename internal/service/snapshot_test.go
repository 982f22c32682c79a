package service

import (
	"strings"
	"testing"

	"github.com/planhub/collab-event-service/pkg/textdiff"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"

	"github.com/planhub/collab-event-service/internal/domain"
)

var snapshotGenFields = []string{
	domain.FieldTitle,
	domain.FieldDescription,
	domain.FieldStartTime,
	domain.FieldEndTime,
	domain.FieldLocation,
	domain.FieldIsRecurring,
	domain.FieldRecurrencePattern,
}

// genSnapshot draws snapshots holding a random subset of the event
// fields, each carrying either a short string or a bool.
func genSnapshot() gopter.Gen {
	return func(p *gopter.GenParameters) *gopter.GenResult {
		snapshot := map[string]interface{}{}
		for _, field := range snapshotGenFields {
			switch p.Rng.Intn(3) {
			case 0:
				// field left out of this snapshot
			case 1:
				snapshot[field] = genWord(p)
			default:
				snapshot[field] = p.Rng.Intn(2) == 0
			}
		}
		return gopter.NewGenResult(snapshot, gopter.NoShrinker)
	}
}

func genWord(p *gopter.GenParameters) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	word := make([]byte, p.Rng.Intn(8))
	for i := range word {
		word[i] = letters[p.Rng.Intn(len(letters))]
	}
	return string(word)
}

func TestDiffSnapshotsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("diff with itself is empty", prop.ForAll(
		func(a map[string]interface{}) bool {
			return len(diffSnapshots(a, a)) == 0
		},
		genSnapshot(),
	))

	properties.Property("diff is anti-symmetric", prop.ForAll(
		func(a, b map[string]interface{}) bool {
			forward := diffSnapshots(a, b)
			backward := diffSnapshots(b, a)
			if len(forward) != len(backward) {
				return false
			}
			for key, fd := range forward {
				bd, ok := backward[key]
				if !ok {
					return false
				}
				if !valuesEqual(fd.From, bd.To) || !valuesEqual(fd.To, bd.From) {
					return false
				}
			}
			return true
		},
		genSnapshot(),
		genSnapshot(),
	))

	properties.Property("differing fields carry the originals", prop.ForAll(
		func(a, b map[string]interface{}) bool {
			for key, fd := range diffSnapshots(a, b) {
				if !valuesEqual(fd.From, a[key]) || !valuesEqual(fd.To, b[key]) {
					return false
				}
			}
			return true
		},
		genSnapshot(),
		genSnapshot(),
	))

	properties.TestingRun(t)
}

func TestFieldChangeLongStringsGetPatch(t *testing.T) {
	short := fieldChange("a", "b")
	if short.Patch != "" {
		t.Fatalf("short strings should not carry a patch, got %q", short.Patch)
	}

	oldText := strings.Repeat("meeting notes before ", 10)
	newText := strings.Repeat("meeting notes after ", 10)
	long := fieldChange(oldText, newText)
	if long.Patch == "" {
		t.Fatal("long strings should carry a patch")
	}

	restored, ok := textdiff.Apply(oldText, long.Patch)
	if !ok || restored != newText {
		t.Fatalf("patch did not round-trip: ok=%v", ok)
	}
}

func TestFieldChangeMixedTypes(t *testing.T) {
	change := fieldChange(false, true)
	if change.Patch != "" {
		t.Fatal("non-string values must not carry a patch")
	}
	if change.Old != false || change.New != true {
		t.Fatalf("unexpected change: %+v", change)
	}
}
