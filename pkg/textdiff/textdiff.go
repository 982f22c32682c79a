// Package textdiff renders compact text patches for long string fields,
// so changelog entries stay readable when a description changes.
package textdiff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// PatchThreshold is the length above which a string field change is
// summarized as a patch instead of repeating both values verbatim.
const PatchThreshold = 64

// Patch returns a URL-encoded unidiff-style patch transforming old
// into new.
func Patch(old, new string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, new, false)
	dmp.DiffCleanupSemantic(diffs)
	patches := dmp.PatchMake(old, diffs)
	return dmp.PatchToText(patches)
}

// Apply applies a patch produced by Patch to old and reports whether
// every hunk applied cleanly.
func Apply(old, patch string) (string, bool) {
	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patch)
	if err != nil {
		return old, false
	}
	result, applied := dmp.PatchApply(patches, old)
	for _, ok := range applied {
		if !ok {
			return result, false
		}
	}
	return result, true
}
