package textdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchRoundTrip(t *testing.T) {
	old := "Weekly sync with the platform team, room 4A."
	new := "Weekly sync with the infra team, room 7C."

	patch := Patch(old, new)
	assert.NotEmpty(t, patch)

	restored, ok := Apply(old, patch)
	assert.True(t, ok)
	assert.Equal(t, new, restored)
}

func TestPatchIdentical(t *testing.T) {
	patch := Patch("same", "same")
	restored, ok := Apply("same", patch)
	assert.True(t, ok)
	assert.Equal(t, "same", restored)
}

func TestApplyInvalidPatch(t *testing.T) {
	_, ok := Apply("text", "not a patch @@")
	assert.False(t, ok)
}
