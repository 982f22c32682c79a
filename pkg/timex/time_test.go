package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeJSONRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

	data, err := Time(now).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-14 09:30:00"`, string(data))

	var parsed Time
	require.NoError(t, parsed.UnmarshalJSON(data))
	assert.Equal(t, now.Unix(), parsed.Unix())
}

func TestTimeUnmarshalRFC3339Fallback(t *testing.T) {
	var parsed Time
	require.NoError(t, parsed.UnmarshalJSON([]byte(`"2026-03-14T09:30:00Z"`)))
	assert.Equal(t, int64(1773480600), parsed.Unix())
}

func TestTimeZeroMarshalsEmpty(t *testing.T) {
	data, err := Time(time.Time{}).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))

	var parsed Time
	require.NoError(t, parsed.UnmarshalJSON([]byte(`""`)))
	assert.True(t, parsed.IsZero())
}

func TestTimeScan(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	var fromTime Time
	require.NoError(t, fromTime.Scan(now))
	assert.Equal(t, now.Unix(), fromTime.Unix())

	var fromString Time
	require.NoError(t, fromString.Scan("2026-03-14 09:30:00"))
	assert.False(t, fromString.IsZero())

	var fromNil Time
	require.NoError(t, fromNil.Scan(nil))
	assert.True(t, fromNil.IsZero())

	var bad Time
	assert.Error(t, bad.Scan(42))
}
