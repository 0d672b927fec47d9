//go:build unit

package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func mustInterval(t *testing.T, start, end time.Time) Interval {
	t.Helper()
	iv, err := NewInterval(start, end)
	require.NoError(t, err)
	return iv
}

func TestNewInterval_RejectsEmptyAndReversed(t *testing.T) {
	_, err := NewInterval(ts(10, 0), ts(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval(ts(11, 0), ts(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestInterval_Overlaps(t *testing.T) {
	base := mustInterval(t, ts(10, 0), ts(11, 0))

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", mustInterval(t, ts(10, 0), ts(11, 0)), true},
		{"contained", mustInterval(t, ts(10, 15), ts(10, 45)), true},
		{"containing", mustInterval(t, ts(9, 0), ts(12, 0)), true},
		{"overlaps start", mustInterval(t, ts(9, 30), ts(10, 30)), true},
		{"overlaps end", mustInterval(t, ts(10, 30), ts(11, 30)), true},
		{"touches before", mustInterval(t, ts(9, 0), ts(10, 0)), false},
		{"touches after", mustInterval(t, ts(11, 0), ts(12, 0)), false},
		{"well before", mustInterval(t, ts(8, 0), ts(9, 0)), false},
		{"well after", mustInterval(t, ts(12, 0), ts(13, 0)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestInterval_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	iv := mustInterval(t, time.Date(2026, 3, 2, 19, 0, 0, 0, loc), time.Date(2026, 3, 2, 20, 0, 0, 0, loc))
	assert.Equal(t, ts(10, 0), iv.Start())
	assert.Equal(t, 60, iv.DurationMinutes())
}
