package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "partial overlap",
			a:    New(at(10, 0), at(11, 0)),
			b:    New(at(10, 30), at(11, 30)),
			want: true,
		},
		{
			name: "identical intervals",
			a:    New(at(10, 0), at(11, 0)),
			b:    New(at(10, 0), at(11, 0)),
			want: true,
		},
		{
			name: "one contains the other",
			a:    New(at(9, 0), at(12, 0)),
			b:    New(at(10, 0), at(10, 30)),
			want: true,
		},
		{
			name: "touching endpoints do not overlap",
			a:    New(at(10, 0), at(11, 0)),
			b:    New(at(11, 0), at(12, 0)),
			want: false,
		},
		{
			name: "disjoint",
			a:    New(at(9, 0), at(9, 30)),
			b:    New(at(11, 0), at(12, 0)),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestFromDuration(t *testing.T) {
	i := FromDuration(at(10, 0), 45)

	require.True(t, i.IsValid())
	assert.Equal(t, at(10, 0), i.Start)
	assert.Equal(t, at(10, 45), i.End)
	assert.Equal(t, 45, i.Minutes())
}

func TestContains(t *testing.T) {
	i := New(at(10, 0), at(11, 0))

	assert.True(t, i.Contains(at(10, 0)), "start is inclusive")
	assert.True(t, i.Contains(at(10, 59)))
	assert.False(t, i.Contains(at(11, 0)), "end is exclusive")
	assert.False(t, i.Contains(at(9, 59)))
}

func TestIsValid(t *testing.T) {
	assert.True(t, New(at(10, 0), at(10, 1)).IsValid())
	assert.False(t, New(at(10, 0), at(10, 0)).IsValid(), "empty interval is invalid")
	assert.False(t, New(at(11, 0), at(10, 0)).IsValid(), "inverted interval is invalid")
}
