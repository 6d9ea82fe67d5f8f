package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	base := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		w, err := NewWindow(base, base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, w.Duration())
	})

	t.Run("zero duration rejected", func(t *testing.T) {
		_, err := NewWindow(base, base)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("inverted rejected", func(t *testing.T) {
		_, err := NewWindow(base.Add(time.Hour), base)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("normalized to UTC", func(t *testing.T) {
		loc := time.FixedZone("WET+1", 3600)
		w, err := NewWindow(base.In(loc), base.Add(time.Hour).In(loc))
		require.NoError(t, err)
		assert.Equal(t, time.UTC, w.Start.Location())
		assert.True(t, w.Start.Equal(base))
	})
}

func TestWindowOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	w := func(startHour, endHour int) Window {
		return Window{
			Start: base.Add(time.Duration(startHour) * time.Hour),
			End:   base.Add(time.Duration(endHour) * time.Hour),
		}
	}

	cases := []struct {
		name string
		a, b Window
		want bool
	}{
		{"identical", w(10, 12), w(10, 12), true},
		{"partial overlap", w(10, 12), w(11, 13), true},
		{"contained", w(10, 14), w(11, 12), true},
		{"containing", w(11, 12), w(10, 14), true},
		{"disjoint", w(10, 12), w(14, 16), false},
		{"back-to-back after", w(10, 12), w(12, 14), false},
		{"back-to-back before", w(12, 14), w(10, 12), false},
		{"one minute overlap", w(10, 12), Window{Start: base.Add(11*time.Hour + 59*time.Minute), End: base.Add(13 * time.Hour)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}
