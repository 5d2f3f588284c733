package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		s1, e1 time.Time
		s2, e2 time.Time
		want   bool
	}{
		{"identical slots", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"partial overlap front", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"partial overlap back", at(10, 30), at(11, 30), at(10, 0), at(11, 0), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"touching end-to-start is free", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"touching start-to-end is free", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(8, 0), at(9, 0), at(14, 0), at(15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestSlotEnd(t *testing.T) {
	start := at(10, 0)
	assert.Equal(t, at(11, 0), SlotEnd(start))
}
