// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarget(t *testing.T) {
	tests := []struct {
		name                      string
		total, written, remaining int
		want                      int
	}{
		{"even split", 1600, 0, 4, 400},
		{"rounds up", 1600, 500, 3, 367},
		{"exact", 1500, 0, 3, 500},
		{"floor applies", 1000, 900, 2, MinSectionWords},
		{"overshoot", 1500, 2000, 2, MinSectionWords},
		{"last section", 1500, 1100, 1, 400},
		{"zero remaining treated as one", 1500, 1000, 0, 500},
		{"negative remaining treated as one", 1500, 1000, -3, 500},
		{"small article", 300, 0, 5, MinSectionWords},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Target(tt.total, tt.written, tt.remaining))
		})
	}
}

func TestTargetFloorAndMonotonic(t *testing.T) {
	for total := 0; total <= 3000; total += 250 {
		for remaining := 1; remaining <= 6; remaining++ {
			prev := Target(total, 0, remaining)
			assert.GreaterOrEqual(t, prev, MinSectionWords)
			for written := 50; written <= total+500; written += 50 {
				got := Target(total, written, remaining)
				assert.GreaterOrEqual(t, got, MinSectionWords)
				assert.LessOrEqual(t, got, prev, "target must not grow as written grows (total=%d written=%d remaining=%d)", total, written, remaining)
				prev = got
			}
		}
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   \n\t ", 0},
		{"one", 1},
		{"  ## عنوان بخش\n\nمتن   اول\tدوم  ", 5},
		{"a\r\nb", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountWords(tt.text), "%q", tt.text)
	}
}
