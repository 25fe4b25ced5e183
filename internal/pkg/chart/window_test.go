package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name          string
		total         int
		displayPoints int
		wantStart     int
		wantEnd       int
	}{
		{"fewer buffered than requested", 30, 50, 0, 30},
		{"more buffered than requested", 500, 50, 450, 500},
		{"exact fit", 50, 50, 0, 50},
		{"empty stream", 0, 50, 0, 0},
		{"zero points requested", 30, 0, 30, 30},
		{"negative points requested", 30, -5, 30, 30},
		{"negative total", -3, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.total, tt.displayPoints)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.GreaterOrEqual(t, end, start)
		})
	}
}
