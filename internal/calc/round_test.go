package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already two decimals", 12.34, 12.34},
		{"rounds down", 3.333333, 3.33},
		{"rounds up", 3.336, 3.34},
		{"half cent rounds up", 1.005, 1.01},
		{"negative value", -25.005, -25.0},
		{"zero", 0, 0},
		{"float drift", 0.1 + 0.2, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Round2(tt.in), 1e-9)
		})
	}
}

func TestRound2Idempotent(t *testing.T) {
	values := []float64{3.333333, -17.891, 0.005, 1234.5678, -0.001, 99.999}
	for _, v := range values {
		once := Round2(v)
		assert.Equal(t, once, Round2(once), "Round2 should be idempotent for %v", v)
	}
}
