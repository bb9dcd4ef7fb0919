package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalEntryFeeWS(t *testing.T) {
	tests := []struct {
		name string
		cfg  EntryFeeConfig
		want float64
	}{
		{
			name: "standard run",
			cfg:  EntryFeeConfig{EssenceRequired: 2, StoneRequired: 2, EssencePriceWS: 30, StonePriceWS: 20},
			want: 100,
		},
		{
			name: "zero counts yield zero fee",
			cfg:  EntryFeeConfig{EssenceRequired: 0, StoneRequired: 0, EssencePriceWS: 55.5, StonePriceWS: 12.25},
			want: 0,
		},
		{
			name: "zero prices yield zero fee",
			cfg:  EntryFeeConfig{EssenceRequired: 3, StoneRequired: 4, EssencePriceWS: 0, StonePriceWS: 0},
			want: 0,
		},
		{
			name: "fractional prices round to cents",
			cfg:  EntryFeeConfig{EssenceRequired: 3, StoneRequired: 1, EssencePriceWS: 10.333, StonePriceWS: 0.005},
			want: 31.0,
		},
		{
			name: "essence only",
			cfg:  EntryFeeConfig{EssenceRequired: 5, EssencePriceWS: 7.5},
			want: 37.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TotalEntryFeeWS(tt.cfg), 1e-9)
		})
	}
}

func TestTotalEntryFeeWSLinearity(t *testing.T) {
	base := EntryFeeConfig{EssenceRequired: 2, StoneRequired: 3, EssencePriceWS: 10, StonePriceWS: 4}
	doubled := EntryFeeConfig{EssenceRequired: 4, StoneRequired: 6, EssencePriceWS: 10, StonePriceWS: 4}
	assert.InDelta(t, 2*TotalEntryFeeWS(base), TotalEntryFeeWS(doubled), 1e-9)
}
