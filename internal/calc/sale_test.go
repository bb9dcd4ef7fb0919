package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAfterFeesWS(t *testing.T) {
	tests := []struct {
		name         string
		price        float64
		remainingFee float64
		want         float64
	}{
		{"no outstanding fee", 100, 0, 100},
		{"fee partially consumes the sale", 100, 40, 60},
		{"fee exceeds the sale, net goes negative", 30, 100, -70},
		{"negative remaining fee is clamped to zero", 50, -20, 50},
		{"zero price with outstanding fee", 0, 25, -25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NetAfterFeesWS(tt.price, tt.remainingFee), 1e-9)
		})
	}
}

func TestSaleSplitFor(t *testing.T) {
	ps := []ParticipantShare{
		{PlayerID: 1, ShareModifier: 1},
		{PlayerID: 2, ShareModifier: 1},
	}

	result := SaleSplitFor(140, 40, ps)
	assert.InDelta(t, 100.0, result.NetAfterFeesWS, 1e-9)
	require.Len(t, result.Split.PerParticipant, 2)
	assert.InDelta(t, 50.0, result.Split.PerParticipant[0].AmountWS, 1e-9)
	assert.InDelta(t, 50.0, result.Split.PerParticipant[1].AmountWS, 1e-9)
}

func TestSaleSplitForNegativeNet(t *testing.T) {
	ps := []ParticipantShare{
		{PlayerID: 1, ShareModifier: 1},
		{PlayerID: 2, ShareModifier: 1},
	}

	result := SaleSplitFor(20, 70, ps)
	assert.InDelta(t, -50.0, result.NetAfterFeesWS, 1e-9)
	assert.InDelta(t, -25.0, result.Split.PerParticipant[0].AmountWS, 1e-9)
	assert.InDelta(t, -25.0, result.Split.PerParticipant[1].AmountWS, 1e-9)
}
