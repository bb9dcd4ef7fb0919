package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func participants(weights ...float64) []ParticipantShare {
	ps := make([]ParticipantShare, len(weights))
	for i, w := range weights {
		ps[i] = ParticipantShare{PlayerID: int64(i + 1), ShareModifier: w}
	}
	return ps
}

func splitSum(result SplitResult) float64 {
	var sum float64
	for _, s := range result.PerParticipant {
		sum += s.AmountWS
	}
	return sum
}

func TestSplitByShares(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []ParticipantShare
		wantAmounts  []float64
	}{
		{
			name:         "single participant gets the whole total",
			total:        33.33,
			participants: participants(1),
			wantAmounts:  []float64{33.33},
		},
		{
			name:         "remainder cent goes to the first participant",
			total:        10,
			participants: participants(1, 1, 1),
			wantAmounts:  []float64{3.34, 3.33, 3.33},
		},
		{
			name:         "negative total splits evenly",
			total:        -50,
			participants: participants(1, 1),
			wantAmounts:  []float64{-25.00, -25.00},
		},
		{
			name:         "weighted split",
			total:        90,
			participants: participants(2, 1),
			wantAmounts:  []float64{60.00, 30.00},
		},
		{
			name:         "zero weight participant receives exactly zero",
			total:        50,
			participants: participants(0, 1),
			wantAmounts:  []float64{0, 50.00},
		},
		{
			name:         "zero total gives everyone zero regardless of weights",
			total:        0,
			participants: participants(3, 1, 0.5),
			wantAmounts:  []float64{0, 0, 0},
		},
		{
			name:         "non-positive weight sum falls back to equal split",
			total:        10,
			participants: participants(0, 0, 0),
			wantAmounts:  []float64{3.34, 3.33, 3.33},
		},
		{
			name:         "negative remainder taken from the first participant",
			total:        -10,
			participants: participants(1, 1, 1),
			wantAmounts:  []float64{-3.34, -3.33, -3.33},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplitByShares(tt.total, tt.participants)
			require.Len(t, result.PerParticipant, len(tt.wantAmounts))
			for i, want := range tt.wantAmounts {
				assert.InDelta(t, want, result.PerParticipant[i].AmountWS, 1e-9,
					"participant %d", result.PerParticipant[i].PlayerID)
			}
			assert.InDelta(t, Round2(tt.total), result.Total, 1e-9)
		})
	}
}

func TestSplitBySharesEmptyList(t *testing.T) {
	result := SplitByShares(100, nil)
	assert.Zero(t, result.Total)
	assert.Empty(t, result.PerParticipant)
}

// The rounded shares must always sum to the rounded total, no matter how
// awkward the weights are.
func TestSplitBySharesConservation(t *testing.T) {
	cases := []struct {
		total   float64
		weights []float64
	}{
		{100, []float64{1, 1, 1, 1, 1, 1, 1}},
		{0.01, []float64{1, 1, 1}},
		{-0.07, []float64{1, 2, 3}},
		{999.99, []float64{0.3, 0.3, 0.4}},
		{123.45, []float64{7, 11, 13, 17}},
		{-1234.56, []float64{1, 1, 1, 1, 1}},
		{55.55, []float64{0, 0, 1}},
	}

	for _, c := range cases {
		result := SplitByShares(c.total, participants(c.weights...))
		assert.InDelta(t, Round2(c.total), Round2(splitSum(result)), 1e-9,
			"total=%v weights=%v", c.total, c.weights)
	}
}

func TestSplitBySharesEqualWeightFairness(t *testing.T) {
	result := SplitByShares(100, participants(1, 1, 1, 1, 1, 1))
	for i, a := range result.PerParticipant {
		for j, b := range result.PerParticipant {
			diff := math.Abs(a.AmountWS - b.AmountWS)
			assert.LessOrEqual(t, diff, 0.01+1e-9,
				"participants %d and %d differ by more than a cent", i, j)
		}
	}
}

func TestSplitBySharesSignConsistency(t *testing.T) {
	positive := SplitByShares(77.77, participants(1, 2, 3, 4))
	for _, s := range positive.PerParticipant {
		assert.GreaterOrEqual(t, s.AmountWS, 0.0)
	}

	negative := SplitByShares(-77.77, participants(1, 2, 3, 4))
	for _, s := range negative.PerParticipant {
		assert.LessOrEqual(t, s.AmountWS, 0.0)
	}
}
