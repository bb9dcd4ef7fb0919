package run

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/azmy/lootledger/internal/calc"
)

func TestEntryFeeConfig(t *testing.T) {
	r := &Run{
		EssenceRequired: 2,
		StoneRequired:   3,
		EssencePriceWS:  10.5,
		StonePriceWS:    4,
	}

	cfg := r.EntryFeeConfig()
	assert.Equal(t, 2.0, cfg.EssenceRequired)
	assert.Equal(t, 3.0, cfg.StoneRequired)
	assert.Equal(t, 33.0, calc.TotalEntryFeeWS(cfg))
}

func TestParticipantSharesPreservesOrder(t *testing.T) {
	r := &Run{
		Participants: []Participant{
			{PlayerID: 3, ShareModifier: 2},
			{PlayerID: 1, ShareModifier: 1},
			{PlayerID: 2, ShareModifier: 0.5},
		},
	}

	shares := r.ParticipantShares()
	assert.Equal(t, []calc.ParticipantShare{
		{PlayerID: 3, ShareModifier: 2},
		{PlayerID: 1, ShareModifier: 1},
		{PlayerID: 2, ShareModifier: 0.5},
	}, shares)
}

func TestHasParticipant(t *testing.T) {
	r := &Run{Participants: []Participant{{PlayerID: 1}, {PlayerID: 2}}}

	assert.True(t, r.HasParticipant(2))
	assert.False(t, r.HasParticipant(5))
}
