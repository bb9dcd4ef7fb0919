package calc

import "math"

// ParticipantShare identifies a run participant and their proportional
// weight in the split. A modifier of 1 is an even share.
type ParticipantShare struct {
	PlayerID      int64
	ShareModifier float64
}

// SplitAmount is one participant's rounded share of a split total.
// Amounts can be negative when entry fees exceed sale proceeds.
type SplitAmount struct {
	PlayerID int64
	AmountWS float64
}

// SplitResult is the outcome of splitting an amount across participants.
type SplitResult struct {
	Total          float64
	PerParticipant []SplitAmount
}

// SplitByShares distributes total across participants in proportion to
// their share modifiers. Each raw share is rounded to two decimals and the
// rounding remainder is handed out one cent at a time in participant list
// order, cycling from the start, so the final amounts always sum to
// Round2(total) exactly. First-listed participants absorb odd cents first.
//
// A non-positive weight sum should never happen, but corrupted weight data
// must not crash the calculation: it falls back to an equal split.
func SplitByShares(total float64, participants []ParticipantShare) SplitResult {
	if len(participants) == 0 {
		return SplitResult{Total: 0, PerParticipant: []SplitAmount{}}
	}

	per := make([]SplitAmount, len(participants))
	for i, p := range participants {
		per[i] = SplitAmount{PlayerID: p.PlayerID}
	}

	if total == 0 {
		return SplitResult{Total: 0, PerParticipant: per}
	}

	var weightSum float64
	for _, p := range participants {
		weightSum += p.ShareModifier
	}

	if weightSum <= 0 {
		equal := Round2(total / float64(len(participants)))
		for i := range per {
			per[i].AmountWS = equal
		}
	} else {
		for i, p := range participants {
			ratio := p.ShareModifier / weightSum
			per[i].AmountWS = Round2(total * ratio)
		}
	}

	var roundedSum float64
	for _, s := range per {
		roundedSum += s.AmountWS
	}
	remainder := Round2(total - roundedSum)

	cent := 0.01
	if remainder < 0 {
		cent = -0.01
	}
	for i := 0; math.Abs(remainder) > 0.001; i = (i + 1) % len(per) {
		per[i].AmountWS = Round2(per[i].AmountWS + cent)
		remainder = Round2(remainder - cent)
	}

	var finalTotal float64
	for _, s := range per {
		finalTotal += s.AmountWS
	}

	return SplitResult{Total: Round2(finalTotal), PerParticipant: per}
}
