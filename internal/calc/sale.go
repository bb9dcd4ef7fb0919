package calc

import "math"

// NetAfterFeesWS returns the sale proceeds left after covering whatever
// portion of the run's entry fee is still unpaid. The result is negative
// when the unpaid fee exceeds the sale price: the participants collectively
// owe money back to the pool.
func NetAfterFeesWS(totalPriceWS, remainingUnpaidEntryFeeWS float64) float64 {
	return Round2(totalPriceWS - math.Max(0, remainingUnpaidEntryFeeWS))
}

// SaleSplit pairs a sale's net amount with its per-participant split.
type SaleSplit struct {
	NetAfterFeesWS float64
	Split          SplitResult
}

// SaleSplitFor computes a sale's net-after-fees amount and splits it across
// the run's participants by share modifier.
func SaleSplitFor(totalPriceWS, remainingUnpaidEntryFeeWS float64, participants []ParticipantShare) SaleSplit {
	net := NetAfterFeesWS(totalPriceWS, remainingUnpaidEntryFeeWS)
	return SaleSplit{
		NetAfterFeesWS: net,
		Split:          SplitByShares(net, participants),
	}
}
