package calc

// EntryFeeConfig holds the resource counts and unit prices that make up a
// run's entry fee.
type EntryFeeConfig struct {
	EssenceRequired float64
	StoneRequired   float64
	EssencePriceWS  float64
	StonePriceWS    float64
}

// TotalEntryFeeWS computes the total entry fee for a run in white scrolls.
// Zero counts or prices are valid and simply contribute nothing.
func TotalEntryFeeWS(cfg EntryFeeConfig) float64 {
	essenceTotal := cfg.EssenceRequired * cfg.EssencePriceWS
	stoneTotal := cfg.StoneRequired * cfg.StonePriceWS
	return Round2(essenceTotal + stoneTotal)
}
