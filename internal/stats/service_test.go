package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(month, d int) time.Time {
	return time.Date(2026, time.Month(month), d, 0, 0, 0, 0, time.UTC)
}

func TestBuildProfileAggregation(t *testing.T) {
	runs := []RunFacts{
		{ID: 1, RunNumber: 7, Date: day(1, 5), EntryFeeWS: 100, DropsCount: 3},
		{ID: 2, RunNumber: 8, Date: day(2, 10), EntryFeeWS: 50, DropsCount: 1},
	}
	sales := []SaleFacts{
		{RunID: 1, Date: day(1, 6), GrossWS: 40, NetWS: 0},
		{RunID: 1, Date: day(1, 20), GrossWS: 70, NetWS: 10},
		{RunID: 2, Date: day(2, 11), GrossWS: 80, NetWS: 30},
	}

	p := buildProfile(runs, sales)

	assert.Equal(t, 190.0, p.Totals.GrossWS)
	assert.Equal(t, 40.0, p.Totals.NetWS)
	assert.Equal(t, 3, p.Totals.TotalSales)
	assert.Equal(t, 2, p.Totals.TotalRuns)

	require.Len(t, p.MonthlyEarnings, 2)
	jan := p.MonthlyEarnings[0]
	assert.Equal(t, "2026-01", jan.Month)
	assert.Equal(t, 110.0, jan.GrossWS)
	assert.Equal(t, 10.0, jan.NetWS)
	assert.Equal(t, 2, jan.SalesCount)
	assert.Equal(t, 1, jan.RunsCount)

	feb := p.MonthlyEarnings[1]
	assert.Equal(t, "2026-02", feb.Month)
	assert.Equal(t, 1, feb.SalesCount)
	assert.Equal(t, 1, feb.RunsCount)

	require.Len(t, p.RunEarnings, 2)
	assert.Equal(t, int64(7), p.RunEarnings[0].RunNumber)
	assert.Equal(t, 110.0, p.RunEarnings[0].GrossWS)
	assert.Equal(t, 10.0, p.RunEarnings[0].NetWS)
	assert.Equal(t, 2, p.RunEarnings[0].SalesCount)
	assert.Equal(t, 3, p.RunEarnings[0].DropsCount)
	assert.Equal(t, 10.0, p.RunEarnings[0].CumulativeNetWS)
	assert.Equal(t, 40.0, p.RunEarnings[1].CumulativeNetWS)
}

func TestBuildProfileSalesOnlyMonth(t *testing.T) {
	// A sale dated in a month with no runs still gets a bucket.
	runs := []RunFacts{{ID: 1, Date: day(1, 5)}}
	sales := []SaleFacts{{RunID: 1, Date: day(3, 2), GrossWS: 25, NetWS: 25}}

	p := buildProfile(runs, sales)

	require.Len(t, p.MonthlyEarnings, 2)
	assert.Equal(t, "2026-03", p.MonthlyEarnings[1].Month)
	assert.Equal(t, 0, p.MonthlyEarnings[1].RunsCount)
	assert.Equal(t, 1, p.MonthlyEarnings[1].SalesCount)
}

func TestBuildProfileEmpty(t *testing.T) {
	p := buildProfile(nil, nil)

	assert.Equal(t, 0.0, p.Totals.GrossWS)
	assert.Equal(t, 0, p.Totals.TotalRuns)
	assert.Empty(t, p.MonthlyEarnings)
	assert.Empty(t, p.RunEarnings)
}
