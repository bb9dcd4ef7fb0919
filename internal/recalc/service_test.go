package recalc

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azmy/lootledger/internal/run"
	"github.com/azmy/lootledger/internal/sale"
)

type fakeRunStore struct {
	runs map[int64]*run.Run
}

func (f *fakeRunStore) GetByID(_ context.Context, id int64) (*run.Run, error) {
	return f.runs[id], nil
}

type fakeSaleStore struct {
	sales    []*sale.Sale
	replayed []int64
}

func (f *fakeSaleStore) ListByRun(_ context.Context, runID int64) ([]*sale.Sale, error) {
	var out []*sale.Sale
	for _, s := range f.sales {
		if s.RunID == runID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeSaleStore) SalesForDrop(_ context.Context, dropID int64) ([]*sale.Sale, error) {
	var out []*sale.Sale
	for _, s := range f.sales {
		for _, id := range s.DropIDs {
			if id == dropID {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSaleStore) ReplaceSplit(_ context.Context, saleID int64, netAfterFeesWS float64, splits []sale.SplitDetail) error {
	f.replayed = append(f.replayed, saleID)
	for _, s := range f.sales {
		if s.ID == saleID {
			s.NetAfterFeesWS = netAfterFeesWS
			s.SplitDetails = splits
			s.IsSettled = false
			return nil
		}
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func twoPlayerRun(id int64, totalEntryFeeWS float64) *run.Run {
	return &run.Run{
		ID:              id,
		TotalEntryFeeWS: totalEntryFeeWS,
		Participants: []run.Participant{
			{PlayerID: 1, ShareModifier: 1},
			{PlayerID: 2, ShareModifier: 1},
		},
	}
}

func saleAt(id, runID int64, priceWS float64, day int, dropIDs ...int64) *sale.Sale {
	return &sale.Sale{
		ID:           id,
		RunID:        runID,
		DropIDs:      dropIDs,
		TotalPriceWS: priceWS,
		Date:         time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecalculateRunFeeRecoveryOrdering(t *testing.T) {
	runs := &fakeRunStore{runs: map[int64]*run.Run{1: twoPlayerRun(1, 100)}}
	sales := &fakeSaleStore{sales: []*sale.Sale{
		saleAt(11, 1, 40, 1),
		saleAt(12, 1, 70, 2),
		saleAt(13, 1, 30, 3),
	}}

	svc := NewService(runs, sales, testLogger())
	require.NoError(t, svc.RecalculateRun(context.Background(), 1))

	// Early sales absorb the fee first; each recovers at most its gross.
	assert.Equal(t, 0.0, sales.sales[0].NetAfterFeesWS)
	assert.Equal(t, 10.0, sales.sales[1].NetAfterFeesWS)
	assert.Equal(t, 30.0, sales.sales[2].NetAfterFeesWS)

	for _, s := range sales.sales {
		var sum float64
		for _, d := range s.SplitDetails {
			sum += d.AmountWS
		}
		assert.InDelta(t, s.NetAfterFeesWS, sum, 0.001, "split must sum to net for sale %d", s.ID)
	}

	assert.Equal(t, 5.0, sales.sales[1].SplitDetails[0].AmountWS)
	assert.Equal(t, 5.0, sales.sales[1].SplitDetails[1].AmountWS)
	assert.Equal(t, 15.0, sales.sales[2].SplitDetails[0].AmountWS)
}

func TestRecalculateRunChronologicalNotInsertionOrder(t *testing.T) {
	runs := &fakeRunStore{runs: map[int64]*run.Run{1: twoPlayerRun(1, 100)}}
	// Inserted out of date order: the later-dated sale has the lower ID.
	sales := &fakeSaleStore{sales: []*sale.Sale{
		saleAt(11, 1, 70, 2),
		saleAt(12, 1, 40, 1),
	}}

	svc := NewService(runs, sales, testLogger())
	require.NoError(t, svc.RecalculateRun(context.Background(), 1))

	// The day-1 sale absorbs fee first despite being inserted second.
	assert.Equal(t, 0.0, sales.sales[1].NetAfterFeesWS)
	assert.Equal(t, 10.0, sales.sales[0].NetAfterFeesWS)
}

func TestRecalculateRunWeightedShares(t *testing.T) {
	r := &run.Run{
		ID:              1,
		TotalEntryFeeWS: 0,
		Participants: []run.Participant{
			{PlayerID: 1, ShareModifier: 2},
			{PlayerID: 2, ShareModifier: 1},
		},
	}
	runs := &fakeRunStore{runs: map[int64]*run.Run{1: r}}
	sales := &fakeSaleStore{sales: []*sale.Sale{saleAt(11, 1, 90, 1)}}

	svc := NewService(runs, sales, testLogger())
	require.NoError(t, svc.RecalculateRun(context.Background(), 1))

	require.Len(t, sales.sales[0].SplitDetails, 2)
	assert.Equal(t, 60.0, sales.sales[0].SplitDetails[0].AmountWS)
	assert.Equal(t, 30.0, sales.sales[0].SplitDetails[1].AmountWS)
}

func TestRecalculateRunFeeExceedsAllSales(t *testing.T) {
	runs := &fakeRunStore{runs: map[int64]*run.Run{1: twoPlayerRun(1, 100)}}
	sales := &fakeSaleStore{sales: []*sale.Sale{saleAt(11, 1, 40, 1)}}

	svc := NewService(runs, sales, testLogger())
	require.NoError(t, svc.RecalculateRun(context.Background(), 1))

	// The lone sale is consumed entirely by the fee; nothing to distribute.
	assert.Equal(t, 0.0, sales.sales[0].NetAfterFeesWS)
	for _, d := range sales.sales[0].SplitDetails {
		assert.Equal(t, 0.0, d.AmountWS)
	}
}

func TestRecalculateRunResetsPaidFlags(t *testing.T) {
	runs := &fakeRunStore{runs: map[int64]*run.Run{1: twoPlayerRun(1, 0)}}
	paid := saleAt(11, 1, 50, 1)
	paid.SplitDetails = []sale.SplitDetail{
		{PlayerID: 1, AmountWS: 25, IsPaid: true},
		{PlayerID: 2, AmountWS: 25, IsPaid: true},
	}
	paid.IsSettled = true
	sales := &fakeSaleStore{sales: []*sale.Sale{paid}}

	svc := NewService(runs, sales, testLogger())
	require.NoError(t, svc.RecalculateRun(context.Background(), 1))

	assert.False(t, paid.IsSettled)
	for _, d := range paid.SplitDetails {
		assert.False(t, d.IsPaid, "replay must reset paid flags")
	}
}

func TestRecalculateRunIdempotent(t *testing.T) {
	runs := &fakeRunStore{runs: map[int64]*run.Run{1: twoPlayerRun(1, 100)}}
	sales := &fakeSaleStore{sales: []*sale.Sale{
		saleAt(11, 1, 40, 1),
		saleAt(12, 1, 70, 2),
		saleAt(13, 1, 30, 3),
	}}

	svc := NewService(runs, sales, testLogger())
	require.NoError(t, svc.RecalculateRun(context.Background(), 1))

	first := make([]sale.Sale, len(sales.sales))
	for i, s := range sales.sales {
		first[i] = *s
	}

	require.NoError(t, svc.RecalculateRun(context.Background(), 1))

	for i, s := range sales.sales {
		assert.Equal(t, first[i].NetAfterFeesWS, s.NetAfterFeesWS)
		assert.Equal(t, first[i].SplitDetails, s.SplitDetails)
	}
}

func TestRecalculateRunMissingRunSkipped(t *testing.T) {
	runs := &fakeRunStore{runs: map[int64]*run.Run{}}
	sales := &fakeSaleStore{sales: []*sale.Sale{saleAt(11, 1, 40, 1)}}

	svc := NewService(runs, sales, testLogger())
	require.NoError(t, svc.RecalculateRun(context.Background(), 1))

	assert.Empty(t, sales.replayed, "missing run must not replay any sale")
}

func TestRecalculateForDropReplaysOwningRunOnce(t *testing.T) {
	runs := &fakeRunStore{runs: map[int64]*run.Run{1: twoPlayerRun(1, 0)}}
	sales := &fakeSaleStore{sales: []*sale.Sale{
		saleAt(11, 1, 40, 1, 7),
		saleAt(12, 1, 70, 2, 7, 8),
		saleAt(13, 1, 30, 3, 9),
	}}

	svc := NewService(runs, sales, testLogger())
	require.NoError(t, svc.RecalculateForDrop(context.Background(), 7))

	// Two sales reference drop 7 but the run replays once, touching all
	// three of its sales.
	assert.Equal(t, []int64{11, 12, 13}, sales.replayed)
}

func TestRecalculateForDropNoSales(t *testing.T) {
	runs := &fakeRunStore{runs: map[int64]*run.Run{}}
	sales := &fakeSaleStore{}

	svc := NewService(runs, sales, testLogger())
	require.NoError(t, svc.RecalculateForDrop(context.Background(), 7))
	assert.Empty(t, sales.replayed)
}
