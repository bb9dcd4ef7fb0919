package summary

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azmy/lootledger/internal/drop"
	"github.com/azmy/lootledger/internal/run"
	"github.com/azmy/lootledger/internal/sale"
)

type fakeRunStore struct {
	runs map[int64]*run.Run
}

func (f *fakeRunStore) GetByID(_ context.Context, id int64) (*run.Run, error) {
	return f.runs[id], nil
}

type fakeDropStore struct {
	drops []*drop.Drop
}

func (f *fakeDropStore) ListByRun(_ context.Context, runID int64) ([]*drop.Drop, error) {
	var out []*drop.Drop
	for _, d := range f.drops {
		if d.RunID == runID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeSaleStore struct {
	sales []*sale.Sale
}

func (f *fakeSaleStore) ListByRun(_ context.Context, runID int64) ([]*sale.Sale, error) {
	var out []*sale.Sale
	for _, s := range f.sales {
		if s.RunID == runID {
			out = append(out, s)
		}
	}
	return out, nil
}

func disenchanted(target drop.DisenchantTarget) *drop.Drop {
	return &drop.Drop{
		RunID:            1,
		Status:           drop.StatusDisenchanted,
		DisenchantedInto: &target,
	}
}

func TestRunSummaryAggregation(t *testing.T) {
	r := &run.Run{
		ID:              1,
		TotalEntryFeeWS: 100,
		EssencePriceWS:  10,
		StonePriceWS:    5,
		Participants: []run.Participant{
			{PlayerID: 1, ShareModifier: 1, PlayerName: "Ayla"},
			{PlayerID: 2, ShareModifier: 1, PlayerName: "Borin"},
		},
	}

	svc := NewService(
		&fakeRunStore{runs: map[int64]*run.Run{1: r}},
		&fakeDropStore{drops: []*drop.Drop{
			disenchanted(drop.DisenchantEssence),
			{RunID: 1, Status: drop.StatusUnsold},
		}},
		&fakeSaleStore{sales: []*sale.Sale{
			{
				ID: 11, RunID: 1, TotalPriceWS: 40, NetAfterFeesWS: 0,
				Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				SplitDetails: []sale.SplitDetail{
					{PlayerID: 1, AmountWS: 0, IsPaid: true},
					{PlayerID: 2, AmountWS: 0, IsPaid: true},
				},
			},
			{
				ID: 12, RunID: 1, TotalPriceWS: 70, NetAfterFeesWS: 10,
				Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				SplitDetails: []sale.SplitDetail{
					{PlayerID: 1, AmountWS: 5, IsPaid: true},
					{PlayerID: 2, AmountWS: 5, IsPaid: false},
				},
			},
		}},
	)

	s, err := svc.RunSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 100.0, s.Totals.TotalEntryFeeWS)
	assert.Equal(t, 110.0, s.Totals.TotalSalesWS)
	assert.Equal(t, 10.0, s.Totals.TotalNetAfterFeesWS)
	assert.Equal(t, 10.0, s.Totals.TotalDisenchantedWS)
	// Fees covered by sales (100) plus disenchant value (10) exceed the
	// fee, so nothing remains unpaid.
	assert.Equal(t, 0.0, s.Totals.UnpaidEntryFeeWS)

	require.Len(t, s.PerParticipant, 2)
	assert.Equal(t, "Ayla", s.PerParticipant[0].PlayerName)
	assert.Equal(t, 5.0, s.PerParticipant[0].AmountWS)
	assert.Equal(t, 0.0, s.PerParticipant[0].OwedWS)
	assert.Equal(t, 5.0, s.PerParticipant[1].AmountWS)
	assert.Equal(t, 5.0, s.PerParticipant[1].OwedWS)

	assert.Equal(t, 5.0, s.PaymentStatus.TotalOwedWS)
	assert.False(t, s.PaymentStatus.SplitsFullyPaid)
}

func TestRunSummaryNoActivity(t *testing.T) {
	r := &run.Run{
		ID:              1,
		TotalEntryFeeWS: 84,
		Participants: []run.Participant{
			{PlayerID: 1, ShareModifier: 1},
		},
	}

	svc := NewService(
		&fakeRunStore{runs: map[int64]*run.Run{1: r}},
		&fakeDropStore{},
		&fakeSaleStore{},
	)

	s, err := svc.RunSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 0.0, s.Totals.TotalSalesWS)
	assert.Equal(t, 84.0, s.Totals.UnpaidEntryFeeWS)
	assert.Equal(t, 0.0, s.PaymentStatus.TotalOwedWS)
	// Nothing is owed yet, so the run reads as fully paid.
	assert.True(t, s.PaymentStatus.SplitsFullyPaid)
}

func TestRunSummaryStoneDisenchantUsesStonePrice(t *testing.T) {
	r := &run.Run{
		ID:              1,
		TotalEntryFeeWS: 20,
		EssencePriceWS:  10,
		StonePriceWS:    4,
		Participants:    []run.Participant{{PlayerID: 1, ShareModifier: 1}},
	}

	svc := NewService(
		&fakeRunStore{runs: map[int64]*run.Run{1: r}},
		&fakeDropStore{drops: []*drop.Drop{
			disenchanted(drop.DisenchantStone),
			disenchanted(drop.DisenchantStone),
		}},
		&fakeSaleStore{},
	)

	s, err := svc.RunSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 8.0, s.Totals.TotalDisenchantedWS)
	assert.Equal(t, 12.0, s.Totals.UnpaidEntryFeeWS)
}

func TestRunSummaryMissingRun(t *testing.T) {
	svc := NewService(&fakeRunStore{runs: map[int64]*run.Run{}}, &fakeDropStore{}, &fakeSaleStore{})

	_, err := svc.RunSummary(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRunNotFound)
}
