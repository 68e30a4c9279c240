package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/edge-journal/internal/database"
	"github.com/yourusername/edge-journal/internal/models"
)

func setupRepositories(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewSQLiteRepositories(database.SetupTestSQLite(t))
	require.NoError(t, err)
	return repos
}

func pnl(v float64) *float64 { return &v }

func TestNewRepositoriesRequiresDB(t *testing.T) {
	_, err := NewRepositories(nil)
	assert.Error(t, err)

	_, err = NewSQLiteRepositories(nil)
	assert.Error(t, err)

	_, err = NewRepositoriesFromStore(nil)
	assert.Error(t, err)
}

func TestTradeRepositoryRoundTrip(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	account := uuid.New()

	open := time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)
	closed := open.Add(45 * time.Minute)
	trade := &models.TradeRecord{
		AccountID:     account,
		Date:          open,
		Symbol:        "ES",
		Side:          models.TradeSideLong,
		PnL:           pnl(250.5),
		Fees:          4.2,
		RMultiple:     pnl(1.5),
		Playbook:      "opening-range",
		Emotion:       "calm",
		AssetClass:    "futures",
		CloseDate:     &closed,
		FollowedRules: true,
	}
	require.NoError(t, repos.Trades.Create(ctx, trade))
	assert.NotEqual(t, uuid.Nil, trade.ID)

	got, err := repos.Trades.GetByAccount(ctx, account, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, trade.ID, got[0].ID)
	assert.True(t, open.Equal(got[0].Date))
	assert.Equal(t, models.TradeSideLong, got[0].Side)
	require.NotNil(t, got[0].PnL)
	assert.InDelta(t, 250.5, *got[0].PnL, 1e-9)
	require.NotNil(t, got[0].CloseDate)
	assert.True(t, closed.Equal(*got[0].CloseDate))
	assert.True(t, got[0].FollowedRules)
	assert.Equal(t, "opening-range", got[0].Playbook)
}

func TestTradeRepositoryNullableColumns(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	account := uuid.New()

	trade := &models.TradeRecord{AccountID: account, Date: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)}
	require.NoError(t, repos.Trades.Create(ctx, trade))

	got, err := repos.Trades.GetByAccount(ctx, account, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].PnL)
	assert.Nil(t, got[0].RMultiple)
	assert.Nil(t, got[0].CloseDate)
}

func TestTradeRepositoryCreateRequiresAccount(t *testing.T) {
	repos := setupRepositories(t)

	err := repos.Trades.Create(context.Background(), &models.TradeRecord{Date: time.Now()})
	assert.ErrorIs(t, err, models.ErrInvalidID)
}

func TestTradeRepositoryBatchAndRange(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	account := uuid.New()
	other := uuid.New()

	base := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	var trades []*models.TradeRecord
	for i := 0; i < 10; i++ {
		trades = append(trades, &models.TradeRecord{
			AccountID: account,
			Date:      base.AddDate(0, 0, 9-i),
			PnL:       pnl(float64(i * 10)),
		})
	}
	trades = append(trades, &models.TradeRecord{AccountID: other, Date: base, PnL: pnl(5)})
	require.NoError(t, repos.Trades.CreateBatch(ctx, trades))

	all, err := repos.Trades.GetByAccount(ctx, account, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 10)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.Before(all[i-1].Date), "trades ordered by date")
	}

	window, err := repos.Trades.GetByAccount(ctx, account, base.AddDate(0, 0, 2), base.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Len(t, window, 3)

	from, err := repos.Trades.GetByAccount(ctx, account, base.AddDate(0, 0, 8), time.Time{})
	require.NoError(t, err)
	assert.Len(t, from, 2)
}

func TestTradeRepositoryBatchEmpty(t *testing.T) {
	repos := setupRepositories(t)
	assert.NoError(t, repos.Trades.CreateBatch(context.Background(), nil))
}

func newProfile(account uuid.UUID, name string) *models.EvaluationProfile {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.EvaluationProfile{
		AccountID:        account,
		Name:             name,
		Firm:             "Apex",
		AccountSize:      50000,
		DailyLossLimit:   2,
		DailyLossUnit:    models.LimitUnitPercent,
		MaxDrawdown:      2500,
		MaxDrawdownUnit:  models.LimitUnitAbsolute,
		ProfitTarget:     3000,
		ProfitTargetUnit: models.LimitUnitAbsolute,
		EvaluationDays:   30,
		MinTradingDays:   5,
		StartDate:        &start,
		TrailingDrawdown: true,
		Active:           true,
	}
}

func TestProfileRepositoryLifecycle(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	account := uuid.New()

	profile := newProfile(account, "50K eval")
	require.NoError(t, repos.Profiles.Create(ctx, profile))

	got, err := repos.Profiles.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "50K eval", got.Name)
	assert.Equal(t, models.LimitUnitPercent, got.DailyLossUnit)
	assert.InDelta(t, 1000.0, got.DailyLossLimitAbs(), 1e-9)
	assert.True(t, got.TrailingDrawdown)
	require.NotNil(t, got.StartDate)
	assert.True(t, profile.StartDate.Equal(*got.StartDate))

	got.Active = false
	got.ProfitTarget = 4000
	require.NoError(t, repos.Profiles.Update(ctx, got))

	updated, err := repos.Profiles.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.InDelta(t, 4000.0, updated.ProfitTarget, 1e-9)
}

func TestProfileRepositoryGetActive(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	account := uuid.New()

	inactive := newProfile(account, "archived")
	inactive.Active = false
	require.NoError(t, repos.Profiles.Create(ctx, newProfile(account, "b-eval")))
	require.NoError(t, repos.Profiles.Create(ctx, newProfile(account, "a-eval")))
	require.NoError(t, repos.Profiles.Create(ctx, inactive))

	active, err := repos.Profiles.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "a-eval", active[0].Name)
	assert.Equal(t, "b-eval", active[1].Name)
}

func TestProfileRepositoryErrors(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	_, err := repos.Profiles.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)

	missing := newProfile(uuid.New(), "ghost")
	missing.ID = uuid.New()
	assert.ErrorIs(t, repos.Profiles.Update(ctx, missing), models.ErrNotFound)

	invalid := newProfile(uuid.New(), "bad")
	invalid.AccountSize = 0
	assert.ErrorIs(t, repos.Profiles.Create(ctx, invalid), models.ErrInvalidProfile)
}

func TestSnapshotRepositoryLatest(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	account := uuid.New()

	_, err := repos.Snapshots.GetLatestByAccount(ctx, account)
	assert.ErrorIs(t, err, models.ErrNotFound)

	older := &models.StatisticsSnapshot{
		AccountID:     account,
		ComputedAt:    time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		TotalTrades:   10,
		TotalPnLCents: 15000,
		FullResults:   []byte(`{"total_trades":10}`),
	}
	newer := &models.StatisticsSnapshot{
		AccountID:     account,
		ComputedAt:    time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC),
		TotalTrades:   12,
		TotalPnLCents: 17550,
		WinRate:       58.3,
		RiskOfRuin:    4.5,
		FullResults:   []byte(`{"total_trades":12}`),
	}
	require.NoError(t, repos.Snapshots.Save(ctx, newer))
	require.NoError(t, repos.Snapshots.Save(ctx, older))

	latest, err := repos.Snapshots.GetLatestByAccount(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
	assert.Equal(t, 12, latest.TotalTrades)
	assert.InDelta(t, 175.50, latest.GetTotalPnL(), 1e-9)
	assert.JSONEq(t, `{"total_trades":12}`, string(latest.FullResults))
}
