package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/edge-journal/internal/analytics"
	"github.com/yourusername/edge-journal/internal/evaluation"
	"github.com/yourusername/edge-journal/internal/models"
	"github.com/yourusername/edge-journal/internal/repository"
)

var serviceNow = time.Date(2024, time.March, 10, 18, 0, 0, 0, time.UTC)

// MockTradeRepository mocks trade repository
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) GetByAccount(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]*models.TradeRecord, error) {
	args := m.Called(ctx, accountID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TradeRecord), args.Error(1)
}

func (m *MockTradeRepository) Create(ctx context.Context, trade *models.TradeRecord) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) CreateBatch(ctx context.Context, trades []*models.TradeRecord) error {
	args := m.Called(ctx, trades)
	return args.Error(0)
}

// MockProfileRepository mocks evaluation profile repository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.EvaluationProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.EvaluationProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EvaluationProfile), args.Error(1)
}

func (m *MockProfileRepository) GetActive(ctx context.Context) ([]*models.EvaluationProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EvaluationProfile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.EvaluationProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockSnapshotRepository mocks snapshot repository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Save(ctx context.Context, snapshot *models.StatisticsSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) GetLatestByAccount(ctx context.Context, accountID uuid.UUID) (*models.StatisticsSnapshot, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatisticsSnapshot), args.Error(1)
}

type serviceFixture struct {
	service   *AnalyticsService
	trades    *MockTradeRepository
	profiles  *MockProfileRepository
	snapshots *MockSnapshotRepository
	hook      *test.Hook
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	f := &serviceFixture{
		trades:    &MockTradeRepository{},
		profiles:  &MockProfileRepository{},
		snapshots: &MockSnapshotRepository{},
		hook:      hook,
	}
	repos := &repository.Repositories{Trades: f.trades, Profiles: f.profiles, Snapshots: f.snapshots}
	settings := analytics.Settings{Seed: 42, MonteCarloRuns: 200, Location: time.UTC}

	svc, err := NewAnalyticsService(repos, settings, Options{
		CacheTTL:       time.Minute,
		PredictionRuns: 500,
		Now:            func() time.Time { return serviceNow },
	}, log)
	require.NoError(t, err)
	f.service = svc
	return f
}

func journalTrades(account uuid.UUID, pnls ...float64) []*models.TradeRecord {
	out := make([]*models.TradeRecord, len(pnls))
	for i, p := range pnls {
		pnl := p
		out[i] = &models.TradeRecord{
			ID:        uuid.New(),
			AccountID: account,
			Date:      serviceNow.AddDate(0, 0, i-len(pnls)).Add(-2 * time.Hour),
			PnL:       &pnl,
		}
	}
	return out
}

func evalProfile(account uuid.UUID) *models.EvaluationProfile {
	return &models.EvaluationProfile{
		ID:             uuid.New(),
		AccountID:      account,
		Name:           "50K eval",
		AccountSize:    50000,
		DailyLossLimit: 100,
		MaxDrawdown:    2500,
		ProfitTarget:   3000,
		Active:         true,
	}
}

func hasMessage(hook *test.Hook, message string) bool {
	for _, entry := range hook.AllEntries() {
		if entry.Message == message {
			return true
		}
	}
	return false
}

func TestNewAnalyticsServiceRequiresRepositories(t *testing.T) {
	_, err := NewAnalyticsService(nil, analytics.DefaultSettings(), Options{}, nil)
	assert.Error(t, err)

	_, err = NewAnalyticsService(&repository.Repositories{Trades: &MockTradeRepository{}},
		analytics.DefaultSettings(), Options{}, nil)
	assert.Error(t, err)
}

func TestNewAnalyticsServiceRejectsBadSettings(t *testing.T) {
	repos := &repository.Repositories{Trades: &MockTradeRepository{}, Profiles: &MockProfileRepository{}}
	settings := analytics.DefaultSettings()
	settings.KellyMultiplier = 2

	_, err := NewAnalyticsService(repos, settings, Options{}, nil)
	assert.Error(t, err)
}

func TestAccountStatisticsCachesResult(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()

	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).
		Return(journalTrades(account, 100, -50, 200, -25), nil).Once()
	f.snapshots.On("Save", ctx, mock.AnythingOfType("*models.StatisticsSnapshot")).Return(nil).Once()

	first, err := f.service.AccountStatistics(ctx, account, time.Time{}, time.Time{})
	require.NoError(t, err)
	second, err := f.service.AccountStatistics(ctx, account, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 4, first.TotalTrades)
	assert.InDelta(t, 225.0, first.TotalPnL, 1e-9)

	hits, misses := f.service.Cache().Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	f.trades.AssertExpectations(t)
	f.snapshots.AssertExpectations(t)
	assert.True(t, hasMessage(f.hook, "Statistics snapshot saved"))
}

func TestAccountStatisticsSnapshotContents(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()

	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).
		Return(journalTrades(account, 100, -50), nil)
	f.snapshots.On("Save", ctx, mock.MatchedBy(func(s *models.StatisticsSnapshot) bool {
		return s.AccountID == account && s.TotalTrades == 2 && s.TotalPnLCents == 5000 &&
			s.ComputedAt.Equal(serviceNow) && len(s.FullResults) > 0
	})).Return(nil).Once()

	_, err := f.service.AccountStatistics(ctx, account, time.Time{}, time.Time{})
	require.NoError(t, err)
	f.snapshots.AssertExpectations(t)
}

func TestAccountStatisticsSnapshotFailureIsNotFatal(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()

	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).
		Return(journalTrades(account, 100, -50), nil)
	f.snapshots.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

	result, err := f.service.AccountStatistics(ctx, account, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalTrades)
	assert.True(t, hasMessage(f.hook, "Failed to save statistics snapshot"))
}

func TestAccountStatisticsEmptyAccountSkipsSnapshot(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()

	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).Return([]*models.TradeRecord{}, nil)

	result, err := f.service.AccountStatistics(ctx, account, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalTrades)
	f.snapshots.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAccountStatisticsRepositoryError(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()

	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).Return(nil, errors.New("connection refused"))

	_, err := f.service.AccountStatistics(ctx, account, time.Time{}, time.Time{})
	assert.ErrorContains(t, err, "connection refused")
}

func TestImportTradesInvalidatesCache(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()

	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).
		Return(journalTrades(account, 100, -50), nil).Twice()
	f.snapshots.On("Save", ctx, mock.Anything).Return(nil)
	f.trades.On("CreateBatch", ctx, mock.Anything).Return(nil).Once()

	_, err := f.service.AccountStatistics(ctx, account, time.Time{}, time.Time{})
	require.NoError(t, err)

	pnl := 75.0
	imported := []*models.TradeRecord{{Date: serviceNow.Add(-time.Hour), PnL: &pnl, Symbol: " nq "}}
	require.NoError(t, f.service.ImportTrades(ctx, account, imported))
	assert.Equal(t, account, imported[0].AccountID)
	assert.Equal(t, "NQ", imported[0].Symbol)

	_, err = f.service.AccountStatistics(ctx, account, time.Time{}, time.Time{})
	require.NoError(t, err)

	f.trades.AssertExpectations(t)
	assert.True(t, hasMessage(f.hook, "Trades imported"))
}

func TestImportTradesRejectsInvalidBatch(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()

	pnl := 10.0
	trades := []*models.TradeRecord{
		{Date: serviceNow.Add(-time.Hour), PnL: &pnl},
		{PnL: &pnl},
		{AccountID: uuid.New(), Date: serviceNow, PnL: &pnl},
	}

	err := f.service.ImportTrades(ctx, account, trades)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trade 1: date is required")
	assert.Contains(t, err.Error(), "trade 2: belongs to account")
	f.trades.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestEvaluateProfileDailyBreach(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()
	profile := evalProfile(account)

	f.profiles.On("GetByID", ctx, profile.ID).Return(profile, nil)
	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).
		Return(journalTrades(account, 50, -150, 400), nil)

	result, err := f.service.EvaluateProfile(ctx, profile.ID)
	require.NoError(t, err)

	assert.Equal(t, evaluation.StatusFailed, result.State.Status)
	assert.True(t, result.State.DailyBreached)
	assert.Contains(t, result.State.FailReason, "daily loss limit breached")
	assert.Equal(t, serviceNow, result.EvaluatedAt)
	assert.True(t, hasMessage(f.hook, "Evaluation rule breached"))
}

func TestEvaluateProfileNotFound(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	id := uuid.New()

	f.profiles.On("GetByID", ctx, id).Return(nil, models.ErrNotFound)

	_, err := f.service.EvaluateProfile(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestEvaluateProfileNarrowsQueryToStartDate(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()
	profile := evalProfile(account)
	start := serviceNow.AddDate(0, 0, -5)
	profile.StartDate = &start

	f.trades.On("GetByAccount", ctx, account, start.Add(-24*time.Hour), time.Time{}).
		Return(journalTrades(account, 100), nil).Once()

	result, err := f.service.EvaluateWithProfile(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, evaluation.StatusActive, result.State.Status)
	f.trades.AssertExpectations(t)
}

func TestRefreshActiveEvaluationsReportsTransitions(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()
	profile := evalProfile(account)

	f.profiles.On("GetActive", ctx).Return([]*models.EvaluationProfile{profile}, nil)
	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).
		Return(journalTrades(account, 100), nil).Once()
	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).
		Return(journalTrades(account, 100, -200), nil).Once()

	first, err := f.service.RefreshActiveEvaluations(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, evaluation.StatusActive, first[0].State.Status)
	assert.False(t, hasMessage(f.hook, "Evaluation status changed"))

	second, err := f.service.RefreshActiveEvaluations(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, evaluation.StatusFailed, second[0].State.Status)
	assert.True(t, hasMessage(f.hook, "Evaluation status changed"))
}

func TestRefreshActiveEvaluationsContinuesPastErrors(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()

	broken := evalProfile(account)
	broken.AccountSize = 0
	healthy := evalProfile(account)

	f.profiles.On("GetActive", ctx).Return([]*models.EvaluationProfile{broken, healthy}, nil)
	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).Return(journalTrades(account, 100), nil)

	results, err := f.service.RefreshActiveEvaluations(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidProfile)
	require.Len(t, results, 1)
	assert.Equal(t, healthy.ID, results[0].Profile.ID)
}

func TestRefreshActiveEvaluationsLoadError(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.profiles.On("GetActive", ctx).Return(nil, errors.New("timeout"))

	_, err := f.service.RefreshActiveEvaluations(ctx)
	assert.ErrorContains(t, err, "timeout")
}

func TestPredictProfile(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()
	profile := evalProfile(account)
	profile.EvaluationDays = 30

	f.profiles.On("GetByID", ctx, profile.ID).Return(profile, nil)
	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).
		Return(journalTrades(account, 100, 150, -50, 300, -80), nil)

	result, err := f.service.PredictProfile(ctx, profile.ID, 0)
	require.NoError(t, err)

	p := result.Prediction
	assert.False(t, p.Insufficient)
	assert.Equal(t, 500, p.Runs)
	assert.Equal(t, 5, p.Samples)
	assert.InDelta(t, 100.0, p.PassRate+p.FailRate+p.ActiveRate, 1e-6)
	assert.Equal(t, evaluation.StatusActive, result.State.Status)
	assert.True(t, hasMessage(f.hook, "Evaluation outcome predicted"))
}

func TestPredictProfileInsufficientHistory(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	account := uuid.New()
	profile := evalProfile(account)

	f.trades.On("GetByAccount", ctx, account, time.Time{}, time.Time{}).
		Return(journalTrades(account, 100, 0), nil)

	result, err := f.service.PredictWithProfile(ctx, profile, 100)
	require.NoError(t, err)
	assert.True(t, result.Prediction.Insufficient)
	assert.Equal(t, 1, result.Prediction.Samples)
}

func TestInjectedRandomSourceIsShared(t *testing.T) {
	log, _ := test.NewNullLogger()
	trades := &MockTradeRepository{}
	repos := &repository.Repositories{Trades: trades, Profiles: &MockProfileRepository{}}
	settings := analytics.Settings{MonteCarloRuns: 100, Random: analytics.NewRandomSource(9)}

	svc, err := NewAnalyticsService(repos, settings, Options{
		PredictionRuns: 200,
		Now:            func() time.Time { return serviceNow },
	}, log)
	require.NoError(t, err)
	assert.IsType(t, &analytics.LockedSource{}, svc.randomSource())
	assert.Same(t, svc.randomSource(), svc.randomSource())

	ctx := context.Background()
	account := uuid.New()
	trades.On("GetByAccount", ctx, account, mock.Anything, mock.Anything).
		Return(journalTrades(account, 100, 150, -50, 300, -80), nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PredictWithProfile(ctx, evalProfile(account), 0)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestSaveProfileCreatesWhenMissing(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	profile := evalProfile(uuid.New())

	f.profiles.On("Update", ctx, profile).Return(models.ErrNotFound).Once()
	f.profiles.On("Create", ctx, profile).Return(nil).Once()

	require.NoError(t, f.service.SaveProfile(ctx, profile))
	f.profiles.AssertExpectations(t)
	assert.True(t, hasMessage(f.hook, "Evaluation profile changed"))
}

func TestSaveProfileUpdatesExisting(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	profile := evalProfile(uuid.New())

	f.profiles.On("Update", ctx, profile).Return(nil).Once()

	require.NoError(t, f.service.SaveProfile(ctx, profile))
	f.profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaveProfileRejectsInvalid(t *testing.T) {
	f := newServiceFixture(t)
	profile := evalProfile(uuid.New())
	profile.AccountSize = -1

	assert.ErrorIs(t, f.service.SaveProfile(context.Background(), profile), models.ErrInvalidProfile)
}
