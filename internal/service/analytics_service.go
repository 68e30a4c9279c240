// Package service wires the analytics engine and the evaluation tracker to storage.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/edge-journal/internal/analytics"
	"github.com/yourusername/edge-journal/internal/evaluation"
	"github.com/yourusername/edge-journal/internal/logger"
	"github.com/yourusername/edge-journal/internal/metrics"
	"github.com/yourusername/edge-journal/internal/models"
	"github.com/yourusername/edge-journal/internal/repository"
)

// DefaultCacheTTL applies when Options.CacheTTL is unset
const DefaultCacheTTL = 5 * time.Minute

// Options configures the AnalyticsService
type Options struct {
	CacheTTL       time.Duration
	PredictionRuns int
	// Now overrides the clock used for evaluations
	Now func() time.Time
}

// ProfileEvaluation is an evaluation state together with its profile
type ProfileEvaluation struct {
	Profile     *models.EvaluationProfile `json:"profile"`
	State       evaluation.State          `json:"state"`
	EvaluatedAt time.Time                 `json:"evaluated_at"`
}

// ProfilePrediction is an outcome projection together with the state it starts from
type ProfilePrediction struct {
	ProfileEvaluation
	Prediction evaluation.Prediction `json:"prediction"`
}

// AnalyticsService computes statistics and evaluation states for journal accounts
type AnalyticsService struct {
	trades    repository.TradeRepository
	profiles  repository.ProfileRepository
	snapshots repository.SnapshotRepository
	cache     *ResultCache
	validator *TradeValidator
	settings  analytics.Settings
	runs      int
	now       func() time.Time

	logger        *logrus.Logger
	analyticsLog  *logger.AnalyticsLogger
	evaluationLog *logger.EvaluationLogger
	auditLog      *logger.AuditLogger

	mu         sync.Mutex
	lastStatus map[uuid.UUID]evaluation.Status
}

// NewAnalyticsService creates a new analytics service. Snapshots may be nil to
// skip persistence.
func NewAnalyticsService(
	repos *repository.Repositories,
	settings analytics.Settings,
	opts Options,
	log *logrus.Logger,
) (*AnalyticsService, error) {
	if repos == nil || repos.Trades == nil || repos.Profiles == nil {
		return nil, fmt.Errorf("trade and profile repositories are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analytics settings: %w", err)
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.PredictionRuns <= 0 {
		opts.PredictionRuns = evaluation.DefaultPredictionRuns
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Random != nil {
		settings.Random = analytics.NewLockedSource(settings.Random)
	}
	if log == nil {
		log = logrus.New()
	}

	return &AnalyticsService{
		trades:        repos.Trades,
		profiles:      repos.Profiles,
		snapshots:     repos.Snapshots,
		cache:         NewResultCache(opts.CacheTTL),
		validator:     NewTradeValidator(),
		settings:      settings,
		runs:          opts.PredictionRuns,
		now:           opts.Now,
		logger:        log,
		analyticsLog:  logger.NewAnalyticsLogger(log),
		evaluationLog: logger.NewEvaluationLogger(log),
		auditLog:      logger.NewAuditLogger(log),
		lastStatus:    make(map[uuid.UUID]evaluation.Status),
	}, nil
}

// Cache exposes the result cache
func (s *AnalyticsService) Cache() *ResultCache {
	return s.cache
}

// ImportTrades validates and stores trades for an account. Invalid trades are
// rejected as a whole batch.
func (s *AnalyticsService) ImportTrades(ctx context.Context, accountID uuid.UUID, trades []*models.TradeRecord) error {
	var problems []string
	for i, trade := range trades {
		if trade == nil {
			problems = append(problems, fmt.Sprintf("trade %d: trade is required", i))
			continue
		}
		if trade.AccountID == uuid.Nil {
			trade.AccountID = accountID
		}
		if trade.AccountID != accountID {
			problems = append(problems, fmt.Sprintf("trade %d: belongs to account %s", i, trade.AccountID))
			continue
		}
		s.validator.NormalizeTrade(trade)
		for _, msg := range s.validator.ValidateTrade(trade) {
			problems = append(problems, fmt.Sprintf("trade %d: %s", i, msg))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid trades:\n- %s", strings.Join(problems, "\n- "))
	}

	if err := s.trades.CreateBatch(ctx, trades); err != nil {
		return fmt.Errorf("failed to import trades: %w", err)
	}

	s.cache.InvalidateAccount(accountID)
	s.auditLog.LogTradesImported(accountID.String(), len(trades), s.now())
	return nil
}

// SaveProfile stores a new profile, or updates it when it already exists
func (s *AnalyticsService) SaveProfile(ctx context.Context, profile *models.EvaluationProfile) error {
	if err := models.ValidateProfile(profile); err != nil {
		return err
	}

	action := "updated"
	err := s.profiles.Update(ctx, profile)
	if errors.Is(err, models.ErrNotFound) {
		action = "created"
		err = s.profiles.Create(ctx, profile)
	}
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s.auditLog.LogProfileChange(profile.ID.String(), profile.AccountID.String(), action, profile.Active)
	return nil
}

// AccountStatistics computes (or serves from cache) the statistics of an
// account's trades between start and end. Zero bounds are open.
func (s *AnalyticsService) AccountStatistics(ctx context.Context, accountID uuid.UUID, start, end time.Time) (*analytics.StatisticsResult, error) {
	key := StatisticsKey{AccountID: accountID, Start: start, End: end}
	if cached, ok := s.cache.Get(key); ok {
		metrics.RecordStatistics(cached.TotalTrades, 0, true)
		s.analyticsLog.LogStatisticsComputed(accountID.String(), cached.TotalTrades, cached.TotalPnL, cached.WinRate, 0, true)
		return cached, nil
	}

	trades, err := s.trades.GetByAccount(ctx, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}

	began := time.Now()
	result := analytics.ComputeStatistics(trades, s.runSettings())
	elapsed := time.Since(began)

	s.cache.Set(key, &result)
	metrics.RecordStatistics(result.TotalTrades, elapsed.Seconds(), false)
	s.analyticsLog.LogStatisticsComputed(accountID.String(), result.TotalTrades, result.TotalPnL, result.WinRate,
		float64(elapsed.Microseconds())/1000, false)

	for _, w := range result.Warnings {
		metrics.RecordLowSampleWarning(w.Metric)
		s.analyticsLog.LogLowSample(accountID.String(), w.Metric, w.Message)
	}
	if result.RiskOfRuin.SampleSize > 0 {
		metrics.RecordRiskOfRuin(result.RiskOfRuin.RiskOfRuin)
		s.analyticsLog.LogRiskOfRuin(accountID.String(), result.RiskOfRuin.RiskOfRuin,
			result.RiskOfRuin.StartingCapital, result.RiskOfRuin.Runs, string(result.RiskOfRuin.Confidence))
	}

	s.saveSnapshot(ctx, accountID, start, end, &result)
	return &result, nil
}

// saveSnapshot persists a result; failures are logged, not returned
func (s *AnalyticsService) saveSnapshot(ctx context.Context, accountID uuid.UUID, start, end time.Time, result *analytics.StatisticsResult) {
	if s.snapshots == nil || result.TotalTrades == 0 {
		return
	}

	full, err := json.Marshal(result)
	if err != nil {
		s.logger.WithError(err).WithField("account_id", accountID).Warn("Failed to encode statistics snapshot")
		return
	}

	snapshot := &models.StatisticsSnapshot{
		AccountID:      accountID,
		ComputedAt:     s.now().UTC(),
		RangeStart:     start,
		RangeEnd:       end,
		TotalTrades:    result.TotalTrades,
		TotalPnLCents:  result.TotalPnLCents,
		WinRate:        result.WinRate,
		SharpeRatio:    result.SharpeRatio,
		MaxDrawdownPct: result.MaxDrawdownPct,
		RiskOfRuin:     result.RiskOfRuin.RiskOfRuin,
		FullResults:    full,
	}
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		s.logger.WithError(err).WithField("account_id", accountID).Warn("Failed to save statistics snapshot")
		return
	}

	metrics.RecordSnapshotSaved()
	s.analyticsLog.LogSnapshotSaved(accountID.String(), snapshot.ID.String())
}

// EvaluateProfile walks the trades of a stored profile
func (s *AnalyticsService) EvaluateProfile(ctx context.Context, profileID uuid.UUID) (*ProfileEvaluation, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return s.EvaluateWithProfile(ctx, profile)
}

// EvaluateWithProfile evaluates an account against a profile that need not be stored
func (s *AnalyticsService) EvaluateWithProfile(ctx context.Context, profile *models.EvaluationProfile) (*ProfileEvaluation, error) {
	if err := models.ValidateProfile(profile); err != nil {
		return nil, err
	}

	trades, err := s.trades.GetByAccount(ctx, profile.AccountID, s.evaluationWindowStart(profile), time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}

	now := s.now()
	state := evaluation.Evaluate(trades, profile, evaluation.Options{Now: now, Location: s.settings.Location})

	metrics.RecordEvaluation(profile.ID.String(), string(state.Status), state.CumPnL, state.DrawdownProgress)
	s.evaluationLog.LogEvaluation(profile.ID.String(), profile.Name, string(state.Status), state.CumPnL,
		state.MaxTrailingDD, state.DaysTraded)
	if state.Breached() {
		s.evaluationLog.LogBreach(profile.ID.String(), profile.Name, state.FailReason)
	}

	return &ProfileEvaluation{Profile: profile, State: state, EvaluatedAt: now}, nil
}

// evaluationWindowStart narrows the trade query to the evaluation period. The
// extra day covers zones west of UTC.
func (s *AnalyticsService) evaluationWindowStart(profile *models.EvaluationProfile) time.Time {
	if profile.StartDate == nil || profile.StartDate.IsZero() {
		return time.Time{}
	}
	return profile.StartDate.Add(-24 * time.Hour)
}

// PredictProfile projects the outcome of a stored profile. runs <= 0 uses the configured count.
func (s *AnalyticsService) PredictProfile(ctx context.Context, profileID uuid.UUID, runs int) (*ProfilePrediction, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return s.PredictWithProfile(ctx, profile, runs)
}

// PredictWithProfile projects the outcome of a profile that need not be stored
func (s *AnalyticsService) PredictWithProfile(ctx context.Context, profile *models.EvaluationProfile, runs int) (*ProfilePrediction, error) {
	evaluated, err := s.EvaluateWithProfile(ctx, profile)
	if err != nil {
		return nil, err
	}

	history, err := s.trades.GetByAccount(ctx, profile.AccountID, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load trade history: %w", err)
	}
	daily := evaluation.HistoricalDailyPnLs(history, evaluation.Options{Now: evaluated.EvaluatedAt, Location: s.settings.Location})

	if runs <= 0 {
		runs = s.runs
	}
	began := time.Now()
	prediction := evaluation.Predict(daily, evaluated.State, profile, evaluation.PredictOptions{
		Runs:   runs,
		Random: s.randomSource(),
	})
	metrics.RecordMonteCarloDuration(metrics.KindPrediction, time.Since(began).Seconds())

	if !prediction.Insufficient {
		metrics.UpdatePredictionPassRate(profile.ID.String(), prediction.PassRate)
	}
	s.evaluationLog.LogPrediction(profile.ID.String(), prediction.PassRate, prediction.FailRate, prediction.ActiveRate,
		prediction.Runs, string(prediction.Confidence), prediction.Insufficient)

	return &ProfilePrediction{ProfileEvaluation: *evaluated, Prediction: prediction}, nil
}

// RefreshActiveEvaluations re-evaluates every active profile and reports status
// changes since the previous refresh. One failing profile does not stop the rest.
func (s *AnalyticsService) RefreshActiveEvaluations(ctx context.Context) ([]*ProfileEvaluation, error) {
	profiles, err := s.profiles.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active profiles: %w", err)
	}

	results := make([]*ProfileEvaluation, 0, len(profiles))
	var errs []error
	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		evaluated, err := s.EvaluateWithProfile(ctx, profile)
		if err != nil {
			s.logger.WithError(err).WithField("profile_id", profile.ID).Error("Failed to refresh evaluation")
			errs = append(errs, fmt.Errorf("profile %s: %w", profile.ID, err))
			continue
		}
		s.trackTransition(profile, evaluated.State.Status)
		results = append(results, evaluated)
	}

	return results, errors.Join(errs...)
}

func (s *AnalyticsService) trackTransition(profile *models.EvaluationProfile, status evaluation.Status) {
	s.mu.Lock()
	previous, seen := s.lastStatus[profile.ID]
	s.lastStatus[profile.ID] = status
	s.mu.Unlock()

	if seen && previous != status {
		metrics.RecordStatusTransition(string(previous), string(status))
		s.evaluationLog.LogStatusTransition(profile.ID.String(), profile.Name, string(previous), string(status))
	}
}

// runSettings returns the settings for one computation with a fresh random source
func (s *AnalyticsService) runSettings() analytics.Settings {
	settings := s.settings
	settings.Random = s.randomSource()
	settings.ObserveRiskOfRuin = func(elapsed time.Duration) {
		metrics.RecordMonteCarloDuration(metrics.KindRiskOfRuin, elapsed.Seconds())
	}
	return settings
}

// randomSource returns a new seeded source per call. An injected source is
// shared by every call and was wrapped in a LockedSource at construction.
func (s *AnalyticsService) randomSource() analytics.RandomSource {
	if s.settings.Random != nil {
		return s.settings.Random
	}
	return analytics.NewRandomSource(s.settings.Seed)
}
