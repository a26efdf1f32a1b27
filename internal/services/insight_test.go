package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/insights"
	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

type fakeFeatures struct {
	fv insights.FeatureVector
}

func (f *fakeFeatures) BuildForUser(_ context.Context, userID uuid.UUID, asOf time.Time) (insights.FeatureVector, error) {
	fv := f.fv
	fv.UserID = userID
	fv.AsOf = asOf
	return fv, nil
}

type fakeStats struct {
	trends []insights.Trend
}

func (f *fakeStats) Breakdown(context.Context, uuid.UUID, int) (*Breakdown, error) {
	return &Breakdown{}, nil
}
func (f *fakeStats) WeeklyComparison(context.Context, uuid.UUID) (*WeeklyComparison, error) {
	return &WeeklyComparison{}, nil
}
func (f *fakeStats) TrendsForUser(context.Context, uuid.UUID, time.Time) ([]insights.Trend, error) {
	return f.trends, nil
}

type fakeGoalRepo struct{}

func (fakeGoalRepo) Create(context.Context, *gorm.DB, *types.Goal) error { return nil }
func (fakeGoalRepo) GetByID(context.Context, *gorm.DB, uuid.UUID, uuid.UUID) (*types.Goal, error) {
	return nil, nil
}
func (fakeGoalRepo) ListByUser(context.Context, *gorm.DB, uuid.UUID) ([]types.Goal, error) {
	return nil, nil
}
func (fakeGoalRepo) ListActive(context.Context, *gorm.DB, uuid.UUID) ([]types.Goal, error) {
	return nil, nil
}
func (fakeGoalRepo) Update(context.Context, *gorm.DB, *types.Goal) error { return nil }

type fakeDismissalRepo struct {
	active  map[string]bool
	created []types.InsightDismissal
}

func (f *fakeDismissalRepo) Create(_ context.Context, _ *gorm.DB, d *types.InsightDismissal) error {
	f.created = append(f.created, *d)
	return nil
}
func (f *fakeDismissalRepo) ActiveIDs(context.Context, *gorm.DB, uuid.UUID) (map[string]bool, error) {
	if f.active == nil {
		return map[string]bool{}, nil
	}
	return f.active, nil
}

type fakeAI struct {
	up       bool
	reply    string
	err      error
	complete int
}

func (f *fakeAI) Probe(context.Context) bool { return f.up }
func (f *fakeAI) Complete(context.Context, string, string) (string, error) {
	f.complete++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
func (f *fakeAI) ModelName() string { return "test-model" }

type fakeCache struct {
	stored *insights.Payload
	puts   int
}

func (f *fakeCache) Get(_ context.Context, _ uuid.UUID, maxAge time.Duration) (*insights.Payload, error) {
	if f.stored == nil || time.Since(f.stored.GeneratedAt) > maxAge {
		return nil, nil
	}
	copied := *f.stored
	return &copied, nil
}
func (f *fakeCache) Put(_ context.Context, _ uuid.UUID, p *insights.Payload) error {
	f.puts++
	copied := *p
	f.stored = &copied
	return nil
}
func (f *fakeCache) Invalidate(context.Context, uuid.UUID) error {
	f.stored = nil
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

func newTestInsightService(t *testing.T, ai *fakeAI, c *fakeCache, dismissals *fakeDismissalRepo) InsightService {
	t.Helper()
	fv := insights.FeatureVector{
		WindowDays:       insights.FeatureWindowDays,
		Categories:       map[string]insights.CategoryStats{"transport": {Count: 3, EmissionsKg: 30}},
		ActivityCount:    3,
		TotalEmissionsKg: 30,
		CarTrips:         3,
		EnergySource:     "mixed",
		DietType:         "mixed",
		PlasticLevel:     "medium",
	}
	return NewInsightService(
		nil, testLogger(t),
		&fakeFeatures{fv: fv},
		&fakeStats{},
		fakeGoalRepo{},
		dismissals,
		ai,
		c,
	)
}

const validAIReply = `{"summary": "Transport dominates.", "insights": [{"title": "Drive less", "category": "transport", "savings_kg": 9}], "encouragement": "Nice work."}`

func TestGetInsightsAIPathIsCached(t *testing.T) {
	ai := &fakeAI{up: true, reply: validAIReply}
	c := &fakeCache{}
	svc := newTestInsightService(t, ai, c, &fakeDismissalRepo{})

	payload, err := svc.GetInsights(context.Background(), uuid.New(), false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Source != insights.SourceAI {
		t.Fatalf("expected ai source, got %s", payload.Source)
	}
	if c.puts != 1 {
		t.Fatalf("AI payload must be written to the cache once, got %d puts", c.puts)
	}

	// Second call is served from cache without another model call.
	if _, err := svc.GetInsights(context.Background(), uuid.New(), false, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ai.complete != 1 {
		t.Fatalf("cached payload must not trigger a second completion, got %d", ai.complete)
	}
}

func TestGetInsightsRefreshBypassesCache(t *testing.T) {
	ai := &fakeAI{up: true, reply: validAIReply}
	c := &fakeCache{}
	svc := newTestInsightService(t, ai, c, &fakeDismissalRepo{})

	if _, err := svc.GetInsights(context.Background(), uuid.New(), false, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetInsights(context.Background(), uuid.New(), true, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ai.complete != 2 {
		t.Fatalf("refresh must regenerate, got %d completions", ai.complete)
	}
}

func TestGetInsightsFallbackNeverCached(t *testing.T) {
	ai := &fakeAI{up: false}
	c := &fakeCache{}
	svc := newTestInsightService(t, ai, c, &fakeDismissalRepo{})

	payload, err := svc.GetInsights(context.Background(), uuid.New(), false, 0)
	if err != nil {
		t.Fatalf("rules fallback must not surface an error: %v", err)
	}
	if payload.Source != insights.SourceRules {
		t.Fatalf("expected rules source, got %s", payload.Source)
	}
	if c.puts != 0 {
		t.Fatalf("rules payload must never be cached, got %d puts", c.puts)
	}
}

func TestGetInsightsAIErrorFallsBackSilently(t *testing.T) {
	ai := &fakeAI{up: true, err: errors.New("model exploded")}
	c := &fakeCache{}
	svc := newTestInsightService(t, ai, c, &fakeDismissalRepo{})

	payload, err := svc.GetInsights(context.Background(), uuid.New(), false, 0)
	if err != nil {
		t.Fatalf("AI failure must be invisible to the caller: %v", err)
	}
	if payload.Source != insights.SourceRules {
		t.Fatalf("expected rules fallback, got %s", payload.Source)
	}
	if payload.Summary == "" {
		t.Fatalf("fallback payload must carry a summary")
	}
}

func TestGetInsightsTimeoutFallsBack(t *testing.T) {
	ai := &fakeAI{up: true, err: ErrAITimeout}
	svc := newTestInsightService(t, ai, &fakeCache{}, &fakeDismissalRepo{})

	payload, err := svc.GetInsights(context.Background(), uuid.New(), false, 0)
	if err != nil {
		t.Fatalf("timeout must fall back, not fail: %v", err)
	}
	if payload.Source != insights.SourceRules {
		t.Fatalf("expected rules fallback after timeout, got %s", payload.Source)
	}
}

func TestGetInsightsFiltersDismissed(t *testing.T) {
	ai := &fakeAI{up: true, reply: validAIReply}
	dismissals := &fakeDismissalRepo{active: map[string]bool{"ai-transport": true}}
	svc := newTestInsightService(t, ai, &fakeCache{}, dismissals)

	payload, err := svc.GetInsights(context.Background(), uuid.New(), false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ins := range payload.Insights {
		if ins.ID == "ai-transport" {
			t.Fatalf("dismissed insight must be filtered out")
		}
	}
	if payload.TopInsight != nil && payload.TopInsight.ID == "ai-transport" {
		t.Fatalf("dismissed top insight must be cleared")
	}
}

func TestGetInsightsLimit(t *testing.T) {
	ai := &fakeAI{up: false}
	svc := newTestInsightService(t, ai, &fakeCache{}, &fakeDismissalRepo{})

	payload, err := svc.GetInsights(context.Background(), uuid.New(), false, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload.Insights) > 1 {
		t.Fatalf("limit 1 must cap the insight list, got %d", len(payload.Insights))
	}
}

func TestDismissRecordsExpiry(t *testing.T) {
	dismissals := &fakeDismissalRepo{}
	svc := newTestInsightService(t, &fakeAI{}, &fakeCache{}, dismissals)

	if err := svc.Dismiss(context.Background(), uuid.New(), "transport-swap-short-drives"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dismissals.created) != 1 {
		t.Fatalf("expected one dismissal row, got %d", len(dismissals.created))
	}
	d := dismissals.created[0]
	gap := d.ExpiresAt.Sub(d.DismissedAt)
	if gap < 29*24*time.Hour || gap > 31*24*time.Hour {
		t.Fatalf("expected a 30 day expiry window, got %v", gap)
	}
	if err := svc.Dismiss(context.Background(), uuid.New(), ""); err == nil {
		t.Fatalf("empty insight id must be rejected")
	}
}
