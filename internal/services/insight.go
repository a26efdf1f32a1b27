package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/cache"
	"github.com/ecotrace/ecotrace-backend/internal/insights"
	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/repos"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

const dismissalTTLDays = 30

var insightTracer = otel.Tracer("ecotrace/insights")

// EnrichedInsight is the single-insight view with its static tip sheet
// attached.
type EnrichedInsight struct {
	insights.Insight
	Tips insights.TipSheet `json:"tips"`
}

type InsightService interface {
	// GetInsights returns the insight payload for a user. Cached AI payloads
	// are served while fresh unless refresh forces regeneration; when the AI
	// backend is unreachable the rule engine answers instead, and that
	// fallback is never cached.
	GetInsights(ctx context.Context, userID uuid.UUID, refresh bool, limit int) (*insights.Payload, error)
	GetInsight(ctx context.Context, userID uuid.UUID, insightID string) (*EnrichedInsight, error)
	GetByCategory(ctx context.Context, userID uuid.UUID, category string) ([]insights.Insight, error)
	Dismiss(ctx context.Context, userID uuid.UUID, insightID string) error
}

type insightService struct {
	db            *gorm.DB
	log           *logger.Logger
	features      FeatureService
	stats         StatsService
	goalRepo      repos.GoalRepo
	dismissalRepo repos.DismissalRepo
	aiClient      AIClient
	insightCache  cache.InsightCache
}

func NewInsightService(
	db *gorm.DB,
	log *logger.Logger,
	features FeatureService,
	stats StatsService,
	goalRepo repos.GoalRepo,
	dismissalRepo repos.DismissalRepo,
	aiClient AIClient,
	insightCache cache.InsightCache,
) InsightService {
	return &insightService{
		db:            db,
		log:           log.With("service", "InsightService"),
		features:      features,
		stats:         stats,
		goalRepo:      goalRepo,
		dismissalRepo: dismissalRepo,
		aiClient:      aiClient,
		insightCache:  insightCache,
	}
}

func (is *insightService) GetInsights(ctx context.Context, userID uuid.UUID, refresh bool, limit int) (*insights.Payload, error) {
	ctx, span := insightTracer.Start(ctx, "insights.generate", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.Bool("refresh", refresh),
	))
	defer span.End()

	dismissed, err := is.dismissalRepo.ActiveIDs(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load dismissals: %w", err)
	}

	if !refresh {
		cached, err := is.insightCache.Get(ctx, userID, cache.DefaultFreshness)
		if err != nil {
			is.log.Warn("Insight cache read failed, regenerating", "user_id", userID, "error", err)
		}
		if cached != nil {
			span.SetAttributes(attribute.String("insights.source", "cache"))
			return is.present(*cached, dismissed, limit), nil
		}
	}

	payload, err := is.generate(ctx, userID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("insights.source", payload.Source))
	return is.present(*payload, dismissed, limit), nil
}

// generate builds a fresh payload: AI when the backend answers, otherwise
// the rule engine. Only AI payloads are cached, so a later request retries
// the AI path instead of pinning the fallback for six hours.
func (is *insightService) generate(ctx context.Context, userID uuid.UUID) (*insights.Payload, error) {
	now := time.Now().UTC()

	fv, err := is.features.BuildForUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	trends, err := is.stats.TrendsForUser(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("detect trends: %w", err)
	}

	if is.aiClient != nil && is.aiClient.Probe(ctx) {
		payload, err := is.generateAI(ctx, fv, trends, userID, now)
		if err == nil {
			if cacheErr := is.insightCache.Put(ctx, userID, payload); cacheErr != nil {
				is.log.Warn("Failed to cache insight payload", "user_id", userID, "error", cacheErr)
			}
			return payload, nil
		}
		if errors.Is(err, ErrAITimeout) {
			is.log.Warn("AI generation timed out, falling back to rules", "user_id", userID)
		} else {
			is.log.Warn("AI generation failed, falling back to rules", "user_id", userID, "error", err)
		}
	}

	return is.generateRules(fv, trends, now), nil
}

func (is *insightService) generateAI(ctx context.Context, fv insights.FeatureVector, trends []insights.Trend, userID uuid.UUID, now time.Time) (*insights.Payload, error) {
	goals, err := is.goalRepo.ListActive(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	raw, err := is.aiClient.Complete(ctx, insights.SystemPrompt, insights.BuildUserPrompt(fv, trends, goals))
	if err != nil {
		return nil, err
	}

	payload, err := insights.ParseAIReply(raw, is.aiClient.ModelName(), now)
	if err != nil {
		return nil, fmt.Errorf("parse ai reply: %w", err)
	}
	payload.Trends = trends
	return payload, nil
}

func (is *insightService) generateRules(fv insights.FeatureVector, trends []insights.Trend, now time.Time) *insights.Payload {
	ruleInsights := insights.GenerateRuleInsights(fv)
	summary := insights.GenerateSummary(fv, ruleInsights)

	payload := &insights.Payload{
		Source:        insights.SourceRules,
		Summary:       summary.Text,
		Insights:      ruleInsights,
		Trends:        trends,
		Encouragement: insights.RuleEncouragement(trends),
		GeneratedAt:   now,
	}
	if len(ruleInsights) > 0 {
		top := ruleInsights[0]
		payload.TopInsight = &top
	}
	return payload
}

// present applies dismissal filtering and the caller's limit to a payload
// copy; the cached original is never mutated.
func (is *insightService) present(payload insights.Payload, dismissed map[string]bool, limit int) *insights.Payload {
	out := payload.WithoutDismissed(dismissed)
	if limit > 0 {
		out = out.Limited(limit)
	}
	return &out
}

func (is *insightService) currentInsights(ctx context.Context, userID uuid.UUID) ([]insights.Insight, error) {
	payload, err := is.GetInsights(ctx, userID, false, 0)
	if err != nil {
		return nil, err
	}
	return payload.Insights, nil
}

func (is *insightService) GetInsight(ctx context.Context, userID uuid.UUID, insightID string) (*EnrichedInsight, error) {
	current, err := is.currentInsights(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, ins := range current {
		if ins.ID == insightID {
			return &EnrichedInsight{Insight: ins, Tips: insights.TipsFor(ins.ID)}, nil
		}
	}
	return nil, fmt.Errorf("%w: insight not found", ErrInvalid)
}

func (is *insightService) GetByCategory(ctx context.Context, userID uuid.UUID, category string) ([]insights.Insight, error) {
	current, err := is.currentInsights(ctx, userID)
	if err != nil {
		return nil, err
	}
	matched := make([]insights.Insight, 0, len(current))
	for _, ins := range current {
		if ins.Category == category {
			matched = append(matched, ins)
		}
	}
	return matched, nil
}

func (is *insightService) Dismiss(ctx context.Context, userID uuid.UUID, insightID string) error {
	if insightID == "" {
		return fmt.Errorf("%w: missing insight id", ErrInvalid)
	}
	now := time.Now().UTC()
	return is.dismissalRepo.Create(ctx, nil, &types.InsightDismissal{
		ID:          uuid.New(),
		UserID:      userID,
		InsightID:   insightID,
		DismissedAt: now,
		ExpiresAt:   now.AddDate(0, 0, dismissalTTLDays),
	})
}
