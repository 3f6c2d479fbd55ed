package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/meltforce/jellyfit/internal/models"
	"github.com/meltforce/jellyfit/internal/plan"
	"golang.org/x/sync/singleflight"
)

// Fallback replies returned instead of generator errors.
const (
	InsightNoAPIKey     = "Please configure your API Key to receive AI coaching insights."
	InsightNoSessions   = "Complete your first session to get personalized insights!"
	InsightEmpty        = "Could not generate insights at this time."
	InsightUnavailable  = "AI Service temporarily unavailable."
	ChatNoAPIKey        = "Please configure your API Key to chat with your coach."
	ChatUnavailable     = "I'm having trouble connecting right now. Please try again in a moment."
	insightSessionLimit = 5
)

// PlanSaver persists a generated plan.
type PlanSaver interface {
	SavePlan(ctx context.Context, p models.WeeklyPlan) error
}

// Service applies the generator contract: routine generation never comes back
// empty, plan generation signals failure with nil, and insights and chat
// degrade to fixed strings. Concurrent identical requests share one generator
// call.
type Service struct {
	gen   Generator
	plans PlanSaver
	log   *slog.Logger
	now   func() time.Time
	group singleflight.Group
}

// NewService wraps gen. A nil gen means no API key is configured and every
// call returns its fallback.
func NewService(gen Generator, plans PlanSaver, log *slog.Logger) *Service {
	return &Service{gen: gen, plans: plans, log: log, now: time.Now}
}

// Enabled reports whether a generator is configured.
func (s *Service) Enabled() bool {
	return s.gen != nil
}

// FallbackRoutines is the routine list returned when generation fails.
func FallbackRoutines(sport string) []models.Template {
	return []models.Template{{
		ID:               "fallback-1",
		Name:             sport + " Conditioning",
		Category:         models.CategoryPerformance,
		Description:      "General conditioning for " + sport + ".",
		DefaultExercises: []string{"Burpees", "Running", "Push-ups", "Squats"},
	}}
}

// sportID lower-cases sport and replaces each whitespace character with a dash.
func sportID(sport string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, strings.ToLower(sport))
}

// GenerateRoutines returns at least one template for sport.
func (s *Service) GenerateRoutines(ctx context.Context, sport string) []models.Template {
	if s.gen == nil {
		return FallbackRoutines(sport)
	}

	v, err, shared := s.group.Do("routines:"+sport, func() (any, error) {
		return s.gen.Routines(context.WithoutCancel(ctx), sport)
	})
	if err != nil {
		s.log.Warn("routine generation failed, using fallback", "sport", sport, "error", err)
		return FallbackRoutines(sport)
	}
	raw := v.([]models.Template)
	if len(raw) == 0 {
		s.log.Warn("routine generation returned nothing, using fallback", "sport", sport)
		return FallbackRoutines(sport)
	}
	if shared {
		s.log.Debug("joined in-flight routine generation", "sport", sport)
	}

	prefix := sportID(sport)
	out := make([]models.Template, len(raw))
	for i, t := range raw {
		t.ID = fmt.Sprintf("%s-%d", prefix, i)
		t.DefaultExercises = append([]string(nil), t.DefaultExercises...)
		t.DetailedExercises = append([]models.ProgramExercise(nil), t.DetailedExercises...)
		out[i] = t
	}
	return out
}

// GeneratePlan returns a normalized plan, or nil when generation fails.
func (s *Service) GeneratePlan(ctx context.Context, profile models.UserProfile) *models.WeeklyPlan {
	if s.gen == nil {
		return nil
	}
	raw, err := s.gen.WeeklyPlan(ctx, profile)
	if err != nil {
		s.log.Warn("plan generation failed", "profile", profile.Name, "error", err)
		return nil
	}
	p := plan.Normalize(raw, s.now())
	if p == nil {
		s.log.Warn("plan generation returned no days", "profile", profile.Name)
	}
	return p
}

// GenerateAndStorePlan generates a plan and overwrites the stored one. Callers
// that arrive while a generation for the same profile is running wait for and
// share its result instead of issuing a second request. A nil plan with a nil
// error means generation failed and the stored plan was left alone.
func (s *Service) GenerateAndStorePlan(ctx context.Context, profile models.UserProfile) (*models.WeeklyPlan, error) {
	ch := s.group.DoChan("plan:"+profile.Name, func() (any, error) {
		bg := context.WithoutCancel(ctx)
		p := s.GeneratePlan(bg, profile)
		if p == nil {
			return (*models.WeeklyPlan)(nil), nil
		}
		if err := s.plans.SavePlan(bg, *p); err != nil {
			return nil, fmt.Errorf("storing generated plan: %w", err)
		}
		s.log.Info("weekly plan generated", "plan_id", p.ID, "days", len(p.Days))
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		p := res.Val.(*models.WeeklyPlan)
		if p == nil {
			return nil, nil
		}
		c := p.Clone()
		return &c, nil
	}
}

// GetInsights summarizes the most recent sessions. sessions are expected
// newest first.
func (s *Service) GetInsights(ctx context.Context, sessions []models.Session) string {
	if s.gen == nil {
		return InsightNoAPIKey
	}
	if len(sessions) == 0 {
		return InsightNoSessions
	}
	if len(sessions) > insightSessionLimit {
		sessions = sessions[:insightSessionLimit]
	}

	text, err := s.gen.Insights(ctx, sessions)
	if err != nil {
		s.log.Warn("insight generation failed", "error", err)
		return InsightUnavailable
	}
	if text == "" {
		return InsightEmpty
	}
	return text
}

// Chat returns the coach's reply to message.
func (s *Service) Chat(ctx context.Context, profile models.UserProfile, message string, history []Message) string {
	if s.gen == nil {
		return ChatNoAPIKey
	}
	reply, err := s.gen.Chat(ctx, profile, message, history)
	if err != nil {
		s.log.Warn("coach chat failed", "error", err)
		return ChatUnavailable
	}
	if reply == "" {
		return ChatUnavailable
	}
	return reply
}

// Greeting is the opening line of a new conversation.
func Greeting(profile models.UserProfile) string {
	return fmt.Sprintf("Hey %s! I'm your JellyCoach. How is your %s training going?", profile.Name, profile.Sport)
}
