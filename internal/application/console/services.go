package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/checkops/internal/application"
	"github.com/bryanwahyu/checkops/internal/application/dashboard"
	"github.com/bryanwahyu/checkops/internal/domain/query"
	"github.com/bryanwahyu/checkops/internal/domain/screening"
	"github.com/bryanwahyu/checkops/internal/logger"
)

// Recorder persists answered prompts; dashboard.Service satisfies it.
type Recorder interface {
	RecordQuery(ctx context.Context, cmd dashboard.RecordQueryCommand) (screening.HistoryEntry, error)
}

// Observer is notified of every evaluated prompt (metrics).
type Observer interface {
	ObserveQuery(intent string, elapsed time.Duration)
}

// Service answers console prompts against a fresh snapshot of the data provider.
type Service struct {
	Provider screening.Provider
	Engine   *query.Engine
	Recorder Recorder
	Observer Observer
	Clock    application.Clock
	Logger   logger.Logger
}

// Response is one answered console turn.
type Response struct {
	Query     string       `json:"query"`
	Result    query.Result `json:"result"`
	CreatedAt time.Time    `json:"createdAt"`
}

type AskCommand struct {
	UserID string `json:"userId"`
	Prompt string `json:"prompt"`
}

// Ask trims the prompt, evaluates it and records it in the user's history.
// A failure to record is logged and does not fail the answer.
func (s *Service) Ask(ctx context.Context, cmd AskCommand) (Response, error) {
	prompt := strings.TrimSpace(cmd.Prompt)
	if prompt == "" {
		return Response{}, &screening.ValidationError{Fields: []string{"prompt"}}
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load snapshot: %w", err)
	}

	start := time.Now()
	result := s.engine().Evaluate(prompt, snap)
	if s.Observer != nil {
		s.Observer.ObserveQuery(string(result.Intent), time.Since(start))
	}

	resp := Response{Query: prompt, Result: result, CreatedAt: s.Clock.Now()}
	s.log().Info("console query answered", map[string]any{
		"userId": cmd.UserID,
		"intent": result.Intent,
	})

	if s.Recorder != nil && cmd.UserID != "" {
		_, err := s.Recorder.RecordQuery(ctx, dashboard.RecordQueryCommand{
			UserID:      cmd.UserID,
			SearchQuery: prompt,
			Intent:      string(result.Intent),
			Entities:    map[string]any{},
		})
		if err != nil {
			s.log().WithError(err).Warn("failed to persist history", map[string]any{"userId": cmd.UserID})
		}
	}
	return resp, nil
}

// Snapshot reads the five collections the engine needs.
func (s *Service) Snapshot(ctx context.Context) (query.Context, error) {
	var c query.Context
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { c.Applicants, err = s.Provider.Applicants(ctx); return })
	g.Go(func() (err error) { c.CaseStatuses, err = s.Provider.CaseStatuses(ctx); return })
	g.Go(func() (err error) { c.Benchmarks, err = s.Provider.Benchmarks(ctx); return })
	g.Go(func() (err error) { c.VerificationSummary, err = s.Provider.VerificationSummary(ctx); return })
	g.Go(func() (err error) { c.DelayInsights, err = s.Provider.DelayInsights(ctx); return })
	if err := g.Wait(); err != nil {
		return query.Context{}, err
	}
	return c, nil
}

func (s *Service) engine() *query.Engine {
	if s.Engine == nil {
		return query.NewEngine()
	}
	return s.Engine
}

func (s *Service) log() logger.Logger {
	if s.Logger == nil {
		return logger.NewNop()
	}
	return s.Logger
}
