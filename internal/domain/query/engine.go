// Package query answers free-text console prompts against an operational
// snapshot. Matching is case-insensitive substring search; the first rule in
// table order that finds data wins, and a rule whose trigger fires without
// finding data falls through to the next one.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

// DefaultTimeLayout renders estimated completion timestamps.
const DefaultTimeLayout = "1/2/2006, 3:04:05 PM"

const (
	actionSurge    = "Investigate vendor throughput and add surge capacity."
	actionMaintain = "Maintain current staffing, monitor weekly for deviations."
	allComplete    = "All components completed."
)

// rule is one row of the priority table: trigger decides whether the rule is
// considered, respond looks for data and reports whether it matched.
type rule struct {
	intent  Intent
	trigger func(q string) bool
	respond func(e *Engine, q string, c *Context) (Result, bool)
}

var rules = []rule{
	{
		intent:  IntentCandidateStatus,
		trigger: func(q string) bool { return strings.Contains(q, "status of") },
		respond: (*Engine).candidateStatus,
	},
	{
		intent:  IntentBenchmarkLookup,
		trigger: func(q string) bool { return strings.Contains(q, "average") && strings.Contains(q, "time") },
		respond: (*Engine).benchmarkLookup,
	},
	{
		intent:  IntentVerificationDelta,
		trigger: func(q string) bool { return strings.Contains(q, "how many") && strings.Contains(q, "verified") },
		respond: (*Engine).verificationDelta,
	},
	{
		intent:  IntentDelayBreakdown,
		trigger: func(q string) bool { return strings.Contains(q, "delay") || strings.Contains(q, "why") },
		respond: (*Engine).delayBreakdown,
	},
}

// Engine evaluates prompts. The zero value is not usable; use NewEngine.
type Engine struct {
	loc    *time.Location
	layout string
}

type Option func(*Engine)

// WithLocation sets the time zone used when formatting timestamps.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithTimeLayout overrides DefaultTimeLayout.
func WithTimeLayout(layout string) Option {
	return func(e *Engine) {
		if layout != "" {
			e.layout = layout
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{loc: time.UTC, layout: DefaultTimeLayout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Evaluate runs prompt through the default engine (UTC timestamps).
func Evaluate(prompt string, c Context) Result {
	return defaultEngine.Evaluate(prompt, c)
}

// Intents lists the rule order, fallback last.
func Intents() []Intent {
	out := make([]Intent, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.intent)
	}
	return append(out, IntentFallback)
}

// Evaluate never fails: when nothing matches it returns the fallback result.
func (e *Engine) Evaluate(prompt string, c Context) Result {
	q := strings.ToLower(prompt)
	for _, r := range rules {
		if !r.trigger(q) {
			continue
		}
		if res, ok := r.respond(e, q, &c); ok {
			return res
		}
	}
	return Result{Intent: IntentFallback, Summary: FallbackSummary}
}

func (e *Engine) candidateStatus(q string, c *Context) (Result, bool) {
	for _, cs := range c.CaseStatuses {
		if !strings.Contains(q, strings.ToLower(cs.ApplicantName)) {
			continue
		}
		highlights := make([]string, 0, len(cs.Events))
		for _, ev := range cs.Events {
			if ev.Status == screening.EventComplete {
				continue
			}
			highlights = append(highlights, fmt.Sprintf("%s owned by %s is %s.", ev.Label, ev.Owner, ev.Status))
		}
		if len(highlights) == 0 {
			highlights = append(highlights, allComplete)
		}
		status := strings.Replace(string(cs.OverallStatus), "_", " ", 1)
		return Result{
			Intent: IntentCandidateStatus,
			Summary: fmt.Sprintf("%s's check is %s. Estimated completion %s.",
				cs.ApplicantName, status, cs.EstimatedCompletion.In(e.loc).Format(e.layout)),
			Highlights: highlights,
		}, true
	}
	return Result{}, false
}

func (e *Engine) benchmarkLookup(q string, c *Context) (Result, bool) {
	for _, b := range c.Benchmarks {
		if !strings.Contains(q, strings.ToLower(b.Region)) && !strings.Contains(q, strings.ToLower(b.CheckType)) {
			continue
		}
		action := actionMaintain
		if b.Trend == screening.TrendUp {
			action = actionSurge
		}
		return Result{
			Intent: IntentBenchmarkLookup,
			Summary: fmt.Sprintf("%s checks in %s average %s days. %s by %s%% week over week.",
				b.CheckType, b.Region, formatNumber(b.AverageDays), trendDirection(b.Trend), formatNumber(math.Abs(b.DeltaPercentage))),
			RecommendedActions: []string{action},
		}, true
	}
	return Result{}, false
}

func (e *Engine) verificationDelta(_ string, c *Context) (Result, bool) {
	n := len(c.VerificationSummary)
	if n < 2 {
		return Result{}, false
	}
	today, yesterday := c.VerificationSummary[n-1], c.VerificationSummary[n-2]
	delta := today.Verified - yesterday.Verified
	sign := ""
	if delta >= 0 {
		sign = "+"
	}
	return Result{
		Intent: IntentVerificationDelta,
		Summary: fmt.Sprintf("%d profiles verified today. %s%d versus yesterday (%d).",
			today.Verified, sign, delta, yesterday.Verified),
	}, true
}

func (e *Engine) delayBreakdown(q string, c *Context) (Result, bool) {
	for _, d := range c.DelayInsights {
		if !strings.Contains(q, strings.ToLower(d.Region)) && !strings.Contains(q, string(d.Category)) {
			continue
		}
		return Result{
			Intent: IntentDelayBreakdown,
			Summary: fmt.Sprintf("%s delays add ~%s days (%d orders impacted).",
				d.Region, formatNumber(d.ImpactDays), d.ContributingOrders),
			Highlights:         []string{d.Summary},
			RecommendedActions: []string{d.RecommendedAction},
		}, true
	}
	return Result{}, false
}

func trendDirection(t screening.Trend) string {
	switch t {
	case screening.TrendUp:
		return "Rising"
	case screening.TrendDown:
		return "Improving"
	default:
		return "Stable"
	}
}

// formatNumber prints the shortest representation: 2.1, 12, 0.5.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
