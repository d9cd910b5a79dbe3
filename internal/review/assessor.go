package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lunchgate/internal/advisory"
	"lunchgate/internal/policy"
	"lunchgate/internal/review/metrics"
)

// AdvisoryConsulter is the slice of the advisory client the assessor needs.
// Tests inject a stub; production wires *advisory.Client.
type AdvisoryConsulter interface {
	Consult(ctx context.Context, prompt string) (*advisory.Opinion, error)
}

// Assessor is the hybrid risk stage. It consults the advisory service when
// one is configured and falls back to rule-only classification on any
// failure. Sanitization and inclusivity checks always run; the advisory
// opinion is advisory, never a substitute for deterministic policy
// enforcement. Assess never fails: every advisory failure mode is absorbed
// here.
type Assessor struct {
	advisory AdvisoryConsulter
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// AssessorOption configures an Assessor.
type AssessorOption func(*Assessor)

func WithAssessorLogger(logger *slog.Logger) AssessorOption {
	return func(a *Assessor) {
		a.logger = logger
	}
}

func WithAssessorMetrics(m *metrics.Metrics) AssessorOption {
	return func(a *Assessor) {
		a.metrics = m
	}
}

// NewAssessor constructs the risk stage. A nil consulter is allowed and
// routes every assessment through the fallback path.
func NewAssessor(consulter AdvisoryConsulter, opts ...AssessorOption) *Assessor {
	a := &Assessor{advisory: consulter}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess produces the risk assessment for a raw menu.
func (a *Assessor) Assess(ctx context.Context, rawMenu []string) Assessment {
	sanitized, violations := policy.Sanitize(rawMenu)
	inclusivity := policy.InclusivityFindings(sanitized)

	opinion, err := a.consult(ctx, rawMenu)
	if err != nil {
		outcome := outcomeLabel(err)
		a.metrics.IncrementAdvisoryOutcome(outcome)
		if a.logger != nil && !errors.Is(err, advisory.ErrUnavailable) {
			a.logger.WarnContext(ctx, "advisory path failed, using rule-only assessment",
				"outcome", outcome,
				"error", err,
			)
		}

		return Assessment{
			SanitizedMenu: sanitized,
			Risk:          policy.Classify(rawMenu, len(inclusivity) > 0),
			Reasons:       mergeReasons(violations, inclusivity),
		}
	}

	a.metrics.IncrementAdvisoryOutcome("used")
	risk, aiReasons := advisory.Interpret(opinion.Text)

	return Assessment{
		SanitizedMenu: sanitized,
		Risk:          risk,
		Reasons:       mergeReasons(aiReasons, violations, inclusivity),
		ThreadID:      opinion.ThreadID,
		RunID:         opinion.RunID,
	}
}

func (a *Assessor) consult(ctx context.Context, rawMenu []string) (*advisory.Opinion, error) {
	if a.advisory == nil {
		return nil, advisory.ErrUnavailable
	}

	start := time.Now()
	opinion, err := a.advisory.Consult(ctx, buildPrompt(rawMenu))
	a.metrics.ObserveAdvisoryLatency(time.Since(start))
	return opinion, err
}

// buildPrompt describes the order and the policy axes the advisory agent
// should weigh in on.
func buildPrompt(menu []string) string {
	var b strings.Builder
	b.WriteString("Review this proposed corporate lunch menu for health and safety risks, ")
	b.WriteString("major allergens (peanuts, tree nuts, shellfish), prohibited substances, ")
	b.WriteString("hard liquor, and inclusivity of dietary restrictions (vegetarian, vegan, halal, kosher).\n\nMenu:\n")
	for _, item := range menu {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return b.String()
}

// mergeReasons concatenates reason groups, deduplicating by exact text and
// preserving first occurrence. An empty merge yields the compliant reason so
// callers always have something to show.
func mergeReasons(groups ...[]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, group := range groups {
		for _, reason := range group {
			if reason == "" {
				continue
			}
			if _, ok := seen[reason]; ok {
				continue
			}
			seen[reason] = struct{}{}
			merged = append(merged, reason)
		}
	}

	if len(merged) == 0 {
		return []string{CompliantReason}
	}
	return merged
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, advisory.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, advisory.ErrTimeout):
		return "timeout"
	case errors.Is(err, advisory.ErrEmptyResponse):
		return "empty"
	default:
		return "failed"
	}
}
