package review

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"lunchgate/internal/budget"
	"lunchgate/internal/review/metrics"
	"lunchgate/internal/roster"
	"lunchgate/pkg/platform/audit"
	"lunchgate/pkg/requestcontext"
)

// RiskAssessor produces the risk assessment for a raw menu.
type RiskAssessor interface {
	Assess(ctx context.Context, rawMenu []string) Assessment
}

// AuditPublisher records decision audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs the review pipeline. It only enforces the data-dependency
// order between stages and aggregates their outputs; all business logic
// lives in the stages themselves.
type Service struct {
	assessor      RiskAssessor
	perPersonRate float64
	budgetLimit   float64

	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   AuditPublisher
	tracer  trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

// New constructs the pipeline service.
func New(assessor RiskAssessor, perPersonRate, budgetLimit float64, opts ...Option) (*Service, error) {
	if assessor == nil {
		return nil, errors.New("review: risk assessor is required")
	}
	if perPersonRate <= 0 {
		return nil, errors.New("review: per-person rate must be positive")
	}
	if budgetLimit < 0 {
		return nil, errors.New("review: budget limit must be non-negative")
	}

	s := &Service{
		assessor:      assessor,
		perPersonRate: perPersonRate,
		budgetLimit:   budgetLimit,
		tracer:        otel.Tracer("lunchgate/review"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Evaluate runs one order through the full pipeline. The risk stage has no
// dependency on the normalized roster, so it runs concurrently with
// normalization and the budget check. The result is self-contained; nothing
// is shared or cached across invocations.
func (s *Service) Evaluate(ctx context.Context, order Order) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "review.Evaluate")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.ObserveEvaluateLatency(time.Since(start))
	}()

	var (
		assessment   Assessment
		normalized   []string
		budgetResult budget.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		actx, aspan := s.tracer.Start(gctx, "review.Assess")
		defer aspan.End()
		assessment = s.assessor.Assess(actx, order.Menu)
		return nil
	})
	g.Go(func() error {
		normalized = roster.Normalize(order.Employees)
		budgetResult = budget.Evaluate(len(normalized), s.perPersonRate, s.budgetLimit)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	decision := Decide(assessment, budgetResult)

	s.metrics.IncrementRiskLevel(string(assessment.Risk))
	s.metrics.IncrementDecision(decision.FinalDecision, string(assessment.Risk))
	span.SetAttributes(
		attribute.String("review.risk_level", string(assessment.Risk)),
		attribute.Bool("review.approved", decision.Approved),
		attribute.Bool("review.advisory_used", assessment.AdvisoryUsed()),
	)

	result := &Result{
		NormalizedEmployees: normalized,
		Assessment:          assessment,
		Budget:              budgetResult,
		Decision:            decision,
		EvaluatedAt:         requestcontext.Now(ctx),
	}

	s.emitAudit(ctx, result)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "lunch order evaluated",
			"headcount", len(normalized),
			"risk_level", assessment.Risk,
			"advisory_used", assessment.AdvisoryUsed(),
			"approved", decision.Approved,
			"final_decision", decision.FinalDecision,
			"total_cost", budgetResult.TotalCost,
		)
	}

	return result, nil
}

// emitAudit records the decision. Audit failures never fail the evaluation.
func (s *Service) emitAudit(ctx context.Context, result *Result) {
	if s.audit == nil {
		return
	}

	err := s.audit.Emit(ctx, audit.Event{
		Timestamp:     result.EvaluatedAt,
		RequestID:     requestcontext.RequestID(ctx),
		ClientIP:      requestcontext.ClientIP(ctx),
		Client:        audit.SummarizeUserAgent(requestcontext.UserAgent(ctx)),
		Action:        audit.ActionOrderEvaluated,
		Headcount:     len(result.NormalizedEmployees),
		RiskLevel:     string(result.Assessment.Risk),
		FinalDecision: result.Decision.FinalDecision,
		Approved:      result.Decision.Approved,
		AdvisoryUsed:  result.Assessment.AdvisoryUsed(),
		ReasonCount:   len(result.Assessment.Reasons),
	})
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emission failed", "error", err)
	}
}
