package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/linkguard/go-url-guard/internal/check/domain"
	"github.com/linkguard/go-url-guard/internal/check/metrics"
	"github.com/linkguard/go-url-guard/pkg/urlcheck"
)

// CheckService runs the local URL classifier and, for inputs that pass,
// consults the remote safe-browsing reputation service. Every check leaves
// a persisted record and a published event.
type CheckService struct {
	repo       domain.Repository
	cache      domain.VerdictCache
	reputation domain.ReputationClient
	publisher  domain.EventPublisher
	logger     *zap.Logger
	metrics    metrics.Metrics
}

func NewCheckService(
	repo domain.Repository,
	cache domain.VerdictCache,
	reputation domain.ReputationClient,
	publisher domain.EventPublisher,
	logger *zap.Logger,
	m metrics.Metrics,
) *CheckService {
	return &CheckService{
		repo:       repo,
		cache:      cache,
		reputation: reputation,
		publisher:  publisher,
		logger:     logger,
		metrics:    m,
	}
}

// CheckURL validates input locally and, if it passes, looks up its
// reputation. A rejected URL is an expected outcome, not an error: the
// returned response carries the rejection reason and err stays nil.
func (s *CheckService) CheckURL(ctx context.Context, input string) (
	*domain.CheckResponse, error) {

	s.metrics.Inc(metrics.ChecksTotal)

	result := urlcheck.ValidateURL(input)
	if !result.Valid {
		s.metrics.Inc(metrics.ChecksRejected)

		rec := &domain.CheckRecord{
			Input:   input,
			Verdict: domain.VerdictRejected,
			Reason:  result.Reason,
		}
		s.record(ctx, rec)

		if err := s.publisher.PublishURLRejected(ctx, rec); err != nil {
			s.logger.Error("Failed to publish rejection event",
				zap.Error(err), zap.String("reason", result.Reason))
		}

		return &domain.CheckResponse{
			Input:   input,
			Valid:   false,
			Reason:  result.Reason,
			Verdict: domain.VerdictRejected,
		}, nil
	}

	rep, err := s.lookupReputation(ctx, result.NormalizedURL)
	if err != nil {
		// Reputation is advisory; the local verdict stands. Fail open
		// but leave a trace.
		s.metrics.Inc(metrics.LookupFailures)
		s.logger.Error("Reputation lookup failed",
			zap.Error(err), zap.String("url", result.NormalizedURL))
		rep = &domain.Reputation{}
	}

	verdict := domain.VerdictAccepted
	if rep.Threat {
		verdict = domain.VerdictFlagged
		s.metrics.Inc(metrics.ChecksFlagged)
	} else {
		s.metrics.Inc(metrics.ChecksAccepted)
	}

	rec := &domain.CheckRecord{
		Input:         input,
		NormalizedURL: result.NormalizedURL,
		Verdict:       verdict,
		ThreatType:    rep.ThreatType,
	}
	s.record(ctx, rec)

	if err := s.publisher.PublishURLChecked(ctx, rec); err != nil {
		s.logger.Error("Failed to publish check event",
			zap.Error(err), zap.String("url", result.NormalizedURL))
	}

	return &domain.CheckResponse{
		Input:         input,
		Valid:         true,
		NormalizedURL: result.NormalizedURL,
		Verdict:       verdict,
		ThreatType:    rep.ThreatType,
	}, nil
}

// Precheck runs the cheap format check. No I/O, suitable for per-keystroke
// calls.
func (s *CheckService) Precheck(input string) *domain.PrecheckResponse {
	s.metrics.Inc(metrics.PrechecksTotal)
	return &domain.PrecheckResponse{
		Input: input,
		OK:    urlcheck.IsURLFormatValid(input),
	}
}

func (s *CheckService) RecentChecks(ctx context.Context, limit, offset int) (
	[]*domain.CheckRecord, error) {

	recs, err := s.repo.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent checks: %w", err)
	}
	return recs, nil
}

// Stats returns the persisted number of checks per verdict.
func (s *CheckService) Stats(ctx context.Context) (map[string]int64, error) {
	verdicts := []string{
		domain.VerdictAccepted,
		domain.VerdictFlagged,
		domain.VerdictRejected,
	}

	stats := make(map[string]int64, len(verdicts))
	for _, verdict := range verdicts {
		count, err := s.repo.CountByVerdict(ctx, verdict)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s checks: %w", verdict, err)
		}
		stats[verdict] = count
	}

	return stats, nil
}

// lookupReputation consults the verdict cache before the remote service and
// backfills the cache on a miss.
func (s *CheckService) lookupReputation(ctx context.Context,
	normalizedURL string) (*domain.Reputation, error) {

	cached, err := s.cache.Get(ctx, normalizedURL)
	if err != nil {
		s.logger.Warn("Verdict cache get failed",
			zap.Error(err), zap.String("url", normalizedURL))
	}
	if cached != nil {
		s.metrics.Inc(metrics.VerdictCacheHits)
		return cached, nil
	}
	s.metrics.Inc(metrics.VerdictCacheMisses)

	rep, err := s.reputation.Lookup(ctx, normalizedURL)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, normalizedURL, rep); err != nil {
		s.logger.Warn("Failed to cache verdict",
			zap.Error(err), zap.String("url", normalizedURL))
	}

	return rep, nil
}

// record persists a check. Persistence failures are logged, not returned:
// the verdict is already decided and the caller should still receive it.
func (s *CheckService) record(ctx context.Context, rec *domain.CheckRecord) {
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("Failed to persist check record",
			zap.Error(err), zap.String("verdict", rec.Verdict))
	}
}
