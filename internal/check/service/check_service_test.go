package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkguard/go-url-guard/internal/check/domain"
	"github.com/linkguard/go-url-guard/internal/check/metrics"
)

type fakeRepo struct {
	created   []*domain.CheckRecord
	createErr error
	recent    []*domain.CheckRecord
	recentErr error
	countErr  error
}

func (f *fakeRepo) Create(ctx context.Context, rec *domain.CheckRecord) error {
	f.created = append(f.created, rec)
	return f.createErr
}

func (f *fakeRepo) ListRecent(ctx context.Context, limit, offset int) ([]*domain.CheckRecord, error) {
	return f.recent, f.recentErr
}

func (f *fakeRepo) CountByVerdict(ctx context.Context, verdict string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, rec := range f.created {
		if rec.Verdict == verdict {
			n++
		}
	}
	return n, nil
}

type fakeCache struct {
	entries map[string]*domain.Reputation
	getErr  error
	setErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*domain.Reputation{}}
}

func (f *fakeCache) Get(ctx context.Context, url string) (*domain.Reputation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[url], nil
}

func (f *fakeCache) Set(ctx context.Context, url string, rep *domain.Reputation) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[url] = rep
	f.sets++
	return nil
}

type fakeReputation struct {
	rep     *domain.Reputation
	err     error
	lookups []string
}

func (f *fakeReputation) Lookup(ctx context.Context, url string) (*domain.Reputation, error) {
	f.lookups = append(f.lookups, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.rep, nil
}

type fakePublisher struct {
	checked  []*domain.CheckRecord
	rejected []*domain.CheckRecord
}

func (f *fakePublisher) PublishURLChecked(ctx context.Context, rec *domain.CheckRecord) error {
	f.checked = append(f.checked, rec)
	return nil
}

func (f *fakePublisher) PublishURLRejected(ctx context.Context, rec *domain.CheckRecord) error {
	f.rejected = append(f.rejected, rec)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fixture struct {
	svc        *CheckService
	repo       *fakeRepo
	cache      *fakeCache
	reputation *fakeReputation
	publisher  *fakePublisher
}

func newFixture() *fixture {
	repo := &fakeRepo{}
	cache := newFakeCache()
	reputation := &fakeReputation{rep: &domain.Reputation{}}
	publisher := &fakePublisher{}

	svc := NewCheckService(repo, cache, reputation, publisher,
		zap.NewNop(), metrics.NewInMemoryMetrics())

	return &fixture{svc, repo, cache, reputation, publisher}
}

func TestCheckURLRejectsInvalidInput(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CheckURL(context.Background(), "ex--ample.com")
	require.NoError(t, err)

	assert.False(t, resp.Valid)
	assert.Equal(t, domain.VerdictRejected, resp.Verdict)
	assert.Contains(t, resp.Reason, "hyphens")
	assert.Empty(t, resp.NormalizedURL)

	require.Len(t, f.repo.created, 1)
	assert.Equal(t, domain.VerdictRejected, f.repo.created[0].Verdict)

	assert.Len(t, f.publisher.rejected, 1)
	assert.Empty(t, f.publisher.checked)
	assert.Empty(t, f.reputation.lookups, "rejected input must not reach the remote lookup")
}

func TestCheckURLAcceptsAndPersists(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CheckURL(context.Background(), "Example.COM")
	require.NoError(t, err)

	assert.True(t, resp.Valid)
	assert.Equal(t, "https://example.com", resp.NormalizedURL)
	assert.Equal(t, domain.VerdictAccepted, resp.Verdict)
	assert.Empty(t, resp.Reason)

	// The remote lookup sees the normalized URL, never the raw input.
	require.Len(t, f.reputation.lookups, 1)
	assert.Equal(t, "https://example.com", f.reputation.lookups[0])

	require.Len(t, f.repo.created, 1)
	assert.Equal(t, domain.VerdictAccepted, f.repo.created[0].Verdict)
	assert.Len(t, f.publisher.checked, 1)

	assert.Equal(t, 1, f.cache.sets, "verdict should be cached after a miss")
}

func TestCheckURLFlagsThreats(t *testing.T) {
	f := newFixture()
	f.reputation.rep = &domain.Reputation{Threat: true, ThreatType: "phishing"}

	resp, err := f.svc.CheckURL(context.Background(), "example.com")
	require.NoError(t, err)

	assert.True(t, resp.Valid)
	assert.Equal(t, domain.VerdictFlagged, resp.Verdict)
	assert.Equal(t, "phishing", resp.ThreatType)
}

func TestCheckURLUsesCachedVerdict(t *testing.T) {
	f := newFixture()
	f.cache.entries["https://example.com"] = &domain.Reputation{
		Threat: true, ThreatType: "malware",
	}

	resp, err := f.svc.CheckURL(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictFlagged, resp.Verdict)
	assert.Equal(t, "malware", resp.ThreatType)
	assert.Empty(t, f.reputation.lookups, "cache hit must skip the remote lookup")
}

func TestCheckURLFailsOpenOnLookupError(t *testing.T) {
	f := newFixture()
	f.reputation.err = errors.New("upstream down")

	resp, err := f.svc.CheckURL(context.Background(), "example.com")
	require.NoError(t, err)

	assert.True(t, resp.Valid)
	assert.Equal(t, domain.VerdictAccepted, resp.Verdict)
	assert.Empty(t, resp.ThreatType)
	assert.Equal(t, 0, f.cache.sets, "failed lookups must not be cached")
}

func TestPrecheck(t *testing.T) {
	f := newFixture()

	assert.True(t, f.svc.Precheck("example.com").OK)
	assert.False(t, f.svc.Precheck("exa").OK)
	assert.False(t, f.svc.Precheck("no-dot").OK)
	assert.Empty(t, f.repo.created, "precheck must not persist anything")
}

func TestStatsCountsPerVerdict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CheckURL(ctx, "example.com")
	require.NoError(t, err)
	_, err = f.svc.CheckURL(ctx, "blog.example.com")
	require.NoError(t, err)
	_, err = f.svc.CheckURL(ctx, "ex--ample.com")
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats[domain.VerdictAccepted])
	assert.Equal(t, int64(1), stats[domain.VerdictRejected])
	assert.Equal(t, int64(0), stats[domain.VerdictFlagged])
}

func TestStatsWrapsRepoError(t *testing.T) {
	f := newFixture()
	f.repo.countErr = errors.New("db gone")

	_, err := f.svc.Stats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count")
}

func TestRecentChecksWrapsRepoError(t *testing.T) {
	f := newFixture()
	f.repo.recentErr = errors.New("db gone")

	_, err := f.svc.RecentChecks(context.Background(), 10, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recent checks")
}
