package domain

import "context"

// Repository persists check records.
type Repository interface {
	Create(ctx context.Context, rec *CheckRecord) error
	ListRecent(ctx context.Context, limit, offset int) ([]*CheckRecord, error)
	CountByVerdict(ctx context.Context, verdict string) (int64, error)
}

// VerdictCache caches reputation verdicts keyed by normalized URL.
type VerdictCache interface {
	Get(ctx context.Context, normalizedURL string) (*Reputation, error)
	Set(ctx context.Context, normalizedURL string, rep *Reputation) error
}

// EventPublisher publishes domain events for downstream consumers.
type EventPublisher interface {
	PublishURLChecked(ctx context.Context, rec *CheckRecord) error
	PublishURLRejected(ctx context.Context, rec *CheckRecord) error
	Close() error
}

// ReputationClient looks up a normalized URL against the remote
// safe-browsing service.
type ReputationClient interface {
	Lookup(ctx context.Context, normalizedURL string) (*Reputation, error)
}
