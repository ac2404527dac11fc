package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/linkguard/go-url-guard/internal/check/domain"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *domain.CheckRecord) error {
	query := `
        INSERT INTO url_checks (input, normalized_url, verdict, reason, threat_type)
        VALUES (:input, :normalized_url, :verdict, :reason, :threat_type)
        RETURNING id, created_at`

	rows, err := r.db.NamedQueryContext(ctx, query, rec)
	if err != nil {
		return fmt.Errorf("failed to insert check record: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&rec.ID, &rec.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan returning values: %w", err)
		}
	}

	return nil
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit, offset int) (
	[]*domain.CheckRecord, error) {

	query := `
        SELECT id, input, normalized_url, verdict, reason, threat_type, created_at
        FROM url_checks
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	var recs []*domain.CheckRecord
	if err := r.db.SelectContext(ctx, &recs, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list check records: %w", err)
	}

	return recs, nil
}

func (r *PostgresRepository) CountByVerdict(ctx context.Context, verdict string) (
	int64, error) {

	query := `SELECT COUNT(*) FROM url_checks WHERE verdict = $1`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, verdict); err != nil {
		return 0, fmt.Errorf("failed to count check records: %w", err)
	}

	return count, nil
}
