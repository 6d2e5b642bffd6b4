package store

import (
	"context"
	"time"

	"github.com/driftlab/sponge/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

// ClaimStore keeps embeddings of previously heard claims so novelty can
// be measured against what the sponge has already been told.
type ClaimStore struct {
	db *pgxpool.Pool
}

func NewClaimStore(db *pgxpool.Pool) *ClaimStore {
	return &ClaimStore{db: db}
}

func (s *ClaimStore) Create(ctx context.Context, c *domain.Claim) error {
	embedding := pgvector.NewVector(c.Embedding)
	return s.db.QueryRow(ctx,
		`INSERT INTO claims (topic, content, embedding)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		c.Topic, c.Content, embedding,
	).Scan(&c.ID, &c.CreatedAt)
}

func (s *ClaimStore) FindSimilar(ctx context.Context, topic string, embedding []float32, limit int) ([]domain.ClaimWithScore, error) {
	vec := pgvector.NewVector(embedding)
	rows, err := s.db.Query(ctx,
		`SELECT id, topic, content, created_at, 1 - (embedding <=> $1) AS score
		 FROM claims
		 WHERE topic = $2
		 ORDER BY embedding <=> $1
		 LIMIT $3`,
		vec, topic, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.ClaimWithScore
	for rows.Next() {
		var c domain.ClaimWithScore
		if err := rows.Scan(&c.ID, &c.Topic, &c.Content, &c.CreatedAt, &c.Score); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

func (s *ClaimStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM claims WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
