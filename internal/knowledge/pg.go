package knowledge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Store wraps a PostgreSQL connection pool holding the taxonomy. It is an
// alternative to the JSONL file source for deployments that keep the
// taxonomy in a shared database with a pgvector embedding column.
type Store struct {
	pool *pgxpool.Pool
}

// ConnectStore establishes a connection pool to the taxonomy database
func ConnectStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// LoadIndex reads every taxonomy row and builds the in-memory index.
// Rows with undecodable related-edge payloads or invalid categories are
// skipped with a warning, mirroring the JSONL loader.
func (s *Store) LoadIndex(ctx context.Context, logger *zap.Logger) (*Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, category, aliases, embedding, related
		 FROM taxonomy_skills ORDER BY id`)
	if err != nil {
		return nil, &LoadError{Source: "taxonomy_skills", Cause: err}
	}
	defer rows.Close()

	var (
		skills  []types.Skill
		skipped int
	)
	for rows.Next() {
		var (
			skill       types.Skill
			category    string
			aliases     []string
			vec         *pgvector.Vector
			relatedJSON []byte
		)
		if err := rows.Scan(&skill.ID, &skill.Name, &category, &aliases, &vec, &relatedJSON); err != nil {
			return nil, &LoadError{Source: "taxonomy_skills", Cause: fmt.Errorf("failed to scan row: %w", err)}
		}

		skill.Category = types.SkillCategory(category)
		if !skill.Category.Valid() || skill.Name == "" {
			skipped++
			logger.Warn("skipping malformed taxonomy row",
				zap.String("id", skill.ID),
				zap.String("category", category))
			continue
		}

		skill.Aliases = aliases
		if vec != nil {
			skill.Embedding = vec.Slice()
		}
		if len(relatedJSON) > 0 {
			if err := json.Unmarshal(relatedJSON, &skill.Related); err != nil {
				skipped++
				logger.Warn("skipping taxonomy row with undecodable related edges",
					zap.String("id", skill.ID),
					zap.Error(err))
				continue
			}
		}

		skills = append(skills, skill)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: "taxonomy_skills", Cause: err}
	}
	if len(skills) == 0 {
		return nil, &LoadError{Source: "taxonomy_skills", Cause: fmt.Errorf("no valid taxonomy rows found (%d skipped)", skipped)}
	}

	idx, err := NewIndex(skills, skipped)
	if err != nil {
		return nil, &LoadError{Source: "taxonomy_skills", Cause: err}
	}

	logger.Info("taxonomy loaded from database",
		zap.Int("entries", idx.Count()),
		zap.Int("skipped", skipped),
		zap.Int("dimensions", idx.Dimensions()))
	return idx, nil
}

// UpsertSkill writes one taxonomy entry, replacing any previous row with the
// same ID. Used by the taxonomy build tool to push a new snapshot.
func (s *Store) UpsertSkill(ctx context.Context, skill types.Skill) error {
	relatedJSON, err := json.Marshal(skill.Related)
	if err != nil {
		return fmt.Errorf("failed to marshal related edges for %s: %w", skill.ID, err)
	}

	var vec *pgvector.Vector
	if len(skill.Embedding) > 0 {
		v := pgvector.NewVector(skill.Embedding)
		vec = &v
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO taxonomy_skills (id, name, category, aliases, embedding, related)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		 SET name = $2, category = $3, aliases = $4, embedding = $5, related = $6`,
		skill.ID, skill.Name, string(skill.Category), skill.Aliases, vec, relatedJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert skill %s: %w", skill.ID, err)
	}
	return nil
}
