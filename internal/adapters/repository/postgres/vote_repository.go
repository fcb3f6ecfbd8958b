package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/countryvote/api/internal/core/domain"
	"github.com/countryvote/api/internal/core/ports"
)

const uniqueViolation = "23505"

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// Save inserts the vote. The unique index on email is the arbiter of
// concurrent submissions for the same address; its rejection is re-signaled
// as domain.ErrAlreadyVoted.
func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, name, email, country_code, country_name, flag, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.ExecContext(ctx, query,
		vote.ID, vote.Name, vote.Email, vote.CountryCode, vote.CountryName, vote.Flag, vote.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) FindByEmail(ctx context.Context, email string) (*domain.Vote, error) {
	query := `
		SELECT id, name, email, country_code, country_name, flag, created_at
		FROM votes
		WHERE email = $1
	`
	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&vote.ID, &vote.Name, &vote.Email, &vote.CountryCode, &vote.CountryName, &vote.Flag, &vote.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vote by email: %w", err)
	}
	return &vote, nil
}

func (r *voteRepository) FindAll(ctx context.Context) ([]domain.Vote, error) {
	query := `
		SELECT id, name, email, country_code, country_name, flag, created_at
		FROM votes
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	votes := make([]domain.Vote, 0)
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(
			&vote.ID, &vote.Name, &vote.Email, &vote.CountryCode, &vote.CountryName, &vote.Flag, &vote.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

func (r *voteRepository) CountByCountry(ctx context.Context, limit int) ([]domain.CountryVoteCount, error) {
	query := `
		SELECT country_code, COUNT(*) AS votes
		FROM votes
		GROUP BY country_code
		ORDER BY votes DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate votes by country: %w", err)
	}
	defer rows.Close()

	counts := make([]domain.CountryVoteCount, 0, limit)
	for rows.Next() {
		var count domain.CountryVoteCount
		if err := rows.Scan(&count.CountryCode, &count.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}
	return counts, nil
}

func (r *voteRepository) CountDistinctCountries(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT country_code) FROM votes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct countries: %w", err)
	}
	return count, nil
}
