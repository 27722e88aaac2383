package settings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	GetGitProfile(ctx context.Context, userID string) (*GitProfile, error)
	SaveGitProfile(ctx context.Context, profile *GitProfile) error
}

// RepositoryImpl stores git profiles in postgres
type RepositoryImpl struct {
	db *sqlx.DB
}

// NewRepository creates a new settings repository
func NewRepository(db *sqlx.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// GetGitProfile returns nil, nil when the user has not saved a profile
func (r *RepositoryImpl) GetGitProfile(ctx context.Context, userID string) (*GitProfile, error) {
	var profile GitProfile
	err := r.db.GetContext(ctx, &profile, `
		SELECT user_id, author_name, author_email, created_at, updated_at
		FROM git_profiles WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *RepositoryImpl) SaveGitProfile(ctx context.Context, profile *GitProfile) error {
	query := `
		INSERT INTO git_profiles (user_id, author_name, author_email, created_at, updated_at)
		VALUES (:user_id, :author_name, :author_email, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			author_name = EXCLUDED.author_name,
			author_email = EXCLUDED.author_email,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.NamedExecContext(ctx, query, profile)
	return err
}
