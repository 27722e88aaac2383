package onboarding

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	GetState(ctx context.Context, userID string) (*State, error)
	SaveState(ctx context.Context, state *State) error
	ListEnabled(ctx context.Context) ([]State, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// GetState returns nil, nil when the user has no onboarding row yet
func (r *postgresRepository) GetState(ctx context.Context, userID string) (*State, error) {
	var state State
	err := r.db.GetContext(ctx, &state, `
		SELECT user_id, enabled, application_id, complete, show_helper, in_onboarding, updated_at
		FROM onboarding_states WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState upserts the flags. complete is OR-ed with the stored value so it is never reset.
func (r *postgresRepository) SaveState(ctx context.Context, state *State) error {
	query := `
		INSERT INTO onboarding_states (
			user_id, enabled, application_id, complete, show_helper, in_onboarding, updated_at
		) VALUES (
			:user_id, :enabled, :application_id, :complete, :show_helper, :in_onboarding, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			application_id = EXCLUDED.application_id,
			complete = onboarding_states.complete OR EXCLUDED.complete,
			show_helper = EXCLUDED.show_helper,
			in_onboarding = EXCLUDED.in_onboarding,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.NamedExecContext(ctx, query, state)
	return err
}

func (r *postgresRepository) ListEnabled(ctx context.Context) ([]State, error) {
	var states []State
	err := r.db.SelectContext(ctx, &states, `
		SELECT user_id, enabled, application_id, complete, show_helper, in_onboarding, updated_at
		FROM onboarding_states
		WHERE enabled = TRUE AND complete = FALSE AND application_id <> ''
		ORDER BY updated_at`)
	return states, err
}
