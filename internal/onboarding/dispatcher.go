package onboarding

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// StoreDispatcher applies intents to the persisted state of a user
type StoreDispatcher struct {
	repo   Repository
	logger *zap.Logger
}

func NewStoreDispatcher(repo Repository, logger *zap.Logger) *StoreDispatcher {
	return &StoreDispatcher{repo: repo, logger: logger}
}

func (d *StoreDispatcher) Dispatch(ctx context.Context, userID string, intents []Intent) (*State, error) {
	current, err := d.repo.GetState(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding state: %w", err)
	}
	if current == nil {
		current = &State{UserID: userID}
	}

	next, err := ReduceAll(*current, intents)
	if err != nil {
		return nil, err
	}
	if err := d.repo.SaveState(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save onboarding state: %w", err)
	}

	for _, intent := range intents {
		d.logger.Info("Onboarding intent applied",
			zap.String("user_id", userID),
			zap.String("intent", string(intent.Type)),
			zap.Any("payload", intent.Payload))
	}
	return &next, nil
}
