package onboarding

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"

	"appbuilder/editor-backend/pkg/workflows"
)

// SnapshotSource projects workspace state into a Snapshot. An empty pageID selects
// the application's default page. OnboardingComplete is filled in by the service.
type SnapshotSource interface {
	Snapshot(ctx context.Context, applicationID, pageID string) (*Snapshot, error)
}

// StatusPublisher pushes status updates to the user's open editor sessions
type StatusPublisher interface {
	PublishOnboardingStatus(ctx context.Context, userID, applicationID string, status interface{}) error
}

type Service interface {
	GetStatus(ctx context.Context, userID, applicationID, pageID string) (*Status, error)
	GetState(ctx context.Context, userID, applicationID string, commentMode bool) (*StateView, error)
	Start(ctx context.Context, userID, applicationID string) (*State, error)
	End(ctx context.Context, userID string) (*State, error)
	Reconcile(ctx context.Context) (int, error)
}

type onboardingService struct {
	repo         Repository
	source       SnapshotSource
	dispatcher   Dispatcher
	publisher    StatusPublisher
	stateMachine *workflows.StateMachine
	logger       *zap.Logger

	locks [lockStripes]sync.Mutex
}

// lockStripes bounds the number of user locks; users hashing to the same stripe serialise
const lockStripes = 64

func NewService(repo Repository, source SnapshotSource, dispatcher Dispatcher, publisher StatusPublisher, logger *zap.Logger) Service {
	return &onboardingService{
		repo:         repo,
		source:       source,
		dispatcher:   dispatcher,
		publisher:    publisher,
		stateMachine: workflows.NewOnboardingStateMachine(),
		logger:       logger,
	}
}

func lockStripe(userID string) int {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return int(h.Sum32() % lockStripes)
}

func (s *onboardingService) lock(userID string) func() {
	m := &s.locks[lockStripe(userID)]
	m.Lock()
	return m.Unlock
}

func (s *onboardingService) loadState(ctx context.Context, userID string) (State, error) {
	state, err := s.repo.GetState(ctx, userID)
	if err != nil {
		return State{}, fmt.Errorf("failed to load onboarding state: %w", err)
	}
	if state == nil {
		return State{UserID: userID}, nil
	}
	return *state, nil
}

// GetStatus computes the status bar for the page open in the editor and completes
// the onboarding when progress reaches 100.
func (s *onboardingService) GetStatus(ctx context.Context, userID, applicationID, pageID string) (*Status, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if applicationID == "" {
		return nil, ErrMissingApp
	}

	unlock := s.lock(userID)
	defer unlock()

	state, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.source.Snapshot(ctx, applicationID, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to build workspace snapshot: %w", err)
	}
	snapshot.OnboardingComplete = state.Complete

	progress := ComputeProgress(*snapshot)
	state, err = s.complete(ctx, state, applicationID, *snapshot)
	if err != nil {
		return nil, err
	}

	status := &Status{
		Title:         GetStartedTitle,
		ApplicationID: applicationID,
		PageID:        pageID,
		Progress:      progress,
		Phase:         PhaseOf(state),
		Completed:     state.Complete,
		Snapshot:      *snapshot,
	}
	s.publish(ctx, userID, applicationID, status)
	return status, nil
}

// complete dispatches the completion intents when the decision asks for it and the
// tour is running for this user on the application being looked at
func (s *onboardingService) complete(ctx context.Context, state State, applicationID string, snapshot Snapshot) (State, error) {
	decision := MaybeCompleteOnboarding(snapshot)
	if decision.Empty() {
		return state, nil
	}

	if !IsFirstTimeUserOnboardingEnabled(state, applicationID) {
		s.logger.Debug("Skipping onboarding completion outside the toured application",
			zap.String("user_id", state.UserID),
			zap.String("onboarding_application_id", state.ApplicationID),
			zap.String("application_id", applicationID))
		return state, nil
	}

	from := PhaseOf(state)
	if !s.stateMachine.CanTransition(string(from), string(PhaseCompleted)) {
		s.logger.Debug("Skipping onboarding completion",
			zap.String("user_id", state.UserID),
			zap.String("phase", string(from)))
		return state, nil
	}

	next, err := s.dispatcher.Dispatch(ctx, state.UserID, decision.Intents)
	if err != nil {
		return state, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	s.logger.Info("First time user onboarding completed",
		zap.String("user_id", state.UserID),
		zap.String("application_id", state.ApplicationID))
	return *next, nil
}

func (s *onboardingService) publish(ctx context.Context, userID, applicationID string, status *Status) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOnboardingStatus(ctx, userID, applicationID, status); err != nil {
		s.logger.Debug("Onboarding status not pushed",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

func (s *onboardingService) GetState(ctx context.Context, userID, applicationID string, commentMode bool) (*StateView, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	state, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &StateView{
		State:         state,
		Phase:         PhaseOf(state),
		Enabled:       IsFirstTimeUserOnboardingEnabled(state, applicationID),
		HelperVisible: IsHelperVisible(state, commentMode),
	}, nil
}

// Start enables the tour for an application. Starting while in progress moves the tour
// to the new application; a completed tour cannot be restarted.
func (s *onboardingService) Start(ctx context.Context, userID, applicationID string) (*State, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if applicationID == "" {
		return nil, ErrMissingApp
	}

	unlock := s.lock(userID)
	defer unlock()

	state, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	from := PhaseOf(state)
	if from != PhaseInProgress && !s.stateMachine.CanTransition(string(from), string(PhaseInProgress)) {
		return nil, fmt.Errorf("%w: cannot start onboarding from %s", ErrInvalidTransition, from)
	}

	next, err := s.dispatcher.Dispatch(ctx, userID, StartOnboarding(applicationID).Intents)
	if err != nil {
		return nil, fmt.Errorf("failed to start onboarding: %w", err)
	}
	s.logger.Info("First time user onboarding started",
		zap.String("user_id", userID),
		zap.String("application_id", applicationID))
	return next, nil
}

// End skips the tour without marking it complete
func (s *onboardingService) End(ctx context.Context, userID string) (*State, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	unlock := s.lock(userID)
	defer unlock()

	state, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	from := PhaseOf(state)
	if !s.stateMachine.CanTransition(string(from), string(PhaseNotStarted)) {
		return nil, fmt.Errorf("%w: cannot end onboarding from %s", ErrInvalidTransition, from)
	}

	next, err := s.dispatcher.Dispatch(ctx, userID, EndOnboarding().Intents)
	if err != nil {
		return nil, fmt.Errorf("failed to end onboarding: %w", err)
	}
	s.logger.Info("First time user onboarding ended", zap.String("user_id", userID))
	return next, nil
}

// Reconcile recomputes progress for every running tour and completes the ones at 100.
// It returns the number of tours completed.
func (s *onboardingService) Reconcile(ctx context.Context) (int, error) {
	states, err := s.repo.ListEnabled(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list running onboardings: %w", err)
	}

	completed := 0
	var errs []error
	for _, state := range states {
		if err := ctx.Err(); err != nil {
			return completed, err
		}
		status, err := s.GetStatus(ctx, state.UserID, state.ApplicationID, "")
		if err != nil {
			s.logger.Error("Failed to reconcile onboarding",
				zap.String("user_id", state.UserID),
				zap.String("application_id", state.ApplicationID),
				zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if status.Completed {
			completed++
		}
	}
	return completed, errors.Join(errs...)
}
