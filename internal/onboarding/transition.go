package onboarding

import (
	"context"
	"fmt"
	"time"
)

// Dispatcher executes transition intents
type Dispatcher interface {
	Dispatch(ctx context.Context, userID string, intents []Intent) (*State, error)
}

// MaybeCompleteOnboarding emits the completion intents once progress reaches 100.
// The OnboardingComplete guard makes repeated calls no-ops after the transition.
func MaybeCompleteOnboarding(s Snapshot) TransitionDecision {
	if s.OnboardingComplete || ComputeProgress(s).Percentage != 100 {
		return TransitionDecision{}
	}
	return TransitionDecision{Intents: []Intent{
		{Type: IntentSetEnabled, Payload: false},
		{Type: IntentSetApplicationID, Payload: ""},
		{Type: IntentSetComplete, Payload: true},
	}}
}

// EndOnboarding is the decision taken when the user skips the tour.
// The complete flag is left untouched.
func EndOnboarding() TransitionDecision {
	return TransitionDecision{Intents: []Intent{
		{Type: IntentSetEnabled, Payload: false},
		{Type: IntentSetApplicationID, Payload: ""},
		{Type: IntentSetInOnboarding, Payload: false},
	}}
}

// StartOnboarding enables the tour for an application
func StartOnboarding(applicationID string) TransitionDecision {
	return TransitionDecision{Intents: []Intent{
		{Type: IntentSetEnabled, Payload: true},
		{Type: IntentSetApplicationID, Payload: applicationID},
		{Type: IntentSetShowHelper, Payload: true},
		{Type: IntentSetInOnboarding, Payload: true},
	}}
}

// Reduce applies a single intent to a state and returns the new state.
// Complete is never reset once set.
func Reduce(state State, intent Intent) (State, error) {
	switch intent.Type {
	case IntentSetEnabled:
		v, ok := intent.Payload.(bool)
		if !ok {
			return state, fmt.Errorf("%w: %s expects a bool", ErrInvalidIntent, intent.Type)
		}
		state.Enabled = v
	case IntentSetApplicationID:
		v, ok := intent.Payload.(string)
		if !ok {
			return state, fmt.Errorf("%w: %s expects a string", ErrInvalidIntent, intent.Type)
		}
		state.ApplicationID = v
	case IntentSetComplete:
		v, ok := intent.Payload.(bool)
		if !ok {
			return state, fmt.Errorf("%w: %s expects a bool", ErrInvalidIntent, intent.Type)
		}
		state.Complete = state.Complete || v
	case IntentSetShowHelper:
		v, ok := intent.Payload.(bool)
		if !ok {
			return state, fmt.Errorf("%w: %s expects a bool", ErrInvalidIntent, intent.Type)
		}
		state.ShowHelper = v
	case IntentSetInOnboarding:
		v, ok := intent.Payload.(bool)
		if !ok {
			return state, fmt.Errorf("%w: %s expects a bool", ErrInvalidIntent, intent.Type)
		}
		state.InOnboarding = v
	default:
		return state, fmt.Errorf("%w: unknown intent %s", ErrInvalidIntent, intent.Type)
	}
	state.UpdatedAt = time.Now()
	return state, nil
}

// ReduceAll applies intents in order
func ReduceAll(state State, intents []Intent) (State, error) {
	var err error
	for _, intent := range intents {
		state, err = Reduce(state, intent)
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

// PhaseOf derives the lifecycle phase from persisted flags
func PhaseOf(state State) Phase {
	switch {
	case state.Complete:
		return PhaseCompleted
	case state.Enabled:
		return PhaseInProgress
	default:
		return PhaseNotStarted
	}
}

// IsFirstTimeUserOnboardingEnabled reports whether the tour applies to the application open in the editor
func IsFirstTimeUserOnboardingEnabled(state State, currentApplicationID string) bool {
	return state.Enabled && currentApplicationID == state.ApplicationID
}

// IsHelperVisible hides the helper while the editor is in comment mode
func IsHelperVisible(state State, commentMode bool) bool {
	return state.ShowHelper && !commentMode
}
