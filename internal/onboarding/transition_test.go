package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var completeSnapshot = Snapshot{
	DatasourceCount:           1,
	ActionCount:               1,
	WidgetCount:               2,
	HasWidgetActionConnection: true,
	IsDeployed:                true,
}

func TestMaybeCompleteOnboardingEmitsIntentsOnce(t *testing.T) {
	decision := MaybeCompleteOnboarding(completeSnapshot)
	require.Equal(t, []Intent{
		{Type: IntentSetEnabled, Payload: false},
		{Type: IntentSetApplicationID, Payload: ""},
		{Type: IntentSetComplete, Payload: true},
	}, decision.Intents)

	state, err := ReduceAll(State{UserID: "u1", Enabled: true, ApplicationID: "app-1"}, decision.Intents)
	require.NoError(t, err)
	assert.False(t, state.Enabled)
	assert.Empty(t, state.ApplicationID)
	assert.True(t, state.Complete)

	after := completeSnapshot
	after.OnboardingComplete = state.Complete
	assert.True(t, MaybeCompleteOnboarding(after).Empty())
}

func TestMaybeCompleteOnboardingBelowHundred(t *testing.T) {
	for _, s := range allSnapshots() {
		decision := MaybeCompleteOnboarding(s)
		if s.OnboardingComplete || ComputePercentage(s) < 100 {
			assert.True(t, decision.Empty(), "%+v", s)
		} else {
			assert.Len(t, decision.Intents, 3, "%+v", s)
		}
	}
}

func TestReduce(t *testing.T) {
	state := State{UserID: "u1"}

	state, err := ReduceAll(state, StartOnboarding("app-1").Intents)
	require.NoError(t, err)
	assert.True(t, state.Enabled)
	assert.Equal(t, "app-1", state.ApplicationID)
	assert.True(t, state.ShowHelper)
	assert.True(t, state.InOnboarding)
	assert.False(t, state.UpdatedAt.IsZero())

	state, err = ReduceAll(state, EndOnboarding().Intents)
	require.NoError(t, err)
	assert.False(t, state.Enabled)
	assert.Empty(t, state.ApplicationID)
	assert.False(t, state.InOnboarding)
	assert.False(t, state.Complete)

	state, err = Reduce(state, Intent{Type: IntentSetComplete, Payload: true})
	require.NoError(t, err)
	state, err = Reduce(state, Intent{Type: IntentSetComplete, Payload: false})
	require.NoError(t, err)
	assert.True(t, state.Complete, "complete is never reset")

	_, err = Reduce(state, Intent{Type: IntentSetEnabled, Payload: "yes"})
	assert.ErrorIs(t, err, ErrInvalidIntent)

	_, err = Reduce(state, Intent{Type: "UNKNOWN"})
	assert.ErrorIs(t, err, ErrInvalidIntent)
}

func TestPhaseOf(t *testing.T) {
	assert.Equal(t, PhaseNotStarted, PhaseOf(State{}))
	assert.Equal(t, PhaseInProgress, PhaseOf(State{Enabled: true}))
	assert.Equal(t, PhaseCompleted, PhaseOf(State{Complete: true}))
	assert.Equal(t, PhaseCompleted, PhaseOf(State{Enabled: true, Complete: true}))
}

func TestSelectors(t *testing.T) {
	state := State{Enabled: true, ApplicationID: "app-1", ShowHelper: true}

	assert.True(t, IsFirstTimeUserOnboardingEnabled(state, "app-1"))
	assert.False(t, IsFirstTimeUserOnboardingEnabled(state, "app-2"))
	assert.False(t, IsFirstTimeUserOnboardingEnabled(State{ApplicationID: "app-1"}, "app-1"))

	assert.True(t, IsHelperVisible(state, false))
	assert.False(t, IsHelperVisible(state, true))
	assert.False(t, IsHelperVisible(State{}, false))
}
