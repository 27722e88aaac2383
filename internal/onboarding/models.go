package onboarding

import "time"

// StatusMessage is the status line shown under the onboarding progress bar
type StatusMessage string

const (
	StepFirst    StatusMessage = "First: Add a datasource"
	StepFirstAlt StatusMessage = "Next: Add a datasource"
	StepSecond   StatusMessage = "Next: Create a query"
	StepThird    StatusMessage = "Next: Add a widget"
	StepFourth   StatusMessage = "Next: Connect data to widget"
	StepFifth    StatusMessage = "Next: Deploy your application"
	StepSixth    StatusMessage = "Completed 🎉"

	// GetStartedTitle is the heading rendered above the status line
	GetStartedTitle = "GET STARTED"
)

// Points contributed by each satisfied onboarding condition
const stepWeight = 20

// Snapshot is a read-only view of the workspace used for a single progress computation
type Snapshot struct {
	DatasourceCount           int  `json:"datasource_count"`
	ActionCount               int  `json:"action_count"`
	WidgetCount               int  `json:"widget_count"`
	HasWidgetActionConnection bool `json:"has_widget_action_connection"`
	IsDeployed                bool `json:"is_deployed"`
	OnboardingComplete        bool `json:"onboarding_complete"`
}

// ProgressResult is recomputed on every snapshot change
type ProgressResult struct {
	Percentage int           `json:"percentage"`
	Message    StatusMessage `json:"message"`
}

// State holds the persisted first time user onboarding flags for a user
type State struct {
	UserID        string    `json:"user_id" db:"user_id"`
	Enabled       bool      `json:"enabled" db:"enabled"`
	ApplicationID string    `json:"application_id" db:"application_id"`
	Complete      bool      `json:"complete" db:"complete"`
	ShowHelper    bool      `json:"show_helper" db:"show_helper"`
	InOnboarding  bool      `json:"in_onboarding" db:"in_onboarding"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// IntentType names a state mutation request
type IntentType string

const (
	IntentSetEnabled       IntentType = "SET_ENABLE_FIRST_TIME_USER_ONBOARDING"
	IntentSetApplicationID IntentType = "SET_FIRST_TIME_USER_ONBOARDING_APPLICATION_ID"
	IntentSetComplete      IntentType = "SET_FIRST_TIME_USER_ONBOARDING_COMPLETE"
	IntentSetShowHelper    IntentType = "SET_SHOW_ONBOARDING_HELPER"
	IntentSetInOnboarding  IntentType = "SET_IN_ONBOARDING"
)

// Intent is a named state mutation emitted by the engine and executed by a Dispatcher
type Intent struct {
	Type    IntentType  `json:"type"`
	Payload interface{} `json:"payload"`
}

// TransitionDecision lists the intents to dispatch, in order
type TransitionDecision struct {
	Intents []Intent `json:"intents"`
}

// Empty reports whether the decision carries no intents
func (d TransitionDecision) Empty() bool {
	return len(d.Intents) == 0
}

// Phase is the lifecycle position of a user's onboarding tour
type Phase string

const (
	PhaseNotStarted Phase = "NOT_STARTED"
	PhaseInProgress Phase = "IN_PROGRESS"
	PhaseCompleted  Phase = "COMPLETED"
)

// Status is the response returned to the editor status bar
type Status struct {
	Title         string         `json:"title"`
	ApplicationID string         `json:"application_id"`
	PageID        string         `json:"page_id"`
	Progress      ProgressResult `json:"progress"`
	Phase         Phase          `json:"phase"`
	Completed     bool           `json:"completed"`
	Snapshot      Snapshot       `json:"snapshot"`
}

// StateView is the projection of State the editor uses to decide what to show
type StateView struct {
	State         State `json:"state"`
	Phase         Phase `json:"phase"`
	Enabled       bool  `json:"first_time_user_onboarding_enabled"`
	HelperVisible bool  `json:"helper_visible"`
}
