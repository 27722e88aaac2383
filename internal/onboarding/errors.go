package onboarding

import "errors"

var (
	ErrInvalidIntent     = errors.New("invalid onboarding intent")
	ErrInvalidTransition = errors.New("invalid onboarding transition")
	ErrMissingUser       = errors.New("user id is required")
	ErrMissingApp        = errors.New("application id is required")
	ErrWorkspaceNotFound = errors.New("application or page not found")
)
