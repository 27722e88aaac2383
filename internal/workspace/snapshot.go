package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"appbuilder/editor-backend/internal/onboarding"
)

// IsWidgetActionConnectionPresent reports whether any widget reads from or triggers an action.
// A widget reads from an action when its dependencies name the action; it triggers one when
// a dynamic trigger property calls <action>.run.
func IsWidgetActionConnectionPresent(widgets []Widget, actions []Action, deps map[string][]string) bool {
	if len(actions) == 0 {
		return false
	}
	labels := make(map[string]struct{}, len(actions))
	for _, action := range actions {
		labels[action.Name] = struct{}{}
	}

	for _, widget := range widgets {
		for _, dep := range deps[widget.WidgetName] {
			if _, ok := labels[dep]; ok {
				return true
			}
		}
	}

	for _, widget := range widgets {
		for _, snippet := range widget.TriggerSnippets() {
			for label := range labels {
				if strings.Contains(snippet, label+".run") {
					return true
				}
			}
		}
	}
	return false
}

// BuildSnapshot projects a workspace into the onboarding input
func BuildSnapshot(ws *Workspace, onboardingComplete bool) onboarding.Snapshot {
	return onboarding.Snapshot{
		DatasourceCount:           len(ws.Datasources),
		ActionCount:               len(ws.Actions),
		WidgetCount:               len(ws.Widgets),
		HasWidgetActionConnection: IsWidgetActionConnectionPresent(ws.Widgets, ws.Actions, ws.Dependencies),
		IsDeployed:                ws.Application.LastDeployedAt != nil,
		OnboardingComplete:        onboardingComplete,
	}
}

// SnapshotSource serves onboarding snapshots from the workspace repository
type SnapshotSource struct {
	repo Repository
}

func NewSnapshotSource(repo Repository) *SnapshotSource {
	return &SnapshotSource{repo: repo}
}

func (s *SnapshotSource) Snapshot(ctx context.Context, applicationID, pageID string) (*onboarding.Snapshot, error) {
	appID, err := uuid.Parse(applicationID)
	if err != nil {
		return nil, fmt.Errorf("%w: application %q", ErrNotFound, applicationID)
	}
	pID := uuid.Nil
	if pageID != "" {
		if pID, err = uuid.Parse(pageID); err != nil {
			return nil, fmt.Errorf("%w: page %q", ErrNotFound, pageID)
		}
	}

	ws, err := s.repo.LoadWorkspace(ctx, appID, pID)
	if err != nil {
		return nil, err
	}
	snapshot := BuildSnapshot(ws, false)
	return &snapshot, nil
}
