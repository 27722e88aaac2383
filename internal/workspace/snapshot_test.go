package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"appbuilder/editor-backend/internal/onboarding"
)

func canvas() Widget {
	return Widget{ID: uuid.New(), WidgetName: "MainContainer", Type: "CANVAS_WIDGET"}
}

func TestIsWidgetActionConnectionPresent(t *testing.T) {
	actions := []Action{{Name: "Query1"}, {Name: "Api1"}}

	tests := []struct {
		name    string
		widgets []Widget
		actions []Action
		deps    map[string][]string
		want    bool
	}{
		{
			name:    "no actions",
			widgets: []Widget{canvas(), {WidgetName: "Table1"}},
			deps:    map[string][]string{"Table1": {"Query1"}},
			want:    false,
		},
		{
			name:    "widget depends on action",
			widgets: []Widget{canvas(), {WidgetName: "Table1"}},
			actions: actions,
			deps:    map[string][]string{"Table1": {"Query1"}},
			want:    true,
		},
		{
			name:    "dependency on something else",
			widgets: []Widget{canvas(), {WidgetName: "Table1"}},
			actions: actions,
			deps:    map[string][]string{"Table1": {"Input1"}, "Query1": {"Table1"}},
			want:    false,
		},
		{
			name: "trigger runs action",
			widgets: []Widget{canvas(), {
				WidgetName:             "Button1",
				DynamicTriggerPathList: datatypes.JSON(`[{"key":"onClick"}]`),
				Props:                  datatypes.JSON(`{"onClick":"{{Api1.run(() => showAlert('done'))}}"}`),
			}},
			actions: actions,
			want:    true,
		},
		{
			name: "trigger property not listed",
			widgets: []Widget{canvas(), {
				WidgetName:             "Button1",
				DynamicTriggerPathList: datatypes.JSON(`[{"key":"onHover"}]`),
				Props:                  datatypes.JSON(`{"onClick":"{{Api1.run()}}"}`),
			}},
			actions: actions,
			want:    false,
		},
		{
			name: "malformed trigger list",
			widgets: []Widget{canvas(), {
				WidgetName:             "Button1",
				DynamicTriggerPathList: datatypes.JSON(`{`),
				Props:                  datatypes.JSON(`{"onClick":"{{Api1.run()}}"}`),
			}},
			actions: actions,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWidgetActionConnectionPresent(tt.widgets, tt.actions, tt.deps))
		})
	}
}

func TestBuildSnapshot(t *testing.T) {
	deployed := time.Now()
	ws := &Workspace{
		Application:  Application{LastDeployedAt: &deployed},
		Datasources:  []Datasource{{Name: "Users DB"}},
		Actions:      []Action{{Name: "Query1"}},
		Widgets:      []Widget{canvas(), {WidgetName: "Table1"}},
		Dependencies: map[string][]string{"Table1": {"Query1"}},
	}

	snapshot := BuildSnapshot(ws, false)
	assert.Equal(t, onboarding.Snapshot{
		DatasourceCount:           1,
		ActionCount:               1,
		WidgetCount:               2,
		HasWidgetActionConnection: true,
		IsDeployed:                true,
	}, snapshot)
	assert.Equal(t, onboarding.ProgressResult{Percentage: 100, Message: onboarding.StepSixth}, onboarding.ComputeProgress(snapshot))
}

func TestPageDependencies(t *testing.T) {
	deps, err := Page{}.Dependencies()
	require.NoError(t, err)
	assert.Empty(t, deps)

	deps, err = Page{InverseDependencyMap: datatypes.JSON(`{"Table1":["Query1"]}`)}.Dependencies()
	require.NoError(t, err)
	assert.Equal(t, []string{"Query1"}, deps["Table1"])

	_, err = Page{InverseDependencyMap: datatypes.JSON(`[`)}.Dependencies()
	assert.Error(t, err)
}

func TestSnapshotSource(t *testing.T) {
	repo := new(MockRepository)
	source := NewSnapshotSource(repo)
	ctx := context.Background()
	appID := uuid.New()

	repo.On("LoadWorkspace", ctx, appID, uuid.Nil).Return(&Workspace{
		Widgets: []Widget{canvas()},
	}, nil)

	snapshot, err := source.Snapshot(ctx, appID.String(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.WidgetCount)
	assert.Equal(t, onboarding.StepFirst, onboarding.SelectMessage(*snapshot))
	repo.AssertExpectations(t)

	_, err = source.Snapshot(ctx, "not-a-uuid", "")
	assert.ErrorIs(t, err, onboarding.ErrWorkspaceNotFound)

	_, err = source.Snapshot(ctx, appID.String(), "bad-page")
	assert.ErrorIs(t, err, ErrNotFound)
}
