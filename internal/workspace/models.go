package workspace

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Application is an app being built in the editor
type Application struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string     `gorm:"not null" json:"name"`
	LastDeployedAt *time.Time `json:"last_deployed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Page belongs to an application. InverseDependencyMap holds the evaluator's
// entity -> dependents map for the page.
type Page struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ApplicationID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"application_id"`
	Name                 string         `gorm:"not null" json:"name"`
	IsDefault            bool           `gorm:"not null;default:false" json:"is_default"`
	InverseDependencyMap datatypes.JSON `gorm:"type:jsonb" json:"inverse_dependency_map"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// Dependencies decodes the inverse dependency map
func (p Page) Dependencies() (map[string][]string, error) {
	deps := map[string][]string{}
	if len(p.InverseDependencyMap) == 0 {
		return deps, nil
	}
	if err := json.Unmarshal(p.InverseDependencyMap, &deps); err != nil {
		return nil, fmt.Errorf("failed to decode dependency map of page %s: %w", p.ID, err)
	}
	return deps, nil
}

// Datasource is shared by every application of an organization
type Datasource struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"not null" json:"name"`
	PluginID       string    `json:"plugin_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Action is a query or API on a page
type Action struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PageID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"page_id"`
	DatasourceID *uuid.UUID `gorm:"type:uuid" json:"datasource_id"`
	Name         string     `gorm:"not null" json:"name"`
	PluginType   string     `json:"plugin_type"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Widget is a node of a page canvas. The root canvas is stored as a widget too,
// so an empty page has exactly one.
type Widget struct {
	ID                     uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PageID                 uuid.UUID      `gorm:"type:uuid;not null;index" json:"page_id"`
	ParentID               *uuid.UUID     `gorm:"type:uuid" json:"parent_id"`
	WidgetName             string         `gorm:"not null" json:"widget_name"`
	Type                   string         `gorm:"not null" json:"type"`
	DynamicTriggerPathList datatypes.JSON `gorm:"type:jsonb" json:"dynamic_trigger_path_list"`
	Props                  datatypes.JSON `gorm:"type:jsonb" json:"props"`
}

type triggerPath struct {
	Key string `json:"key"`
}

// TriggerSnippets returns the code bound to the widget's dynamic trigger properties
func (w Widget) TriggerSnippets() []string {
	if len(w.DynamicTriggerPathList) == 0 || len(w.Props) == 0 {
		return nil
	}
	var paths []triggerPath
	if err := json.Unmarshal(w.DynamicTriggerPathList, &paths); err != nil {
		return nil
	}
	var props map[string]interface{}
	if err := json.Unmarshal(w.Props, &props); err != nil {
		return nil
	}

	var snippets []string
	for _, path := range paths {
		if snippet, ok := props[path.Key].(string); ok && snippet != "" {
			snippets = append(snippets, snippet)
		}
	}
	return snippets
}

// JSCollection is a JS object listed in the explorer
type JSCollection struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PageID    uuid.UUID `gorm:"type:uuid;not null;index" json:"page_id"`
	Name      string    `gorm:"not null" json:"name"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Workspace is everything the onboarding status bar looks at for one page
type Workspace struct {
	Application  Application
	Page         Page
	Datasources  []Datasource
	Actions      []Action
	Widgets      []Widget
	Dependencies map[string][]string
}
