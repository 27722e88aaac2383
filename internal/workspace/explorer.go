package workspace

import (
	"strings"
)

const (
	jsGroupName         = "JS Objects"
	jsGroupPlaceholder  = "No JS Objects yet. Please click the + icon on above, to create."
	jsGroupEntitySuffix = "_jsAction"
)

// ExplorerEntity is one JS object row in the explorer tree
type ExplorerEntity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	PageID string `json:"page_id"`
	Step   int    `json:"step"`
}

// ExplorerGroup is the "JS Objects" node of a page in the explorer tree
type ExplorerGroup struct {
	EntityID        string           `json:"entity_id"`
	Name            string           `json:"name"`
	PageID          string           `json:"page_id"`
	Step            int              `json:"step"`
	Disabled        bool             `json:"disabled"`
	DefaultExpanded bool             `json:"default_expanded"`
	Children        []ExplorerEntity `json:"children"`
	Placeholder     string           `json:"placeholder,omitempty"`
}

// FilterJSCollections keeps the collections whose name contains keyword, ignoring case.
// It returns nil when a keyword is given and nothing matches.
func FilterJSCollections(collections []JSCollection, keyword string) []JSCollection {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return collections
	}
	var matched []JSCollection
	for _, c := range collections {
		if strings.Contains(strings.ToLower(c.Name), keyword) {
			matched = append(matched, c)
		}
	}
	return matched
}

// JSCollectionGroup builds the explorer group of a page. The group is disabled while a
// search has no match, and carries the placeholder text when it has no children.
func JSCollectionGroup(pageID string, collections []JSCollection, keyword string, step int) ExplorerGroup {
	group := ExplorerGroup{
		EntityID:        pageID + jsGroupEntitySuffix,
		Name:            jsGroupName,
		PageID:          pageID,
		Step:            step,
		Disabled:        collections == nil && strings.TrimSpace(keyword) != "",
		DefaultExpanded: true,
		Children:        make([]ExplorerEntity, 0, len(collections)),
	}
	for _, c := range collections {
		group.Children = append(group.Children, ExplorerEntity{
			ID:     c.ID.String(),
			Name:   c.Name,
			PageID: pageID,
			Step:   step + 1,
		})
	}
	if len(group.Children) == 0 {
		group.Placeholder = jsGroupPlaceholder
	}
	return group
}
