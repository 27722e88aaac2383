package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"appbuilder/editor-backend/internal/onboarding"
)

// ErrNotFound matches onboarding.ErrWorkspaceNotFound with errors.Is
var ErrNotFound = onboarding.ErrWorkspaceNotFound

type Repository interface {
	// LoadWorkspace loads a page and what it depends on. uuid.Nil selects the default page.
	LoadWorkspace(ctx context.Context, applicationID, pageID uuid.UUID) (*Workspace, error)
	ListJSCollections(ctx context.Context, pageID uuid.UUID) ([]JSCollection, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) LoadWorkspace(ctx context.Context, applicationID, pageID uuid.UUID) (*Workspace, error) {
	db := r.db.WithContext(ctx)

	var app Application
	if err := db.First(&app, "id = ?", applicationID).Error; err != nil {
		return nil, notFound(err, "application", applicationID)
	}

	var page Page
	query := db.Where("application_id = ?", applicationID)
	if pageID != uuid.Nil {
		query = query.Where("id = ?", pageID)
	} else {
		query = query.Order("is_default DESC").Order("created_at ASC")
	}
	if err := query.First(&page).Error; err != nil {
		return nil, notFound(err, "page", pageID)
	}

	ws := &Workspace{Application: app, Page: page}
	if err := db.Where("organization_id = ?", app.OrganizationID).Find(&ws.Datasources).Error; err != nil {
		return nil, fmt.Errorf("failed to load datasources: %w", err)
	}
	if err := db.Where("page_id = ?", page.ID).Find(&ws.Actions).Error; err != nil {
		return nil, fmt.Errorf("failed to load actions: %w", err)
	}
	if err := db.Where("page_id = ?", page.ID).Find(&ws.Widgets).Error; err != nil {
		return nil, fmt.Errorf("failed to load widgets: %w", err)
	}

	deps, err := page.Dependencies()
	if err != nil {
		return nil, err
	}
	ws.Dependencies = deps
	return ws, nil
}

func (r *gormRepository) ListJSCollections(ctx context.Context, pageID uuid.UUID) ([]JSCollection, error) {
	var collections []JSCollection
	err := r.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("name ASC").
		Find(&collections).Error
	return collections, err
}

func notFound(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
	}
	return fmt.Errorf("failed to load %s: %w", entity, err)
}
