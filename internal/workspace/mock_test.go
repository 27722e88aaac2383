package workspace

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LoadWorkspace(ctx context.Context, applicationID, pageID uuid.UUID) (*Workspace, error) {
	args := m.Called(ctx, applicationID, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Workspace), args.Error(1)
}

func (m *MockRepository) ListJSCollections(ctx context.Context, pageID uuid.UUID) ([]JSCollection, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]JSCollection), args.Error(1)
}
