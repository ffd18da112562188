package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashreel/internal/models"
)

// MockHierarchyRepository is a mock implementation of repository.HierarchyRepository
type MockHierarchyRepository struct {
	mock.Mock
}

func (m *MockHierarchyRepository) Insert(ctx context.Context, node models.Hierarchy) error {
	args := m.Called(ctx, node)
	return args.Error(0)
}

func (m *MockHierarchyRepository) Get(ctx context.Context, userID, id uuid.UUID) (*models.Hierarchy, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hierarchy), args.Error(1)
}

func (m *MockHierarchyRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Hierarchy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Hierarchy), args.Error(1)
}

func (m *MockHierarchyRepository) FindRootByName(ctx context.Context, userID uuid.UUID, name string, nodeType models.HierarchyType) (*models.Hierarchy, error) {
	args := m.Called(ctx, userID, name, nodeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hierarchy), args.Error(1)
}
