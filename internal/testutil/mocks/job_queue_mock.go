package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashreel/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(userID uuid.UUID, drafts []models.CardDraft) error {
	args := m.Called(userID, drafts)
	return args.Error(0)
}
