package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashreel/internal/errors"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/testutil/mocks"
	"github.com/vytor/flashreel/internal/worker"
)

func TestImportCards(t *testing.T) {
	userID := uuid.New()
	drafts := []models.CardDraft{{Question: "q1", Answer: "a1"}, {Question: "q2", Answer: "a2"}}

	t.Run("queues valid batch", func(t *testing.T) {
		queue := new(mocks.MockJobQueue)
		queue.On("EnqueueImport", userID, drafts).Return(nil)

		n, err := NewImportService(queue).ImportCards(context.Background(), userID, drafts)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		queue.AssertExpectations(t)
	})

	t.Run("rejects blank answer", func(t *testing.T) {
		queue := new(mocks.MockJobQueue)
		bad := []models.CardDraft{{Question: "q", Answer: " "}}

		_, err := NewImportService(queue).ImportCards(context.Background(), userID, bad)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
		queue.AssertNotCalled(t, "EnqueueImport")
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		_, err := NewImportService(new(mocks.MockJobQueue)).ImportCards(context.Background(), userID, nil)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
	})

	t.Run("full queue is rate limited", func(t *testing.T) {
		queue := new(mocks.MockJobQueue)
		queue.On("EnqueueImport", userID, drafts).Return(worker.ErrQueueFull)

		_, err := NewImportService(queue).ImportCards(context.Background(), userID, drafts)
		assert.True(t, errors.HasCode(err, errors.ErrCodeRateLimited))
	})
}
