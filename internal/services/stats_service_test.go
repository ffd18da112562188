package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashreel/internal/clock"
	"github.com/vytor/flashreel/internal/errors"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/testutil/mocks"
)

func TestHeatLevel(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 5: 1, 6: 2, 10: 2, 11: 3, 20: 3, 21: 4, 500: 4}
	for count, want := range cases {
		assert.Equal(t, want, HeatLevel(count), "count %d", count)
	}
}

func TestStreakView(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	userID := uuid.New()

	tests := []struct {
		name        string
		streak      *models.UserStreak
		wantCurrent int
		wantToday   bool
	}{
		{"no row", nil, 0, false},
		{"studied today", &models.UserStreak{CurrentStreak: 4, LastStudyDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)}, 4, true},
		{"studied yesterday", &models.UserStreak{CurrentStreak: 4, LastStudyDate: time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)}, 4, false},
		{"broken", &models.UserStreak{CurrentStreak: 4, LastStudyDate: time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streaks := new(mocks.MockStreakRepository)
			if tt.streak == nil {
				streaks.On("Get", mock.Anything, userID).Return(nil, nil)
			} else {
				streaks.On("Get", mock.Anything, userID).Return(tt.streak, nil)
			}
			svc := NewStatsService(nil, nil, nil, streaks, Options{Clock: clock.NewFixed(now)})

			view, err := svc.Streak(context.Background(), userID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCurrent, view.CurrentStreak)
			assert.Equal(t, tt.wantToday, view.StudiedToday)
		})
	}
}

func TestHeatmapUsesCalendarTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	now := time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC) // 05:00 on the 11th in Tokyo
	userID := uuid.New()

	reviews := new(mocks.MockReviewRepository)
	since := time.Date(2024, 5, 9, 15, 0, 0, 0, time.UTC) // Tokyo midnight starting the 10th
	reviews.On("ListSince", mock.Anything, userID, since).Return([]models.Review{
		{ReviewedAt: time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)}, // 23:00 on the 10th
		{ReviewedAt: time.Date(2024, 5, 10, 16, 0, 0, 0, time.UTC)}, // 01:00 on the 11th
		{ReviewedAt: time.Date(2024, 5, 10, 19, 0, 0, 0, time.UTC)},
	}, nil)

	svc := NewStatsService(nil, nil, reviews, nil, Options{Clock: clock.NewFixed(now), Calendar: clock.NewCalendar(tokyo)})
	days, err := svc.Heatmap(context.Background(), userID, 2)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-05-10", days[0].Date)
	assert.Equal(t, 1, days[0].Count)
	assert.Equal(t, "2024-05-11", days[1].Date)
	assert.Equal(t, 2, days[1].Count)
	reviews.AssertExpectations(t)
}

func TestHeatmapRejectsHugeRange(t *testing.T) {
	svc := NewStatsService(nil, nil, nil, nil, Options{})
	_, err := svc.Heatmap(context.Background(), uuid.New(), maxHeatmapDays+1)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}
