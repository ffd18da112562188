package models

import "time"

type DailyReviewCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

type StudySummary struct {
	TotalCards    int     `json:"total_cards"`
	DueNow        int     `json:"due_now"`
	ReviewedToday int     `json:"reviewed_today"`
	AvgEaseFactor float64 `json:"avg_ease_factor"`
	CurrentStreak int     `json:"current_streak"`
}

type StreakView struct {
	CurrentStreak int        `json:"current_streak"`
	LastStudyDate *time.Time `json:"last_study_date"`
	StudiedToday  bool       `json:"studied_today"`
}
