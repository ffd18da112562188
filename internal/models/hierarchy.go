package models

import (
	"time"

	"github.com/google/uuid"
)

type HierarchyType string

const (
	HierarchyField    HierarchyType = "field"
	HierarchyTopic    HierarchyType = "topic"
	HierarchySubtopic HierarchyType = "subtopic"
)

// Valid reports whether t is a known node type.
func (t HierarchyType) Valid() bool {
	switch t {
	case HierarchyField, HierarchyTopic, HierarchySubtopic:
		return true
	}
	return false
}

type Hierarchy struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	ParentID  *uuid.UUID    `json:"parent_id"`
	Name      string        `json:"name"`
	Type      HierarchyType `json:"type"`
	CreatedAt time.Time     `json:"created_at"`
}
