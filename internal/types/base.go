package types

import "time"

// Status represents the lifecycle status of a persisted record.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// BaseModel carries the audit fields shared by all persisted entities.
type BaseModel struct {
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Metadata is a generic string map used for session and entity metadata.
type Metadata map[string]string
