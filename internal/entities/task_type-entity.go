package entities

import (
	"time"

	"github.com/google/uuid"
)

type TaskType struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayLabel prefers the built-in label of a known action, then the stored label, then the name.
func (t TaskType) DisplayLabel() string {
	if l := ActionType(t.Name).Label(); l != "" {
		return l
	}
	if t.Label != "" {
		return t.Label
	}
	return t.Name
}
