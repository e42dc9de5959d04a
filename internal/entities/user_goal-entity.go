package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type UserGoal struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	TaskTypeID uuid.UUID `json:"task_type_id"`
	DailyGoal  int       `json:"daily_goal"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  null.Time `json:"updated_at"`
}
