package dto

import (
	"github.com/google/uuid"

	"sales-dashboard/internal/entities"
)

type CreateProfileDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Role     string `json:"role" validate:"required,role"`
}

type UpdateProfileDTO struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,min=2"`
	Role     *string `json:"role" validate:"omitempty,role"`
	Active   *bool   `json:"active"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type CreateTaskTypeDTO struct {
	Name  string `json:"name" validate:"required,min=2,max=64"`
	Label string `json:"label" validate:"omitempty,max=64"`
}

type UpdateTaskTypeDTO struct {
	Label string `json:"label" validate:"required,max=64"`
}

type UpsertUserGoalDTO struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	TaskTypeID string `json:"task_type_id" validate:"required,uuid"`
	DailyGoal  int    `json:"daily_goal" validate:"gte=0,lte=100000"`
}

// CompanyGoalsDTO uses pointers so an omitted field is stored as NULL; NULL and 0 both read back as the default.
type CompanyGoalsDTO struct {
	RevenueGoal            *float64 `json:"revenue_goal" validate:"omitempty,gte=0"`
	SalesGoal              *int     `json:"sales_goal" validate:"omitempty,gte=0"`
	DailyAppointmentsGoal  *int     `json:"daily_appointments_goal" validate:"omitempty,gte=0"`
	DailyConversationsGoal *int     `json:"daily_conversations_goal" validate:"omitempty,gte=0"`
}

type UpdateAppointmentStatusDTO struct {
	Status          string   `json:"status" validate:"required,appt_status"`
	RevenueReceived *float64 `json:"revenue_received" validate:"omitempty,gte=0"`
}

// UserGoalDTO joins a goal with its task type for admin screens.
type UserGoalDTO struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	TaskTypeID uuid.UUID `json:"task_type_id"`
	TaskType   string    `json:"task_type"`
	Label      string    `json:"label"`
	DailyGoal  int       `json:"daily_goal"`
}

type ProfileWithGoalsDTO struct {
	entities.Profile
	Goals []UserGoalDTO `json:"goals"`
}
