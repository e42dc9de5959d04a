package dto

import (
	"time"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/entities"
)

type DashboardDTO struct {
	analytics.Snapshot
	CompanyGoals entities.CompanyGoals `json:"company_goals"`
	Generation   int64                 `json:"generation"`
	GeneratedAt  time.Time             `json:"generated_at"`
}

type MyGoalsDTO struct {
	Period   analytics.ResolvedPeriod `json:"period"`
	Goals    []analytics.Progress     `json:"goals"`
	Headline analytics.Progress       `json:"headline"`
}

// DashboardQuery is the parsed period selection of a dashboard request.
type DashboardQuery struct {
	Period analytics.Period
	Custom *analytics.DateRange
}
