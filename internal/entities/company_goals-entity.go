package entities

import (
	"github.com/aarondl/null/v8"
)

const (
	DefaultRevenueGoal            = 50000
	DefaultSalesGoal              = 4
	DefaultDailyAppointmentsGoal  = 1
	DefaultDailyConversationsGoal = 10
)

type CompanyGoals struct {
	RevenueGoal            float64 `json:"revenue_goal"`
	SalesGoal              int     `json:"sales_goal"`
	DailyAppointmentsGoal  int     `json:"daily_appointments_goal"`
	DailyConversationsGoal int     `json:"daily_conversations_goal"`
}

func DefaultCompanyGoals() CompanyGoals {
	return CompanyGoals{
		RevenueGoal:            DefaultRevenueGoal,
		SalesGoal:              DefaultSalesGoal,
		DailyAppointmentsGoal:  DefaultDailyAppointmentsGoal,
		DailyConversationsGoal: DefaultDailyConversationsGoal,
	}
}

// CompanyGoalsRow mirrors the singleton company_goals row, every target nullable.
type CompanyGoalsRow struct {
	RevenueGoal            null.Float64
	SalesGoal              null.Int
	DailyAppointmentsGoal  null.Int
	DailyConversationsGoal null.Int
}

// Resolve replaces NULL and non-positive targets with the defaults; a nil row means all defaults.
func (r *CompanyGoalsRow) Resolve() CompanyGoals {
	goals := DefaultCompanyGoals()
	if r == nil {
		return goals
	}
	if r.RevenueGoal.Valid && r.RevenueGoal.Float64 > 0 {
		goals.RevenueGoal = r.RevenueGoal.Float64
	}
	if r.SalesGoal.Valid && r.SalesGoal.Int > 0 {
		goals.SalesGoal = r.SalesGoal.Int
	}
	if r.DailyAppointmentsGoal.Valid && r.DailyAppointmentsGoal.Int > 0 {
		goals.DailyAppointmentsGoal = r.DailyAppointmentsGoal.Int
	}
	if r.DailyConversationsGoal.Valid && r.DailyConversationsGoal.Int > 0 {
		goals.DailyConversationsGoal = r.DailyConversationsGoal.Int
	}
	return goals
}
