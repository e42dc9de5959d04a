package analytics

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sales-dashboard/internal/entities"
)

// DaysMultiplier scales daily company targets to the period. The calendar
// periods use fixed constants; custom ranges use their real length.
func DaysMultiplier(p ResolvedPeriod) int {
	switch p.Period {
	case PeriodToday:
		return 1
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodYear:
		return 365
	default:
		return p.DaysInPeriod
	}
}

type BusinessAggregates struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalSales        int     `json:"total_sales"`
	TotalAppointments int     `json:"total_appointments"`
	EngagedCount      int     `json:"engaged_count"`
}

func AggregatesFrom(appointments []entities.Appointment, counts ActivityCounts) BusinessAggregates {
	agg := BusinessAggregates{
		TotalAppointments: len(appointments),
		EngagedCount:      counts.Total(entities.ActionEngaged),
	}
	for _, a := range appointments {
		if a.Status == entities.StatusSaleMade {
			agg.TotalSales++
			agg.TotalRevenue += a.Revenue()
		}
	}
	return agg
}

type BusinessMetric struct {
	Key              string  `json:"key"`
	Label            string  `json:"label"`
	Current          float64 `json:"current"`
	Goal             float64 `json:"goal"`
	Pct              int     `json:"pct"`
	CurrentFormatted string  `json:"current_formatted"`
	GoalFormatted    string  `json:"goal_formatted"`
}

func BusinessMetrics(goals entities.CompanyGoals, agg BusinessAggregates, multiplier int) []BusinessMetric {
	appointmentsGoal := float64(goals.DailyAppointmentsGoal * multiplier)
	conversationsGoal := float64(goals.DailyConversationsGoal * multiplier)

	return []BusinessMetric{
		{
			Key:              "revenue",
			Label:            "Faturamento",
			Current:          agg.TotalRevenue,
			Goal:             goals.RevenueGoal,
			Pct:              PercentOf(agg.TotalRevenue, goals.RevenueGoal),
			CurrentFormatted: FormatBRL(agg.TotalRevenue),
			GoalFormatted:    FormatBRL(goals.RevenueGoal),
		},
		countMetric("sales", "Vendas", agg.TotalSales, float64(goals.SalesGoal)),
		countMetric("appointments", "Agendamentos", agg.TotalAppointments, appointmentsGoal),
		countMetric("opportunities", "Oportunidades", agg.EngagedCount, conversationsGoal),
	}
}

func countMetric(key, label string, current int, goal float64) BusinessMetric {
	return BusinessMetric{
		Key:              key,
		Label:            label,
		Current:          float64(current),
		Goal:             goal,
		Pct:              PercentOf(float64(current), goal),
		CurrentFormatted: FormatNumber(float64(current)),
		GoalFormatted:    FormatNumber(goal),
	}
}

// FormatBRL renders whole reais with pt-BR grouping, e.g. "R$ 12.500".
func FormatBRL(v float64) string {
	return "R$ " + FormatNumber(v)
}

// FormatNumber rounds to an integer and applies pt-BR digit grouping.
func FormatNumber(v float64) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("%d", int64(math.Round(v)))
}
