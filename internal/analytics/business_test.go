package analytics

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/entities"
)

func metricByKey(t *testing.T, metrics []BusinessMetric, key string) BusinessMetric {
	t.Helper()
	for _, m := range metrics {
		if m.Key == key {
			return m
		}
	}
	require.Failf(t, "metric not found", "key %s", key)
	return BusinessMetric{}
}

func TestBusinessMetrics(t *testing.T) {
	goals := entities.DefaultCompanyGoals()
	agg := BusinessAggregates{TotalRevenue: 12500, TotalSales: 1, TotalAppointments: 5, EngagedCount: 35}

	metrics := BusinessMetrics(goals, agg, 7)
	require.Len(t, metrics, 4)

	revenue := metricByKey(t, metrics, "revenue")
	assert.Equal(t, 25, revenue.Pct)
	assert.Equal(t, "R$ 12.500", revenue.CurrentFormatted)
	assert.Equal(t, "R$ 50.000", revenue.GoalFormatted)

	appointments := metricByKey(t, metrics, "appointments")
	assert.Equal(t, float64(7), appointments.Goal)
	assert.Equal(t, 71, appointments.Pct)

	opportunities := metricByKey(t, metrics, "opportunities")
	assert.Equal(t, float64(70), opportunities.Goal)
	assert.Equal(t, 50, opportunities.Pct)

	assert.Equal(t, 25, metricByKey(t, metrics, "sales").Pct)
}

func TestBusinessMetrics_ZeroGoals(t *testing.T) {
	metrics := BusinessMetrics(entities.CompanyGoals{}, BusinessAggregates{TotalRevenue: 900, TotalSales: 3, TotalAppointments: 2, EngagedCount: 1}, 30)
	for _, m := range metrics {
		assert.Equal(t, 0, m.Pct, m.Key)
	}
}

func TestDaysMultiplier(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2025, time.February, 10, 10, 0, 0, 0, loc)
	assert.Equal(t, 1, DaysMultiplier(Resolve(PeriodToday, now, nil)))
	assert.Equal(t, 7, DaysMultiplier(Resolve(PeriodWeek, now, nil)))
	assert.Equal(t, 30, DaysMultiplier(Resolve(PeriodMonth, now, nil)))
	assert.Equal(t, 365, DaysMultiplier(Resolve(PeriodYear, now, nil)))
	custom := Resolve(PeriodCustom, now, &DateRange{Start: now, End: now.AddDate(0, 0, 2)})
	assert.Equal(t, 3, DaysMultiplier(custom))
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0", FormatBRL(0))
	assert.Equal(t, "R$ 1.234.568", FormatBRL(1234567.5))
	assert.Equal(t, "R$ 999", FormatBRL(999.4))
}

func TestAggregatesFrom(t *testing.T) {
	apps := []entities.Appointment{
		{Status: entities.StatusSaleMade, RevenueReceived: null.Float64From(1000)},
		{Status: entities.StatusSaleMade},
		{Status: entities.StatusPending, RevenueReceived: null.Float64From(500)},
	}
	agg := AggregatesFrom(apps, ActivityCounts{})
	assert.Equal(t, 2, agg.TotalSales)
	assert.Equal(t, 3, agg.TotalAppointments)
	assert.InDelta(t, 1000, agg.TotalRevenue, 0.001)
}
