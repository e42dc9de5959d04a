package analytics

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/entities"
)

func event(user uuid.UUID, action entities.ActionType, at time.Time) entities.ActivityEvent {
	return entities.ActivityEvent{ID: uuid.New(), UserID: user, ActionType: action, LeadID: "lead", Timestamp: at}
}

func TestCountByUser(t *testing.T) {
	ana, bia := uuid.New(), uuid.New()
	now := time.Now()
	counts := CountByUser([]entities.ActivityEvent{
		event(ana, entities.ActionLeadCreated, now),
		event(ana, entities.ActionLeadCreated, now),
		event(bia, entities.ActionLeadCreated, now),
		event(bia, entities.ActionFollowUp, now),
		event(bia, entities.ActionType("desconhecida"), now),
	})

	assert.Equal(t, 2, counts.Get(ana, entities.ActionLeadCreated))
	assert.Equal(t, 1, counts.Get(bia, entities.ActionFollowUp))
	assert.Equal(t, 0, counts.Get(ana, entities.ActionFollowUp))
	assert.Equal(t, 3, counts.Total(entities.ActionLeadCreated))
	assert.Len(t, counts.List(), 3)
}

func TestDailyHistory_WeekIsDense(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2025, time.March, 13, 12, 0, 0, 0, loc)
	week := Resolve(PeriodWeek, now, nil)

	empty := DailyHistory(nil, week)
	require.Len(t, empty, 7)
	assert.Equal(t, "10/03", empty[0].Label)
	assert.Equal(t, "16/03", empty[6].Label)
	for _, p := range empty {
		assert.Zero(t, p.Attempts)
		assert.Zero(t, p.ConversionPct)
	}
}

func TestDailyHistory_Buckets(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2025, time.March, 13, 12, 0, 0, 0, loc)
	week := Resolve(PeriodWeek, now, nil)
	u := uuid.New()
	tuesday := time.Date(2025, 3, 11, 9, 0, 0, 0, loc)

	points := DailyHistory([]entities.ActivityEvent{
		event(u, entities.ActionApproach, tuesday),
		event(u, entities.ActionFollowUp, tuesday),
		event(u, entities.ActionApproach, tuesday),
		event(u, entities.ActionResponse, tuesday),
		event(u, entities.ActionLeadCreated, tuesday),
		// UTC late evening still belongs to the local Tuesday
		event(u, entities.ActionResponse, time.Date(2025, 3, 12, 2, 0, 0, 0, time.UTC)),
		event(u, entities.ActionApproach, time.Date(2025, 3, 20, 9, 0, 0, 0, loc)),
	}, week)

	require.Len(t, points, 7)
	assert.Equal(t, 3, points[1].Attempts)
	assert.Equal(t, 2, points[1].Responses)
	assert.Equal(t, 67, points[1].ConversionPct)
	assert.Zero(t, points[0].Attempts)
}

func TestAnnualSummary(t *testing.T) {
	loc := saoPaulo(t)
	u := uuid.New()
	leads := []entities.ActivityEvent{
		event(u, entities.ActionLeadCreated, time.Date(2025, 1, 5, 10, 0, 0, 0, loc)),
		event(u, entities.ActionLeadCreated, time.Date(2025, 1, 6, 10, 0, 0, 0, loc)),
		event(u, entities.ActionFollowUp, time.Date(2025, 1, 6, 10, 0, 0, 0, loc)),
		event(u, entities.ActionLeadCreated, time.Date(2024, 12, 31, 10, 0, 0, 0, loc)),
	}
	apps := []entities.Appointment{
		{UserID: u, ScheduledDate: time.Date(2025, 7, 1, 14, 0, 0, 0, loc), Status: entities.StatusSaleMade, RevenueReceived: null.Float64From(1500)},
		{UserID: u, ScheduledDate: time.Date(2025, 7, 2, 14, 0, 0, 0, loc), Status: entities.StatusSaleMade},
		{UserID: u, ScheduledDate: time.Date(2025, 7, 3, 14, 0, 0, 0, loc), Status: entities.StatusNoShow},
	}

	months := AnnualSummary(2025, loc, leads, apps)
	require.Len(t, months, 12)
	assert.Equal(t, "Jan", months[0].Label)
	assert.Equal(t, "Dez", months[11].Label)
	assert.Equal(t, 2, months[0].Leads)
	assert.Equal(t, 2, months[6].Sales)
	assert.InDelta(t, 1500, months[6].Revenue, 0.001)
	assert.Zero(t, months[11].Leads)
}
