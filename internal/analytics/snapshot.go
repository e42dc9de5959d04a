package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"sales-dashboard/internal/entities"
)

// Inputs is everything one dashboard recompute reads.
type Inputs struct {
	Period       ResolvedPeriod
	Now          time.Time
	Activities   []entities.ActivityEvent
	Appointments []entities.Appointment
	Profiles     []entities.Profile
	Goals        []entities.UserGoal
	TaskTypes    []entities.TaskType
	CompanyGoals entities.CompanyGoals

	AnnualLeadEvents   []entities.ActivityEvent
	AnnualAppointments []entities.Appointment
}

type Snapshot struct {
	Period               ResolvedPeriod         `json:"period"`
	Funnel               Funnel                 `json:"funnel"`
	FunnelSteps          []FunnelStep           `json:"funnel_steps"`
	Team                 TeamObjectives         `json:"team"`
	Calls                CallStats              `json:"calls"`
	Users                []UserPerformance      `json:"users"`
	Daily                []DailyPoint           `json:"daily"`
	Annual               []MonthlyPoint         `json:"annual"`
	Aggregates           BusinessAggregates     `json:"aggregates"`
	Business             []BusinessMetric       `json:"business"`
	Activities           []ActivityCount        `json:"activities"`
	UpcomingAppointments []entities.Appointment `json:"upcoming_appointments"`
}

const upcomingLimit = 6

// Compute derives the whole dashboard from already fetched rows. Only events of
// active profiles feed the per-user counts and the funnel; the daily and annual
// series use every event.
func Compute(in Inputs) Snapshot {
	active := make(map[uuid.UUID]bool, len(in.Profiles))
	for _, p := range in.Profiles {
		if p.Active {
			active[p.ID] = true
		}
	}
	var scoped []entities.ActivityEvent
	for _, ev := range in.Activities {
		if active[ev.UserID] {
			scoped = append(scoped, ev)
		}
	}

	counts := CountByUser(scoped)
	funnel := Cascade(RawStageCountsFrom(counts), in.Appointments)
	agg := AggregatesFrom(in.Appointments, counts)
	loc := in.Period.Start.Location()

	return Snapshot{
		Period:               in.Period,
		Funnel:               funnel,
		FunnelSteps:          funnel.Steps(),
		Team:                 TeamObjectivesFor(in.Goals, in.TaskTypes, counts, in.Period.DaysInPeriod),
		Calls:                CallStatsFor(in.Appointments, in.Now),
		Users:                UserPerformances(in.Profiles, in.Goals, in.TaskTypes, counts, SalesByUser(in.Appointments), in.Period.DaysInPeriod),
		Daily:                DailyHistory(in.Activities, in.Period),
		Annual:               AnnualSummary(in.Now.In(loc).Year(), loc, in.AnnualLeadEvents, in.AnnualAppointments),
		Aggregates:           agg,
		Business:             BusinessMetrics(in.CompanyGoals, agg, DaysMultiplier(in.Period)),
		Activities:           counts.List(),
		UpcomingAppointments: Upcoming(in.Appointments, in.Now, upcomingLimit),
	}
}

// Upcoming returns pending appointments scheduled from now on, soonest first.
func Upcoming(appointments []entities.Appointment, now time.Time, limit int) []entities.Appointment {
	out := make([]entities.Appointment, 0, limit)
	for _, a := range appointments {
		if a.Status == entities.StatusPending && !a.ScheduledDate.Before(now) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
