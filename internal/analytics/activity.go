package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"sales-dashboard/internal/entities"
)

type ActivityKey struct {
	UserID uuid.UUID
	Action entities.ActionType
}

// ActivityCounts holds event counts per (user, action type).
type ActivityCounts map[ActivityKey]int

type ActivityCount struct {
	UserID     uuid.UUID           `json:"user_id"`
	ActionType entities.ActionType `json:"action_type"`
	Count      int                 `json:"count"`
}

// CountByUser counts events of known action types. Unknown action types are ignored.
func CountByUser(events []entities.ActivityEvent) ActivityCounts {
	counts := make(ActivityCounts)
	for _, ev := range events {
		if !ev.ActionType.Valid() {
			continue
		}
		counts[ActivityKey{UserID: ev.UserID, Action: ev.ActionType}]++
	}
	return counts
}

func (c ActivityCounts) Get(userID uuid.UUID, action entities.ActionType) int {
	return c[ActivityKey{UserID: userID, Action: action}]
}

// Total sums the counts of one action type across all users.
func (c ActivityCounts) Total(action entities.ActionType) int {
	total := 0
	for k, n := range c {
		if k.Action == action {
			total += n
		}
	}
	return total
}

// List flattens the counts in a stable order (user, then action type).
func (c ActivityCounts) List() []ActivityCount {
	out := make([]ActivityCount, 0, len(c))
	for k, n := range c {
		out = append(out, ActivityCount{UserID: k.UserID, ActionType: k.Action, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID.String() < out[j].UserID.String()
		}
		return out[i].ActionType < out[j].ActionType
	})
	return out
}

// SalesByUser counts appointments in venda_realizada per responsible user.
func SalesByUser(appointments []entities.Appointment) map[uuid.UUID]int {
	sales := make(map[uuid.UUID]int)
	for _, a := range appointments {
		if a.Status == entities.StatusSaleMade {
			sales[a.UserID]++
		}
	}
	return sales
}

type DailyPoint struct {
	Date          string `json:"date"`
	Label         string `json:"label"`
	Attempts      int    `json:"attempts"`
	Responses     int    `json:"responses"`
	ConversionPct int    `json:"conversion_pct"`
}

// DailyHistory returns one point per day of the period, zero-filled.
func DailyHistory(events []entities.ActivityEvent, period ResolvedPeriod) []DailyPoint {
	loc := period.Start.Location()
	days := period.Days()

	index := make(map[string]int, len(days))
	points := make([]DailyPoint, len(days))
	for i, d := range days {
		key := d.Format("2006-01-02")
		index[key] = i
		points[i] = DailyPoint{Date: key, Label: d.Format("02/01")}
	}

	for _, ev := range events {
		i, ok := index[ev.Timestamp.In(loc).Format("2006-01-02")]
		if !ok {
			continue
		}
		switch {
		case ev.ActionType.IsAttempt():
			points[i].Attempts++
		case ev.ActionType == entities.ActionResponse:
			points[i].Responses++
		}
	}

	for i := range points {
		points[i].ConversionPct = ratioPct(points[i].Responses, points[i].Attempts)
	}
	return points
}

var monthLabels = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

type MonthlyPoint struct {
	Month   int     `json:"month"`
	Label   string  `json:"label"`
	Leads   int     `json:"leads"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// AnnualSummary buckets lead creation, sales and revenue by month of year, January to December.
func AnnualSummary(year int, loc *time.Location, events []entities.ActivityEvent, appointments []entities.Appointment) []MonthlyPoint {
	points := make([]MonthlyPoint, 12)
	for i := range points {
		points[i] = MonthlyPoint{Month: i + 1, Label: monthLabels[i]}
	}

	for _, ev := range events {
		if ev.ActionType != entities.ActionLeadCreated {
			continue
		}
		ts := ev.Timestamp.In(loc)
		if ts.Year() != year {
			continue
		}
		points[ts.Month()-1].Leads++
	}

	for _, a := range appointments {
		if a.Status != entities.StatusSaleMade {
			continue
		}
		ts := a.ScheduledDate.In(loc)
		if ts.Year() != year {
			continue
		}
		points[ts.Month()-1].Sales++
		points[ts.Month()-1].Revenue += a.Revenue()
	}
	return points
}

// ratioPct is round(100 * part / whole), 0 when whole is 0.
func ratioPct(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(whole)))
}
