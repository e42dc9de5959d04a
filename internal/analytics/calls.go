package analytics

import (
	"time"

	"sales-dashboard/internal/entities"
)

type CallStats struct {
	CallsToday     int `json:"calls_today"`
	CallsDone      int `json:"calls_done"`
	NoShowRate     int `json:"no_show_rate"`
	ConversionRate int `json:"conversion_rate"`
}

// CallStatsFor summarises the period's appointments; "today" is taken in now's location.
func CallStatsFor(appointments []entities.Appointment, now time.Time) CallStats {
	today := StartOfDay(now)
	tomorrow := addDays(today, 1)

	var stats CallStats
	var noShow, sales int
	for _, a := range appointments {
		at := a.ScheduledDate.In(now.Location())
		if !at.Before(today) && at.Before(tomorrow) {
			stats.CallsToday++
		}
		if a.Status == entities.StatusPending {
			continue
		}
		stats.CallsDone++
		switch a.Status {
		case entities.StatusNoShow:
			noShow++
		case entities.StatusSaleMade:
			sales++
		}
	}
	stats.NoShowRate = ratioPct(noShow, stats.CallsDone)
	stats.ConversionRate = ratioPct(sales, stats.CallsDone)
	return stats
}
