package analytics

import (
	"strings"
	"time"
)

type Period string

const (
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
)

// ParsePeriod maps a query token to a Period; unknown tokens resolve to month.
func ParsePeriod(token string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(token))); p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodCustom:
		return p
	}
	return PeriodMonth
}

// DateRange is a caller supplied range; End is inclusive of its whole day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ResolvedPeriod is the half-open interval [Start, End) of whole local days.
type ResolvedPeriod struct {
	Period       Period    `json:"period"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	DaysInPeriod int       `json:"days_in_period"`
}

// Resolve turns a period token into concrete day boundaries in now's location.
func Resolve(p Period, now time.Time, custom *DateRange) ResolvedPeriod {
	loc := now.Location()
	today := StartOfDay(now)

	var start, end time.Time
	switch p {
	case PeriodToday:
		start, end = today, addDays(today, 1)
	case PeriodWeek:
		offset := (int(today.Weekday()) + 6) % 7
		start = addDays(today, -offset)
		end = addDays(start, 7)
	case PeriodYear:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, loc)
		end = time.Date(today.Year()+1, time.January, 1, 0, 0, 0, 0, loc)
	case PeriodCustom:
		if custom == nil {
			start, end = today, addDays(today, 1)
			break
		}
		first, last := StartOfDay(custom.Start.In(loc)), StartOfDay(custom.End.In(loc))
		if last.Before(first) {
			first, last = last, first
		}
		start, end = first, addDays(last, 1)
	default:
		p = PeriodMonth
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		end = time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, loc)
	}

	days := calendarDaysBetween(start, addDays(end, -1)) + 1
	if days < 1 {
		days = 1
	}

	return ResolvedPeriod{Period: p, Start: start, End: end, DaysInPeriod: days}
}

// Contains reports whether t falls inside [Start, End).
func (r ResolvedPeriod) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Days lists the first instant of every calendar day in the interval.
func (r ResolvedPeriod) Days() []time.Time {
	days := make([]time.Time, 0, r.DaysInPeriod)
	for d := r.Start; d.Before(r.End); d = addDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// YearOf is the January to December window containing now.
func YearOf(now time.Time) ResolvedPeriod {
	return Resolve(PeriodYear, now, nil)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func addDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// calendarDaysBetween counts date changes between a and b, ignoring DST shifts.
func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
