package analytics

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"sales-dashboard/internal/entities"
)

type Tier string

const (
	TierStarting    Tier = "starting"
	TierKeepGoing   Tier = "keep_going"
	TierAlmostThere Tier = "almost_there"
	TierCelebrating Tier = "celebrating"
)

const (
	thresholdKeepGoing   = 40
	thresholdAlmostThere = 80
	thresholdReached     = 100
)

func TierFor(pct int) Tier {
	switch {
	case pct >= thresholdReached:
		return TierCelebrating
	case pct >= thresholdAlmostThere:
		return TierAlmostThere
	case pct >= thresholdKeepGoing:
		return TierKeepGoing
	default:
		return TierStarting
	}
}

func (t Tier) Message() string {
	switch t {
	case TierCelebrating:
		return "Booooa caralho, conseguiu mais uma vez. Ou dá desculpa ou dá resultado. Parabéns! 🏆"
	case TierAlmostThere:
		return "Representou demais... já tá quase! 🔥"
	case TierKeepGoing:
		return "Boa vencedor, é isso. Vamo chegar lá! 💪"
	default:
		return "Bora bater os primeiros, campeão. 🚀"
	}
}

// Color is the bar colour token; almost-there shares the keep-going colour.
func (t Tier) Color() string {
	switch t {
	case TierCelebrating:
		return "success"
	case TierAlmostThere, TierKeepGoing:
		return "warning"
	default:
		return "danger"
	}
}

// PercentOf is round(100 * current / goal), uncapped, and 0 whenever goal <= 0.
func PercentOf(current, goal float64) int {
	if goal <= 0 {
		return 0
	}
	return int(math.Round(current * 100 / goal))
}

type Progress struct {
	TaskType string `json:"task_type"`
	Label    string `json:"label"`
	Current  int    `json:"current"`
	Goal     int    `json:"goal"`
	Pct      int    `json:"pct"`
	BarWidth int    `json:"bar_width"`
	Tier     Tier   `json:"tier"`
	Message  string `json:"message"`
	Color    string `json:"color"`
}

func Evaluate(label string, current, goal int) Progress {
	pct := PercentOf(float64(current), float64(goal))
	tier := TierFor(pct)
	width := pct
	if width > 100 {
		width = 100
	}
	return Progress{
		Label:    label,
		Current:  current,
		Goal:     goal,
		Pct:      pct,
		BarWidth: width,
		Tier:     tier,
		Message:  tier.Message(),
		Color:    tier.Color(),
	}
}

// Headline summarises a list of progress entries into a single bar.
func Headline(items []Progress) Progress {
	var current, goal int
	for _, p := range items {
		current += p.Current
		goal += p.Goal
	}
	return Evaluate("Meta do período", current, goal)
}

// UserProgress lists the period progress of one user, one entry per goal with a
// non-zero period goal, in task type catalog order.
func UserProgress(userID uuid.UUID, goals []entities.UserGoal, taskTypes []entities.TaskType, counts ActivityCounts, daysInPeriod int) []Progress {
	order := make(map[uuid.UUID]int, len(taskTypes))
	byID := make(map[uuid.UUID]entities.TaskType, len(taskTypes))
	for i, tt := range taskTypes {
		order[tt.ID] = i
		byID[tt.ID] = tt
	}

	var mine []entities.UserGoal
	for _, g := range goals {
		if g.UserID == userID {
			mine = append(mine, g)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return order[mine[i].TaskTypeID] < order[mine[j].TaskTypeID]
	})

	var out []Progress
	for _, g := range mine {
		tt, ok := byID[g.TaskTypeID]
		if !ok {
			continue
		}
		periodGoal := g.DailyGoal * daysInPeriod
		if periodGoal <= 0 {
			continue
		}
		current := counts.Get(userID, entities.ActionType(tt.Name))
		p := Evaluate(tt.DisplayLabel(), current, periodGoal)
		p.TaskType = tt.Name
		out = append(out, p)
	}
	return out
}

type UserPerformance struct {
	UserID   uuid.UUID     `json:"user_id"`
	FullName string        `json:"full_name"`
	Role     entities.Role `json:"role"`
	Sales    int           `json:"sales"`
	Tasks    []Progress    `json:"tasks"`
	Headline Progress      `json:"headline"`
}

// UserPerformances evaluates every active profile that has at least one goal to show.
func UserPerformances(profiles []entities.Profile, goals []entities.UserGoal, taskTypes []entities.TaskType, counts ActivityCounts, sales map[uuid.UUID]int, daysInPeriod int) []UserPerformance {
	var out []UserPerformance
	for _, p := range profiles {
		if !p.Active {
			continue
		}
		tasks := UserProgress(p.ID, goals, taskTypes, counts, daysInPeriod)
		if len(tasks) == 0 {
			continue
		}
		out = append(out, UserPerformance{
			UserID:   p.ID,
			FullName: p.FullName,
			Role:     p.Role,
			Sales:    sales[p.ID],
			Tasks:    tasks,
			Headline: Headline(tasks),
		})
	}
	return out
}

type TeamObjectives struct {
	LeadsPct    int `json:"leads_pct"`
	EngagedPct  int `json:"engaged_pct"`
	FollowUpPct int `json:"follow_up_pct"`
}

// TeamGoal sums the period goals of every user goal pointing at the named task type.
func TeamGoal(action entities.ActionType, goals []entities.UserGoal, taskTypes []entities.TaskType, daysInPeriod int) int {
	ids := make(map[uuid.UUID]bool)
	for _, tt := range taskTypes {
		if tt.Name == string(action) {
			ids[tt.ID] = true
		}
	}
	total := 0
	for _, g := range goals {
		if ids[g.TaskTypeID] {
			total += g.DailyGoal * daysInPeriod
		}
	}
	return total
}

func TeamObjectivesFor(goals []entities.UserGoal, taskTypes []entities.TaskType, counts ActivityCounts, daysInPeriod int) TeamObjectives {
	pct := func(action entities.ActionType) int {
		return PercentOf(float64(counts.Total(action)), float64(TeamGoal(action, goals, taskTypes, daysInPeriod)))
	}
	return TeamObjectives{
		LeadsPct:    pct(entities.ActionLeadCreated),
		EngagedPct:  pct(entities.ActionEngaged),
		FollowUpPct: pct(entities.ActionFollowUp),
	}
}
