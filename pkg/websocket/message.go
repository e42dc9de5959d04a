package websocket

import "time"

const (
	TypeDashboardRefresh = "dashboard.refresh"
	TypeGoalReached      = "goal.reached"
)

// Envelope wraps every message pushed to clients; Type tells the front-end what to do.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// RefreshPayload tells dashboards to refetch; Generation identifies the data version.
type RefreshPayload struct {
	Tables     []string `json:"tables"`
	Generation int64    `json:"generation"`
}

type GoalReachedPayload struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Label    string `json:"label"`
	Current  int    `json:"current"`
	Goal     int    `json:"goal"`
	Pct      int    `json:"pct"`
	Message  string `json:"message"`
}
