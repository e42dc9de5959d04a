package events

import "sales-dashboard/pkg/eventbus"

const (
	TableActivityLogs = "activity_logs"
	TableAppointments = "appointments"
	TableCompanyGoals = "company_goals"
	TableUserGoals    = "user_goals"
	TableProfiles     = "profiles"
	TableTaskTypes    = "task_types"
)

// DashboardTables are the tables whose writes change the dashboard.
var DashboardTables = []string{
	TableActivityLogs,
	TableAppointments,
	TableCompanyGoals,
	TableUserGoals,
	TableProfiles,
	TableTaskTypes,
}

const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// TableChanged is published after a write to one of the dashboard tables,
// by the services that wrote it or by the Postgres notification bridge.
type TableChanged struct {
	TableName string `json:"table"`
	Operation string `json:"operation"`
	External  bool   `json:"-"`
}

func (e TableChanged) Name() string  { return eventbus.ChangeTopic(e.TableName) }
func (e TableChanged) Table() string { return e.TableName }
