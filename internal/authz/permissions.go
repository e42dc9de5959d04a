package authz

const (
	DashboardView   = "dashboard:view"
	DashboardExport = "dashboard:export"

	GoalsViewOwn = "goals:view:own"
	GoalsManage  = "goals:manage"

	ProfilesView   = "profiles:view"
	ProfilesManage = "profiles:manage"

	TaskTypesView   = "task_types:view"
	TaskTypesManage = "task_types:manage"

	CompanyGoalsManage = "company_goals:manage"
	AppointmentsUpdate = "appointments:update"
	WebhookLogsView    = "webhook_logs:view"
)

// managerPermissions is granted to every manager role.
var managerPermissions = []string{
	DashboardView,
	DashboardExport,
	GoalsViewOwn,
	GoalsManage,
	ProfilesView,
	ProfilesManage,
	TaskTypesView,
	TaskTypesManage,
	CompanyGoalsManage,
	AppointmentsUpdate,
	WebhookLogsView,
}

// memberPermissions is what any authenticated team member gets.
var memberPermissions = []string{
	GoalsViewOwn,
	TaskTypesView,
}
