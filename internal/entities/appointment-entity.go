package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "pendente"
	StatusDone        AppointmentStatus = "realizada"
	StatusNoShow      AppointmentStatus = "no_show"
	StatusSaleMade    AppointmentStatus = "venda_realizada"
	StatusSaleNotMade AppointmentStatus = "venda_nao_realizada"
)

// TerminalStatuses are the states a pending appointment may move to.
var TerminalStatuses = []AppointmentStatus{StatusDone, StatusNoShow, StatusSaleMade, StatusSaleNotMade}

func (s AppointmentStatus) Valid() bool {
	return s == StatusPending || s.IsTerminal()
}

func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case StatusDone, StatusNoShow, StatusSaleMade, StatusSaleNotMade:
		return true
	}
	return false
}

type Appointment struct {
	ID              uuid.UUID         `json:"id"`
	LeadID          string            `json:"lead_id"`
	LeadName        string            `json:"lead_name"`
	UserID          uuid.UUID         `json:"user_id"`
	ScheduledDate   time.Time         `json:"scheduled_date"`
	Status          AppointmentStatus `json:"status"`
	RevenueReceived null.Float64      `json:"revenue_received"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       null.Time         `json:"updated_at"`
}

// Revenue returns the received amount, 0 when none was recorded.
func (a Appointment) Revenue() float64 {
	if !a.RevenueReceived.Valid || a.RevenueReceived.Float64 < 0 {
		return 0
	}
	return a.RevenueReceived.Float64
}
