package analytics

import (
	"fmt"

	"sales-dashboard/internal/entities"
)

type Stage int

const (
	StageLeadsCreated Stage = iota
	StageFirstContact
	StageResponses
	StageEngaged
	StageQualification
	StageScheduled
	StageDone
	StageSale
)

// Stages is the funnel order, top to bottom.
var Stages = []Stage{
	StageLeadsCreated,
	StageFirstContact,
	StageResponses,
	StageEngaged,
	StageQualification,
	StageScheduled,
	StageDone,
	StageSale,
}

func (s Stage) String() string {
	switch s {
	case StageLeadsCreated:
		return "leads_created"
	case StageFirstContact:
		return "first_contact"
	case StageResponses:
		return "responses"
	case StageEngaged:
		return "engaged"
	case StageQualification:
		return "qualification"
	case StageScheduled:
		return "scheduled"
	case StageDone:
		return "done"
	case StageSale:
		return "sale"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

func (s Stage) Label() string {
	switch s {
	case StageLeadsCreated:
		return "Leads Gerados"
	case StageFirstContact:
		return "Contato Feito"
	case StageResponses:
		return "Conversas"
	case StageEngaged:
		return "Engajados"
	case StageQualification:
		return "Qualificação"
	case StageScheduled:
		return "Agendados"
	case StageDone:
		return "Realizados"
	case StageSale:
		return "Venda"
	}
	return s.String()
}

// RawStageCounts are the un-cascaded activity totals feeding the top of the funnel.
type RawStageCounts struct {
	LeadsCreated  int
	FirstContact  int
	Responses     int
	Engaged       int
	Qualification int
}

func RawStageCountsFrom(c ActivityCounts) RawStageCounts {
	return RawStageCounts{
		LeadsCreated:  c.Total(entities.ActionLeadCreated),
		FirstContact:  c.Total(entities.ActionFirstContact),
		Responses:     c.Total(entities.ActionResponse),
		Engaged:       c.Total(entities.ActionEngaged),
		Qualification: c.Total(entities.ActionQualification),
	}
}

// Funnel holds cumulative stage values: each stage counts every lead that
// reached it or any later stage.
type Funnel struct {
	LeadsCreated  int `json:"leads_created"`
	FirstContact  int `json:"first_contact"`
	Responses     int `json:"responses"`
	Engaged       int `json:"engaged"`
	Qualification int `json:"qualification"`
	Scheduled     int `json:"scheduled"`
	Done          int `json:"done"`
	Sale          int `json:"sale"`
}

// Cascade builds the cumulative funnel from raw activity totals and the
// appointments of the period. A lead counted at several raw stages is counted
// once per stage on the way down; that double counting is intended.
func Cascade(raw RawStageCounts, appointments []entities.Appointment) Funnel {
	var sale, done int
	for _, a := range appointments {
		if a.Status == entities.StatusSaleMade {
			sale++
		}
		if a.Status != entities.StatusPending {
			done++
		}
	}

	var f Funnel
	f.Sale = sale
	f.Done = done
	f.Scheduled = len(appointments)
	f.Qualification = raw.Qualification + f.Scheduled
	f.Engaged = raw.Engaged + f.Qualification
	f.Responses = raw.Responses + f.Engaged
	f.FirstContact = raw.FirstContact + f.Responses
	f.LeadsCreated = raw.LeadsCreated + f.FirstContact
	return f
}

func (f Funnel) Value(s Stage) int {
	switch s {
	case StageLeadsCreated:
		return f.LeadsCreated
	case StageFirstContact:
		return f.FirstContact
	case StageResponses:
		return f.Responses
	case StageEngaged:
		return f.Engaged
	case StageQualification:
		return f.Qualification
	case StageScheduled:
		return f.Scheduled
	case StageDone:
		return f.Done
	case StageSale:
		return f.Sale
	}
	panic(fmt.Sprintf("analytics: unknown funnel stage %d", int(s)))
}

type FunnelStep struct {
	Stage      string `json:"stage"`
	Label      string `json:"label"`
	Value      int    `json:"value"`
	Conversion *int   `json:"conversion,omitempty"`
}

// Steps renders the funnel in order with the conversion to the following stage.
// The last stage has no conversion.
func (f Funnel) Steps() []FunnelStep {
	steps := make([]FunnelStep, len(Stages))
	for i, s := range Stages {
		steps[i] = FunnelStep{Stage: s.String(), Label: s.Label(), Value: f.Value(s)}
		if i+1 < len(Stages) {
			conv := ratioPct(f.Value(Stages[i+1]), f.Value(s))
			steps[i].Conversion = &conv
		}
	}
	return steps
}
