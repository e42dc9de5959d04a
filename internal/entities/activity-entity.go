package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActionType is the closed catalog of activity events pushed by the automation tool.
type ActionType string

const (
	ActionLeadCreated   ActionType = "lead_criado"
	ActionFirstContact  ActionType = "primeiro_contato"
	ActionResponse      ActionType = "respostas"
	ActionEngaged       ActionType = "lead_engajado"
	ActionQualification ActionType = "qualificacao"
	ActionFollowUp      ActionType = "follow_up"
	ActionApproach      ActionType = "abordagem"
)

// ActionTypes lists every known action type in funnel order, follow-up and approach last.
var ActionTypes = []ActionType{
	ActionLeadCreated,
	ActionFirstContact,
	ActionResponse,
	ActionEngaged,
	ActionQualification,
	ActionFollowUp,
	ActionApproach,
}

func (a ActionType) Valid() bool {
	switch a {
	case ActionLeadCreated, ActionFirstContact, ActionResponse, ActionEngaged,
		ActionQualification, ActionFollowUp, ActionApproach:
		return true
	}
	return false
}

// IsAttempt reports whether the event counts as an outreach attempt in the daily history.
func (a ActionType) IsAttempt() bool {
	return a == ActionApproach || a == ActionFollowUp
}

// Label is the short display label used on performance cards.
func (a ActionType) Label() string {
	switch a {
	case ActionLeadCreated:
		return "Criação"
	case ActionFirstContact:
		return "1º Contato"
	case ActionResponse:
		return "Respostas"
	case ActionEngaged:
		return "Engajamento"
	case ActionQualification:
		return "Qualificação"
	case ActionFollowUp:
		return "Follow"
	case ActionApproach:
		return "Abordagem"
	}
	return ""
}

type ActivityEvent struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	ActionType ActionType      `json:"action_type"`
	LeadID     string          `json:"lead_id"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}
