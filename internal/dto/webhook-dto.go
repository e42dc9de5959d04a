package dto

import (
	"encoding/json"
	"time"
)

// ActivityWebhookDTO is posted by the automation tool for every prospecting action.
type ActivityWebhookDTO struct {
	UserID    string          `json:"user_id" validate:"required,uuid"`
	TipoAcao  string          `json:"tipo_acao" validate:"required,action_type"`
	LeadID    string          `json:"lead_id" validate:"required"`
	Timestamp *time.Time      `json:"timestamp"`
	Metadata  json.RawMessage `json:"metadata"`
}

type AgendamentoWebhookDTO struct {
	LeadID          string          `json:"lead_id" validate:"required"`
	Nome            string          `json:"nome" validate:"required"`
	DataAgendada    time.Time       `json:"data_agendada" validate:"required"`
	UserResponsavel string          `json:"user_responsavel" validate:"required,uuid"`
	Metadata        json.RawMessage `json:"metadata"`
}

type CallStatusWebhookDTO struct {
	LeadID          string          `json:"lead_id" validate:"required"`
	Status          string          `json:"status" validate:"required,call_status"`
	RevenueReceived *float64        `json:"revenue_received" validate:"omitempty,gte=0"`
	Metadata        json.RawMessage `json:"metadata"`
}

type WebhookResultDTO struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Created bool   `json:"created,omitempty"`
}

type HealthDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
