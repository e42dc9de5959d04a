package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/entities"
	"sales-dashboard/internal/events"
	"sales-dashboard/internal/repositories"
	apperrors "sales-dashboard/pkg/errors"
)

const (
	EndpointActivity    = "/api/activity"
	EndpointAgendamento = "/api/agendamento"
	EndpointCallStatus  = "/api/call-status"
)

type WebhookServiceInterface interface {
	RecordActivity(ctx context.Context, payload dto.ActivityWebhookDTO, raw json.RawMessage) (*dto.WebhookResultDTO, error)
	ScheduleAppointment(ctx context.Context, payload dto.AgendamentoWebhookDTO, raw json.RawMessage) (*dto.WebhookResultDTO, error)
	UpdateCallStatus(ctx context.Context, payload dto.CallStatusWebhookDTO, raw json.RawMessage) (*dto.WebhookResultDTO, error)
	LogFailure(ctx context.Context, endpoint string, raw json.RawMessage, statusCode int)
	RecentLogs(ctx context.Context, limit uint64) ([]entities.WebhookLog, error)
}

type WebhookService struct {
	*BaseService
	txManager    repositories.TxManagerInterface
	activities   repositories.ActivityRepositoryInterface
	appointments repositories.AppointmentRepositoryInterface
	logs         repositories.WebhookLogRepositoryInterface
	now          func() time.Time
	logger       *zap.Logger
}

func NewWebhookService(
	txManager repositories.TxManagerInterface,
	activities repositories.ActivityRepositoryInterface,
	appointments repositories.AppointmentRepositoryInterface,
	logs repositories.WebhookLogRepositoryInterface,
	base *BaseService,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		BaseService:  base,
		txManager:    txManager,
		activities:   activities,
		appointments: appointments,
		logs:         logs,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *WebhookService) logAccepted(ctx context.Context, tx pgx.Tx, endpoint string, raw json.RawMessage, status int) error {
	_, err := s.logs.Create(ctx, tx, entities.WebhookLog{Endpoint: endpoint, Payload: raw, StatusCode: status})
	return err
}

// LogFailure records a rejected or failed call outside any transaction. Errors are only logged.
func (s *WebhookService) LogFailure(ctx context.Context, endpoint string, raw json.RawMessage, statusCode int) {
	if !json.Valid(raw) {
		wrapped, _ := json.Marshal(map[string]string{"raw": string(raw)})
		raw = wrapped
	}
	if _, err := s.logs.Create(ctx, nil, entities.WebhookLog{Endpoint: endpoint, Payload: raw, StatusCode: statusCode}); err != nil {
		s.logger.Warn("falha ao registrar webhook_logs", zap.String("endpoint", endpoint), zap.Error(err))
	}
}

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

// RecentLogs returns the newest webhook_logs rows, newest first.
func (s *WebhookService) RecentLogs(ctx context.Context, limit uint64) ([]entities.WebhookLog, error) {
	switch {
	case limit == 0:
		limit = defaultLogLimit
	case limit > maxLogLimit:
		limit = maxLogLimit
	}
	logs, err := s.logs.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Erro ao carregar logs de webhooks", err, nil)
	}
	return logs, nil
}

func (s *WebhookService) fail(ctx context.Context, endpoint string, raw json.RawMessage, err error) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		s.LogFailure(ctx, endpoint, raw, httpErr.Code)
		return err
	}
	s.logger.Error("falha ao processar webhook", zap.String("endpoint", endpoint), zap.Error(err))
	s.LogFailure(ctx, endpoint, raw, http.StatusInternalServerError)
	return apperrors.NewHttpError(http.StatusInternalServerError, "Erro ao processar o webhook", err, map[string]interface{}{"endpoint": endpoint})
}

func (s *WebhookService) RecordActivity(ctx context.Context, payload dto.ActivityWebhookDTO, raw json.RawMessage) (*dto.WebhookResultDTO, error) {
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		s.LogFailure(ctx, EndpointActivity, raw, http.StatusBadRequest)
		return nil, apperrors.NewInvalidInputError("user_id inválido: %s", payload.UserID)
	}
	action := entities.ActionType(payload.TipoAcao)
	if !action.Valid() {
		s.LogFailure(ctx, EndpointActivity, raw, http.StatusBadRequest)
		return nil, apperrors.NewInvalidInputError("tipo_acao desconhecido: %s", payload.TipoAcao)
	}

	ts := s.now()
	if payload.Timestamp != nil && !payload.Timestamp.IsZero() {
		ts = *payload.Timestamp
	}

	var id uuid.UUID
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		id, txErr = s.activities.Create(ctx, tx, entities.ActivityEvent{
			UserID:     userID,
			ActionType: action,
			LeadID:     payload.LeadID,
			Metadata:   payload.Metadata,
			Timestamp:  ts,
		})
		if txErr != nil {
			return txErr
		}
		return s.logAccepted(ctx, tx, EndpointActivity, raw, http.StatusCreated)
	})
	if err != nil {
		return nil, s.fail(ctx, EndpointActivity, raw, err)
	}

	s.PublishChange(ctx, events.TableActivityLogs, events.OpInsert)
	return &dto.WebhookResultDTO{Success: true, ID: id.String(), Created: true}, nil
}

func (s *WebhookService) ScheduleAppointment(ctx context.Context, payload dto.AgendamentoWebhookDTO, raw json.RawMessage) (*dto.WebhookResultDTO, error) {
	userID, err := uuid.Parse(payload.UserResponsavel)
	if err != nil {
		s.LogFailure(ctx, EndpointAgendamento, raw, http.StatusBadRequest)
		return nil, apperrors.NewInvalidInputError("user_responsavel inválido: %s", payload.UserResponsavel)
	}

	var (
		saved    *entities.Appointment
		inserted bool
	)
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		saved, inserted, txErr = s.appointments.Upsert(ctx, tx, entities.Appointment{
			LeadID:        payload.LeadID,
			LeadName:      payload.Nome,
			UserID:        userID,
			ScheduledDate: payload.DataAgendada,
		})
		if txErr != nil {
			return txErr
		}
		status := http.StatusOK
		if inserted {
			status = http.StatusCreated
		}
		return s.logAccepted(ctx, tx, EndpointAgendamento, raw, status)
	})
	if err != nil {
		return nil, s.fail(ctx, EndpointAgendamento, raw, err)
	}

	op := events.OpUpdate
	if inserted {
		op = events.OpInsert
	}
	s.PublishChange(ctx, events.TableAppointments, op)
	return &dto.WebhookResultDTO{Success: true, ID: saved.ID.String(), Created: inserted}, nil
}

// UpdateCallStatus closes the appointment of a lead. Revenue is stored only for a sale.
// A repeated call carrying the status and revenue already stored is logged but not rewritten.
func (s *WebhookService) UpdateCallStatus(ctx context.Context, payload dto.CallStatusWebhookDTO, raw json.RawMessage) (*dto.WebhookResultDTO, error) {
	status := entities.AppointmentStatus(payload.Status)
	if !status.IsTerminal() {
		s.LogFailure(ctx, EndpointCallStatus, raw, http.StatusBadRequest)
		return nil, apperrors.NewInvalidInputError("status inválido: %s", payload.Status)
	}
	if payload.RevenueReceived != nil && *payload.RevenueReceived < 0 {
		s.LogFailure(ctx, EndpointCallStatus, raw, http.StatusBadRequest)
		return nil, apperrors.NewInvalidInputError("revenue_received não pode ser negativo")
	}

	revenue := null.Float64{}
	if status == entities.StatusSaleMade && payload.RevenueReceived != nil {
		revenue = null.Float64From(*payload.RevenueReceived)
	}

	var updated *entities.Appointment
	changed := true
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, txErr := s.appointments.FindByLeadID(ctx, tx, payload.LeadID)
		if errors.Is(txErr, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Agendamento não encontrado para o lead informado")
		}
		if txErr != nil {
			return txErr
		}

		if current.Status == status && current.RevenueReceived == revenue {
			updated, changed = current, false
		} else {
			updated, txErr = s.appointments.UpdateCallStatus(ctx, tx, payload.LeadID, status, revenue, payload.Metadata)
			if errors.Is(txErr, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Agendamento não encontrado para o lead informado")
			}
			if txErr != nil {
				return txErr
			}
			s.logger.Info("status da call atualizado",
				zap.String("leadID", payload.LeadID),
				zap.String("from", string(current.Status)),
				zap.String("to", string(status)),
			)
		}
		return s.logAccepted(ctx, tx, EndpointCallStatus, raw, http.StatusOK)
	})
	if err != nil {
		return nil, s.fail(ctx, EndpointCallStatus, raw, err)
	}

	if changed {
		s.PublishChange(ctx, events.TableAppointments, events.OpUpdate)
	}
	return &dto.WebhookResultDTO{Success: true, ID: updated.ID.String()}, nil
}
