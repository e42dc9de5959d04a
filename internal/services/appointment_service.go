package services

import (
	"context"
	"errors"

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

type AppointmentServiceInterface interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, payload dto.UpdateAppointmentStatusDTO) (*entities.Appointment, error)
}

type AppointmentService struct {
	*BaseService
	txManager    repositories.TxManagerInterface
	appointments repositories.AppointmentRepositoryInterface
	logger       *zap.Logger
}

func NewAppointmentService(
	txManager repositories.TxManagerInterface,
	appointments repositories.AppointmentRepositoryInterface,
	base *BaseService,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{BaseService: base, txManager: txManager, appointments: appointments, logger: logger}
}

// UpdateStatus is the manual counterpart of the call-status webhook; it may also reopen an appointment.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uuid.UUID, payload dto.UpdateAppointmentStatusDTO) (*entities.Appointment, error) {
	status := entities.AppointmentStatus(payload.Status)
	if !status.Valid() {
		return nil, apperrors.NewInvalidInputError("status inválido: %s", payload.Status)
	}
	if payload.RevenueReceived != nil && *payload.RevenueReceived < 0 {
		return nil, apperrors.NewInvalidInputError("revenue_received não pode ser negativo")
	}
	revenue := null.Float64{}
	if status == entities.StatusSaleMade && payload.RevenueReceived != nil {
		revenue = null.Float64From(*payload.RevenueReceived)
	}

	var updated *entities.Appointment
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		updated, txErr = s.appointments.UpdateStatus(ctx, tx, id, status, revenue)
		return txErr
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Agendamento não encontrado")
		}
		return nil, err
	}

	s.logger.Info("status do agendamento alterado", zap.String("id", id.String()), zap.String("status", string(status)))
	s.PublishChange(ctx, events.TableAppointments, events.OpUpdate)
	return updated, nil
}
