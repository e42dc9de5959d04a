package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/services"
	apperrors "sales-dashboard/pkg/errors"
	"sales-dashboard/pkg/utils"
)

const maxWebhookBody = 1 << 20

type WebhookController struct {
	webhookService services.WebhookServiceInterface
	logger         *zap.Logger
}

func NewWebhookController(webhookService services.WebhookServiceInterface, logger *zap.Logger) *WebhookController {
	return &WebhookController{webhookService: webhookService, logger: logger}
}

// decode keeps the raw body for the webhook log, then unmarshals and validates it.
// Rejected payloads are logged with status 400 before returning.
func (ctrl *WebhookController) decode(c echo.Context, endpoint string, payload interface{}) (json.RawMessage, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return nil, apperrors.NewBadRequestError("Não foi possível ler o corpo da requisição")
	}
	if err := json.Unmarshal(raw, payload); err != nil {
		ctrl.logger.Warn("webhook com JSON inválido", zap.String("endpoint", endpoint), zap.Error(err))
		ctrl.webhookService.LogFailure(c.Request().Context(), endpoint, raw, http.StatusBadRequest)
		return nil, apperrors.NewBadRequestError("JSON inválido")
	}
	if err := c.Validate(payload); err != nil {
		ctrl.logger.Warn("webhook com campos inválidos", zap.String("endpoint", endpoint), zap.Error(err))
		ctrl.webhookService.LogFailure(c.Request().Context(), endpoint, raw, http.StatusBadRequest)
		return nil, err
	}
	return raw, nil
}

func (ctrl *WebhookController) ReceiveActivity(c echo.Context) error {
	var payload dto.ActivityWebhookDTO
	raw, err := ctrl.decode(c, services.EndpointActivity, &payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	result, err := ctrl.webhookService.RecordActivity(c.Request().Context(), payload, raw)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Atividade registrada", http.StatusCreated)
}

func (ctrl *WebhookController) ReceiveAgendamento(c echo.Context) error {
	var payload dto.AgendamentoWebhookDTO
	raw, err := ctrl.decode(c, services.EndpointAgendamento, &payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	result, err := ctrl.webhookService.ScheduleAppointment(c.Request().Context(), payload, raw)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	code := http.StatusOK
	if result.Created {
		code = http.StatusCreated
	}
	return utils.SuccessResponse(c, result, "Agendamento registrado", code)
}

func (ctrl *WebhookController) ReceiveCallStatus(c echo.Context) error {
	var payload dto.CallStatusWebhookDTO
	raw, err := ctrl.decode(c, services.EndpointCallStatus, &payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	result, err := ctrl.webhookService.UpdateCallStatus(c.Request().Context(), payload, raw)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Status da call atualizado", http.StatusOK)
}

func (ctrl *WebhookController) ListLogs(c echo.Context) error {
	var limit uint64
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return utils.ErrorResponse(c, apperrors.NewBadRequestError("Parâmetro limit inválido"), ctrl.logger)
		}
		limit = n
	}
	logs, err := ctrl.webhookService.RecentLogs(c.Request().Context(), limit)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, logs, "Logs de webhooks carregados", http.StatusOK)
}

func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthDTO{Status: "OK", Timestamp: time.Now().UTC()})
}
