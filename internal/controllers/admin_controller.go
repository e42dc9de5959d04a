package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/services"
	apperrors "sales-dashboard/pkg/errors"
	"sales-dashboard/pkg/utils"
)

type AdminController struct {
	profileService     services.ProfileServiceInterface
	goalService        services.GoalServiceInterface
	appointmentService services.AppointmentServiceInterface
	logger             *zap.Logger
}

func NewAdminController(
	profileService services.ProfileServiceInterface,
	goalService services.GoalServiceInterface,
	appointmentService services.AppointmentServiceInterface,
	logger *zap.Logger,
) *AdminController {
	return &AdminController{
		profileService:     profileService,
		goalService:        goalService,
		appointmentService: appointmentService,
		logger:             logger,
	}
}

func (ctrl *AdminController) bind(c echo.Context, payload interface{}) error {
	if err := c.Bind(payload); err != nil {
		return apperrors.NewBadRequestError("Formato de dados inválido")
	}
	return c.Validate(payload)
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("Identificador inválido")
	}
	return id, nil
}

func (ctrl *AdminController) ListProfiles(c echo.Context) error {
	res, err := ctrl.profileService.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Usuários carregados", http.StatusOK)
}

func (ctrl *AdminController) CreateProfile(c echo.Context) error {
	var payload dto.CreateProfileDTO
	if err := ctrl.bind(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	res, err := ctrl.profileService.Create(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Usuário criado", http.StatusCreated)
}

func (ctrl *AdminController) UpdateProfile(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	var payload dto.UpdateProfileDTO
	if err := ctrl.bind(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	res, err := ctrl.profileService.Update(c.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Usuário atualizado", http.StatusOK)
}

func (ctrl *AdminController) ListTaskTypes(c echo.Context) error {
	res, err := ctrl.goalService.ListTaskTypes(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Tipos de tarefa carregados", http.StatusOK)
}

func (ctrl *AdminController) CreateTaskType(c echo.Context) error {
	var payload dto.CreateTaskTypeDTO
	if err := ctrl.bind(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	res, err := ctrl.goalService.CreateTaskType(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Tipo de tarefa criado", http.StatusCreated)
}

func (ctrl *AdminController) UpdateTaskType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	var payload dto.UpdateTaskTypeDTO
	if err := ctrl.bind(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	res, err := ctrl.goalService.UpdateTaskType(c.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Tipo de tarefa atualizado", http.StatusOK)
}

func (ctrl *AdminController) DeleteTaskType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := ctrl.goalService.DeleteTaskType(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Tipo de tarefa removido", http.StatusOK)
}

func (ctrl *AdminController) UpsertUserGoal(c echo.Context) error {
	var payload dto.UpsertUserGoalDTO
	if err := ctrl.bind(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	res, err := ctrl.goalService.UpsertUserGoal(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Meta salva", http.StatusOK)
}

func (ctrl *AdminController) DeleteUserGoal(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := ctrl.goalService.DeleteUserGoal(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Meta removida", http.StatusOK)
}

func (ctrl *AdminController) GetCompanyGoals(c echo.Context) error {
	res, err := ctrl.goalService.GetCompanyGoals(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Metas da empresa carregadas", http.StatusOK)
}

func (ctrl *AdminController) UpdateCompanyGoals(c echo.Context) error {
	var payload dto.CompanyGoalsDTO
	if err := ctrl.bind(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	res, err := ctrl.goalService.UpdateCompanyGoals(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Metas da empresa salvas", http.StatusOK)
}

func (ctrl *AdminController) UpdateAppointmentStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	var payload dto.UpdateAppointmentStatusDTO
	if err := ctrl.bind(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	res, err := ctrl.appointmentService.UpdateStatus(c.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Agendamento atualizado", http.StatusOK)
}
