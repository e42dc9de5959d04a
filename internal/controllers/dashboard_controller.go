package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/services"
	apperrors "sales-dashboard/pkg/errors"
	"sales-dashboard/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	location         *time.Location
	logger           *zap.Logger
}

func NewDashboardController(ds services.DashboardServiceInterface, location *time.Location, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: ds,
		location:         location,
		logger:           logger,
	}
}

// parseDashboardQuery reads ?period=today|week|month|year|custom&start=YYYY-MM-DD&end=YYYY-MM-DD.
func parseDashboardQuery(c echo.Context, loc *time.Location) (dto.DashboardQuery, error) {
	q := dto.DashboardQuery{Period: analytics.ParsePeriod(c.QueryParam("period"))}
	if q.Period != analytics.PeriodCustom {
		return q, nil
	}

	start, hasStart, err := utils.ParseDateParam(c, "start", loc)
	if err != nil {
		return q, apperrors.NewBadRequestError("Data inicial inválida, use AAAA-MM-DD")
	}
	end, hasEnd, err := utils.ParseDateParam(c, "end", loc)
	if err != nil {
		return q, apperrors.NewBadRequestError("Data final inválida, use AAAA-MM-DD")
	}
	switch {
	case hasStart && hasEnd:
		q.Custom = &analytics.DateRange{Start: start, End: end}
	case hasStart:
		q.Custom = &analytics.DateRange{Start: start, End: start}
	case hasEnd:
		q.Custom = &analytics.DateRange{Start: end, End: end}
	}
	return q, nil
}

func (ctrl *DashboardController) GetDashboard(c echo.Context) error {
	q, err := parseDashboardQuery(c, ctrl.location)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result, err := ctrl.dashboardService.GetDashboard(c.Request().Context(), q)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Dashboard carregado", http.StatusOK)
}

func (ctrl *DashboardController) GetMyGoals(c echo.Context) error {
	session, err := utils.GetSessionFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	q, err := parseDashboardQuery(c, ctrl.location)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result, err := ctrl.dashboardService.GetMyGoals(c.Request().Context(), session, q)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Metas carregadas", http.StatusOK)
}
