package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/services"
	"sales-dashboard/pkg/utils"
)

const (
	sheetFunnel   = "Funil"
	sheetUsers    = "Usuários"
	sheetDaily    = "Histórico Diário"
	sheetAnnual   = "Resumo Anual"
	sheetBusiness = "Métricas"

	exportTimeoutSeconds = 30
)

type ReportController struct {
	dashboardService services.DashboardServiceInterface
	location         *time.Location
	logger           *zap.Logger
}

func NewReportController(ds services.DashboardServiceInterface, location *time.Location, logger *zap.Logger) *ReportController {
	return &ReportController{dashboardService: ds, location: location, logger: logger}
}

func (c *ReportController) ExportDashboard(ctx echo.Context) error {
	q, err := parseDashboardQuery(ctx, c.location)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	reqCtx, cancel := utils.ContextWithTimeout(ctx, exportTimeoutSeconds)
	defer cancel()

	data, err := c.dashboardService.GetDashboard(reqCtx, q)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f, err := buildDashboardWorkbook(data)
	if err != nil {
		c.logger.Error("falha ao montar planilha do dashboard", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("dashboard_%s_%s.xlsx", data.Period.Period, data.Period.Start.Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func buildDashboardWorkbook(data *dto.DashboardDTO) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetFunnel); err != nil {
		return nil, err
	}
	for _, s := range []string{sheetUsers, sheetDaily, sheetAnnual, sheetBusiness} {
		if _, err := f.NewSheet(s); err != nil {
			return nil, err
		}
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	var funnel [][]interface{}
	for _, step := range data.FunnelSteps {
		conv := "-"
		if step.Conversion != nil {
			conv = fmt.Sprintf("%d%%", *step.Conversion)
		}
		funnel = append(funnel, []interface{}{step.Label, step.Value, conv})
	}

	var users [][]interface{}
	for _, u := range data.Users {
		for _, t := range u.Tasks {
			users = append(users, []interface{}{u.FullName, string(u.Role), t.Label, t.Current, t.Goal, t.Pct, u.Sales})
		}
	}

	var daily [][]interface{}
	for _, d := range data.Daily {
		daily = append(daily, []interface{}{d.Date, d.Attempts, d.Responses, d.ConversionPct})
	}

	var annual [][]interface{}
	for _, m := range data.Annual {
		annual = append(annual, []interface{}{m.Label, m.Leads, m.Sales, m.Revenue})
	}

	var business [][]interface{}
	for _, b := range data.Business {
		business = append(business, []interface{}{b.Label, b.CurrentFormatted, b.GoalFormatted, b.Pct})
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]interface{}
	}{
		{sheetFunnel, []string{"Etapa", "Quantidade", "Conversão"}, funnel},
		{sheetUsers, []string{"Usuário", "Cargo", "Tarefa", "Realizado", "Meta", "%", "Vendas"}, users},
		{sheetDaily, []string{"Data", "Tentativas", "Respostas", "Conversão %"}, daily},
		{sheetAnnual, []string{"Mês", "Leads", "Vendas", "Faturamento"}, annual},
		{sheetBusiness, []string{"Indicador", "Atual", "Meta", "%"}, business},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.headers, s.rows, style); err != nil {
			return nil, fmt.Errorf("planilha %s: %w", s.name, err)
		}
	}
	return f, nil
}
