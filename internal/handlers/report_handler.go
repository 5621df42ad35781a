package handlers

import (
	"net/http"

	"fintrack-api/internal/errors"
	"fintrack-api/internal/services"

	"github.com/labstack/echo/v4"
)

const maxReportMonths = 36

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// MonthlyReport returns per-month income and expense aggregates
// @Summary Monthly report
// @Description Income, expense, and net totals per month with a per-category breakdown, oldest month first
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param months query int false "Number of months to include, ending at the current month (max 36)" default(12)
// @Success 200 {object} dto.MonthlyReportResponse "Monthly aggregates"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_004 - months out of range"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Router /reports/monthly [get]
func (h *ReportHandler) MonthlyReport(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	months := getIntParam(c, "months", services.DefaultReportMonths)
	if months < 0 || months > maxReportMonths {
		return SendError(c, errors.ValidationOutOfRange,
			errors.WithDetails("months must be between 1 and 36"))
	}

	report, err := h.reportService.MonthlyReport(userID, months)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}
