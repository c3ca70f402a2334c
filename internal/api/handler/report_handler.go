package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/service"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the reporting, export and calendar endpoints.
type ReportHandler struct {
	reportSvc   service.ReportService
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewReportHandler creates the ReportHandler.
func NewReportHandler(reportSvc service.ReportService, exportSvc service.ExportService, calendarSvc service.CalendarService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// GetReport returns the per-worker totals over an inclusive date range.
// GET /api/v1/report?userId=&startDate=&endDate=
func (h *ReportHandler) GetReport(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	report, err := h.reportSvc.GetReport(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, report)
}

// ExportReport streams the same report as an .xlsx attachment.
// GET /api/v1/report/export?userId=&startDate=&endDate=
func (h *ReportHandler) ExportReport(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.ExportReportXlsx(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetCalendar returns the caller's work days as an iCalendar feed.
// GET /api/v1/attivita/me/calendario.ics
func (h *ReportHandler) GetCalendar(c *gin.Context) {
	var req dto.CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	feed, err := h.calendarSvc.GetUserCalendar(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 26001, "start date is after end date")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 22001, "user not found")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
