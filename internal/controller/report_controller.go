package controller

import (
	"school_reports_backend/internal/service"
	"school_reports_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// @Summary Student report card
// @Description Prints every subject with both semesters and the annual average over the report card template
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/reports/students/{id}/report-card [get]
func (c *ReportController) StudentReportCard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	doc, err := c.ReportService.StudentReportCard(ctx.Request.Context(), id, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	sendDocument(ctx, doc)
}

// @Summary Course grades workbook
// @Description One row per student and subject with the printed slots and averages
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/reports/courses/{id}/grades.xlsx [get]
func (c *ReportController) CourseGrades(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	doc, err := c.ReportService.CourseGradesWorkbook(ctx.Request.Context(), id, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	sendDocument(ctx, doc)
}
