package controller

import (
	"school_reports_backend/internal/service"
	"school_reports_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// @Summary Elective offering
// @Tags electives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Elective ID"
// @Success 200 {object} util.Response
// @Router /api/electives/{id} [get]
func (c *EnrollmentController) GetElective(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	e, err := c.EnrollmentService.Elective(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, e)
}

// @Summary Enroll a student in an elective
// @Tags electives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Elective ID"
// @Param body body object true "{studentId}"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/electives/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var body struct {
		StudentID uint `json:"studentId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.EnrollmentService.Enroll(ctx.Request.Context(), id, body.StudentID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Remove a student from an elective
// @Tags electives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Elective ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/electives/{id}/enroll/{studentId} [delete]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := pathID(ctx, "studentId")
	if !ok {
		return
	}

	result, err := c.EnrollmentService.Unenroll(ctx.Request.Context(), id, studentID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
