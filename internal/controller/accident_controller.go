package controller

import (
	"school_reports_backend/internal/model"
	"school_reports_backend/internal/service"
	"school_reports_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AccidentController struct {
	AccidentService *service.AccidentService
}

func NewAccidentController(accidentService *service.AccidentService) *AccidentController {
	return &AccidentController{AccidentService: accidentService}
}

// @Summary Declare a school accident
// @Description Saves the declaration in the school API, then prints it over the accident template
// @Tags accidents
// @Accept json
// @Produce application/pdf
// @Security BearerAuth
// @Param body body model.AccidentReport true "Accident declaration"
// @Success 200 {file} binary
// @Failure 400 {object} util.Response
// @Router /api/accidents [post]
func (c *AccidentController) Declare(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var report model.AccidentReport
	if err := ctx.ShouldBindJSON(&report); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	doc, err := c.AccidentService.Declare(ctx.Request.Context(), report, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	sendDocument(ctx, doc)
}
