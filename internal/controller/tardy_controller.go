package controller

import (
	"school_reports_backend/internal/service"
	"school_reports_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TardyController struct {
	TardyService *service.TardyService
}

func NewTardyController(tardyService *service.TardyService) *TardyController {
	return &TardyController{TardyService: tardyService}
}

// filter reads course_id (repeatable), from and to.
func (c *TardyController) filter(ctx *gin.Context) (service.TardyFilter, bool) {
	raw := ctx.QueryArray("course_id")
	ids := util.ParseUintList(raw)
	if len(ids) != len(raw) {
		util.BadRequest(ctx, "invalid course_id")
		return service.TardyFilter{}, false
	}
	f := service.TardyFilter{
		CourseIDs: ids,
		From:      ctx.Query("from"),
		To:        ctx.Query("to"),
	}
	if err := f.Validate(); err != nil {
		util.BadRequest(ctx, err.Error())
		return service.TardyFilter{}, false
	}
	return f, true
}

// @Summary Tardy statistics
// @Description Totals, daily average and buckets per day, month, course and hour
// @Tags tardies
// @Produce json
// @Security BearerAuth
// @Param course_id query []int false "Course IDs" collectionFormat(multi)
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} util.Response
// @Router /api/tardies/stats [get]
func (c *TardyController) Stats(ctx *gin.Context) {
	f, ok := c.filter(ctx)
	if !ok {
		return
	}

	stats, err := c.TardyService.Stats(ctx.Request.Context(), f)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Tardy export
// @Description Workbook with every tardy sorted by date and time plus a per-course summary
// @Tags tardies
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param course_id query []int false "Course IDs" collectionFormat(multi)
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/tardies/export [get]
func (c *TardyController) Export(ctx *gin.Context) {
	f, ok := c.filter(ctx)
	if !ok {
		return
	}

	doc, err := c.TardyService.Workbook(ctx.Request.Context(), f)
	if err != nil {
		respondError(ctx, err)
		return
	}
	sendDocument(ctx, doc)
}
