package controller

import (
	"errors"
	"io"
	"io/fs"
	"net/http"

	"school_reports_backend/internal/service"
	"school_reports_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const maxTemplateSize = 10 << 20

type TemplateController struct {
	TemplateService *service.TemplateService
}

func NewTemplateController(templateService *service.TemplateService) *TemplateController {
	return &TemplateController{TemplateService: templateService}
}

// @Summary Upload a document template
// @Description Replaces the background PDF of a layout (report_card, accident)
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name path string true "Layout name"
// @Param file formData file true "PDF template"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/templates/{name} [put]
func (c *TemplateController) Upload(ctx *gin.Context) {
	name := ctx.Param("name")

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > maxTemplateSize {
		util.BadRequest(ctx, "template exceeds 10MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxTemplateSize))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	url, err := c.TemplateService.Save(ctx.Request.Context(), name, data)
	if err != nil {
		if errors.Is(err, util.ErrTemplate) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"name": name, "url": url})
}

// @Summary Remove a document template
// @Description Deletes the background PDF of a layout; documents print on a blank page afterwards
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name path string true "Layout name"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/templates/{name} [delete]
func (c *TemplateController) Remove(ctx *gin.Context) {
	name := ctx.Param("name")

	err := c.TemplateService.Remove(ctx.Request.Context(), name)
	switch {
	case err == nil:
		util.Success(ctx, gin.H{"name": name})
	case errors.Is(err, util.ErrTemplate):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, fs.ErrNotExist):
		util.Error(ctx, http.StatusNotFound, "no template uploaded for "+name)
	default:
		util.LogInternalError(ctx, err)
	}
}
