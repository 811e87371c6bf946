package controller

import (
	"strconv"
	"strings"

	"school_reports_backend/internal/grading"
	"school_reports_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// GradingController exposes the concept and average rules so the dashboard
// prints the same values as the documents.
type GradingController struct{}

func NewGradingController() *GradingController {
	return &GradingController{}
}

// @Summary Concept band of a grade
// @Description value gives the letter (MB, B, S, I) and its numeric equivalent; letter gives only the numeric one
// @Tags grading
// @Produce json
// @Security BearerAuth
// @Param value query number false "Numeric grade"
// @Param letter query string false "Concept letter"
// @Success 200 {object} util.Response
// @Router /api/grading/concept [get]
func (c *GradingController) Concept(ctx *gin.Context) {
	if letter := strings.TrimSpace(ctx.Query("letter")); letter != "" {
		util.Success(ctx, gin.H{
			"letter":  strings.ToUpper(letter),
			"numeric": grading.ToNumeric(letter),
		})
		return
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(ctx.Query("value"), ",", "."), 64)
	if err != nil {
		util.BadRequest(ctx, "invalid value")
		return
	}
	letter := grading.ToConceptLetter(value)
	util.Success(ctx, gin.H{
		"letter":  letter,
		"numeric": grading.ToNumeric(letter),
		"valid":   grading.ValidEntry(value),
	})
}

// @Summary Average of grades
// @Description Mean with one decimal of the numeric values; null, "-" and text are skipped. "-" when nothing is numeric
// @Tags grading
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "{values: [65, null, \"-\", 70]}"
// @Success 200 {object} util.Response
// @Router /api/grading/average [post]
func (c *GradingController) Average(ctx *gin.Context) {
	var body struct {
		Values []interface{} `json:"values"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"average": grading.AverageOf(body.Values...)})
}
