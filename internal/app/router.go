package app

import (
	"school_reports_backend/docs"
	"school_reports_backend/internal/config"
	"school_reports_backend/internal/middleware"
	"school_reports_backend/internal/model"
	"school_reports_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerReportRoutes(authGroup, c)
		a.registerGradingRoutes(authGroup, c)
		a.registerElectiveRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	admin := authGroup.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.PUT("/templates/:name", c.template.Upload)
		admin.DELETE("/templates/:name", c.template.Remove)
	}
}

func (a *App) registerReportRoutes(r *gin.RouterGroup, c *controllers) {
	reports := r.Group("/reports")
	{
		reports.GET("/students/:id/report-card", c.report.StudentReportCard)
		reports.GET("/courses/:id/grades.xlsx", c.report.CourseGrades)
	}

	tardies := r.Group("/tardies")
	{
		tardies.GET("/stats", c.tardy.Stats)
		tardies.GET("/export", c.tardy.Export)
	}

	r.POST("/accidents", middleware.RoleMiddleware(model.Inspector), c.accident.Declare)
}

func (a *App) registerGradingRoutes(r *gin.RouterGroup, c *controllers) {
	grading := r.Group("/grading")
	{
		grading.GET("/concept", c.grading.Concept)
		grading.POST("/average", c.grading.Average)
	}
}

func (a *App) registerElectiveRoutes(r *gin.RouterGroup, c *controllers) {
	electives := r.Group("/electives")
	{
		electives.GET("/:id", c.enrollment.GetElective)
		electives.POST("/:id/enroll", middleware.RoleMiddleware(model.Inspector), c.enrollment.Enroll)
		electives.DELETE("/:id/enroll/:studentId", middleware.RoleMiddleware(model.Inspector), c.enrollment.Unenroll)
	}
}
