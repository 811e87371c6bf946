package controller

import (
	"context"
	"net/http"

	"school_reports_backend/internal/util"
	"school_reports_backend/pkg/logger"
	"school_reports_backend/pkg/timeouts"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController checks the record source and, when configured, the
// database and redis. Nil dependencies are skipped.
type HealthController struct {
	Source Pinger
	DB     *gorm.DB
	Redis  *redis.Client
}

func NewHealthController(source Pinger, db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{Source: source, DB: db, Redis: rdb}
}

// @Summary Health check
// @Description Checks the school API (or replica) and the optional database and redis
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	reqCtx, cancel := timeouts.WithTimeout(ctx.Request.Context(), timeouts.Ping(), logger.Log, "health check")
	defer cancel()

	components := gin.H{}
	healthy := true
	check := func(name string, ping func() error) {
		if err := ping(); err != nil {
			components[name] = "down"
			healthy = false
			return
		}
		components[name] = "up"
	}

	if c.Source != nil {
		check("source", func() error { return c.Source.Ping(reqCtx) })
	}
	if c.DB != nil {
		check("database", func() error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(reqCtx)
		})
	}
	if c.Redis != nil {
		check("redis", func() error { return c.Redis.Ping(reqCtx).Err() })
	}

	if !healthy {
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "Service unavailable",
			Data:    gin.H{"status": "degraded", "components": components},
		})
		return
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
