package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health answers GET /health for the uptime monitor: pings postgres and redis
// with a short timeout and reports each as "connected" or "error". Driver
// errors stay in the logs, never in the body.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := gin.H{"db": "connected", "redis": "connected"}
		ok := true

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["db"] = "error"
			ok = false
		}
		if rdb.Ping(ctx).Err() != nil {
			checks["redis"] = "error"
			ok = false
		}

		checks["ok"] = ok
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, checks)
	}
}
