package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/container"
	"github.com/code2day/recipe-api/internal/interface/middleware"
	"github.com/code2day/recipe-api/internal/router/modules"
)

// Setup builds the Gin engine with global middleware and mounts all feature
// modules under /api.
func Setup(c *container.Container) *gin.Engine {
	gin.SetMode(c.Cfg.GinMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RealIP())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(requestLogger(c))

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     c.Cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := engine.Group("/api")

	auth := middleware.Auth(c.Users, c.JWT)

	NewRegistry(c.Logger).
		Add(modules.NewUserModule(c, auth)).
		Add(modules.NewRecipeModule(c, auth)).
		Add(modules.NewCommentModule(c, auth)).
		Add(modules.NewTagModule(c, auth)).
		Add(modules.NewHealthModule(c)).
		Add(modules.NewDebugModule(c)).
		Mount(api)

	return engine
}

func requestLogger(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		c.Logger.WithFields(map[string]interface{}{
			"request_id": ctx.GetString("request_id"),
			"method":     ctx.Request.Method,
			"path":       ctx.Request.URL.Path,
			"status":     ctx.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ctx.GetString("real_ip"),
		}).Info("request")
	}
}
