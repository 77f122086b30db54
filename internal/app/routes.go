package app

import (
	"context"
	"net/http"
	"time"

	"Socialmedia/internal/config"
	"Socialmedia/internal/handlers"
	"Socialmedia/internal/middleware"
	"Socialmedia/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, log zerolog.Logger, stores Stores) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg, stores.Ping))
	r.GET("/version", versionHandler(cfg))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger-doc.json", openAPIHandler(swag.Name))
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	var limited []gin.HandlerFunc
	if stores.Redis != nil {
		rl := middleware.NewRateLimiter(stores.Redis, cfg.RateLimit.Requests, cfg.RateLimit.Window.Duration(), log)
		limited = append(limited, rl.Middleware())
	}

	accountSvc := service.NewAccountService(stores.Accounts, log)
	accountHandler := handlers.NewAccountHandler(accountSvc)
	registerAccountRoutes(r, accountHandler, limited)

	messageSvc := service.NewMessageService(stores.Messages)
	messageHandler := handlers.NewMessageHandler(messageSvc, accountSvc)
	registerMessageRoutes(r, messageHandler)
}

type serviceInfo struct {
	Service string            `json:"service"`
	Version string            `json:"version"`
	Env     string            `json:"env"`
	Store   string            `json:"store"`
	Links   map[string]string `json:"links"`
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	info := serviceInfo{
		Service: "socialmedia",
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
		Store:   cfg.Store.Driver,
		Links: map[string]string{
			"docs":    "/swagger/index.html",
			"openapi": "/swagger-doc.json",
			"health":  "/health",
			"metrics": "/metrics",
		},
	}
	return func(c *gin.Context) { c.JSON(http.StatusOK, info) }
}

func healthHandler(cfg config.Config, ping func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				_ = c.Error(err)
				respondUnavailable(c, "store unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	body := gin.H{"version": cfg.App.Version, "store": cfg.Store.Driver}
	return func(c *gin.Context) { c.JSON(http.StatusOK, body) }
}

// openAPIHandler serves the registered swag document by instance name.
func openAPIHandler(instance string) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc(instance)
		if err != nil {
			respondUnavailable(c, "api docs not registered")
			return
		}
		c.Data(http.StatusOK, gin.MIMEJSON+"; charset=utf-8", []byte(doc))
	}
}

func respondUnavailable(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": reason})
}

func registerAccountRoutes(r gin.IRoutes, h *handlers.AccountHandler, limited []gin.HandlerFunc) {
	chain := func(last gin.HandlerFunc) []gin.HandlerFunc {
		out := make([]gin.HandlerFunc, 0, len(limited)+1)
		return append(append(out, limited...), last)
	}
	r.POST("/register", chain(h.Register)...)
	r.POST("/login", chain(h.Login)...)
}

func registerMessageRoutes(r gin.IRoutes, h *handlers.MessageHandler) {
	r.POST("/messages", h.Create)
	r.GET("/messages", h.List)
	r.GET("/messages/:message_id", h.GetByID)
	r.DELETE("/messages/:message_id", h.Delete)
	r.PATCH("/messages/:message_id", h.Update)
	r.GET("/accounts/:account_id/messages", h.ListByAccount)
}
