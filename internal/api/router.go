package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/tmhire/tmhire-backend/config"
	"github.com/tmhire/tmhire-backend/internal/auth"
	"github.com/tmhire/tmhire-backend/internal/mw"
	"github.com/tmhire/tmhire-backend/internal/service"
	"github.com/tmhire/tmhire-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, scheduler *service.Scheduler, authManager *auth.Manager, webpushOptions *webpush.Options, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, scheduler, authManager, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		authed := api.Group("")
		authed.Use(mw.Auth(authManager))
		{
			authed.GET("/clients", handler.ListClients)
			authed.POST("/clients", handler.CreateClient)
			authed.GET("/clients/:id", handler.GetClient)
			authed.PUT("/clients/:id", handler.UpdateClient)
			authed.DELETE("/clients/:id", handler.DeleteClient)

			authed.GET("/plants", handler.ListPlants)
			authed.POST("/plants", handler.CreatePlant)
			authed.GET("/plants/:id", handler.GetPlant)
			authed.PUT("/plants/:id", handler.UpdatePlant)
			authed.DELETE("/plants/:id", handler.DeletePlant)

			authed.GET("/tms", handler.ListTMs)
			authed.POST("/tms", handler.CreateTM)
			authed.GET("/tms/average-capacity", handler.GetAverageCapacity)
			authed.GET("/tms/:id", handler.GetTM)
			authed.PUT("/tms/:id", handler.UpdateTM)
			authed.DELETE("/tms/:id", handler.DeleteTM)

			authed.POST("/fleet/requirement", handler.ComputeFleetRequirement)

			authed.GET("/schedules", handler.ListSchedules)
			authed.POST("/schedules", handler.CreateSchedule)
			authed.GET("/schedules/:id", handler.GetSchedule)
			authed.PUT("/schedules/:id", handler.UpdateSchedule)
			authed.DELETE("/schedules/:id", handler.DeleteSchedule)
			authed.POST("/schedules/:id/generate", handler.GenerateSchedule)
			authed.POST("/schedules/:id/commit", handler.CommitSchedule)
			authed.POST("/schedules/:id/release", handler.ReleaseSchedule)

			authed.GET("/calendar/:tm_id", caching, handler.GetCalendar)

			authed.PUT("/subscriptions", handler.PutSubscription)
			authed.DELETE("/subscriptions", handler.DeleteSubscription)
		}
	}

	return r
}
