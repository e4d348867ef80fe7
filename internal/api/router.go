package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Mreoch1/tradesync/internal/analysis"
	"github.com/Mreoch1/tradesync/internal/api/handlers"
	"github.com/Mreoch1/tradesync/internal/api/middleware"
	"github.com/Mreoch1/tradesync/internal/services"
	"github.com/Mreoch1/tradesync/pkg/config"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(
	group *gin.RouterGroup,
	cfg *config.Config,
	logger *logrus.Logger,
	syncService *services.SyncService,
	scheduler *services.ResyncScheduler,
) {
	syncHandler := handlers.NewSyncHandler(syncService, scheduler)
	tradeHandler := handlers.NewTradeHandler(analysis.NewEngine(logger))

	// League sync endpoints; user identity is optional, the provider token
	// travels in its own header.
	leagues := group.Group("/leagues")
	leagues.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		leagues.POST("/:leagueKey/sync", syncHandler.SyncLeague)
		leagues.GET("/:leagueKey/teams", syncHandler.GetTeams)
	}

	group.GET("/sync/status", syncHandler.GetSyncStatus)

	// Trade analysis over already-valued athletes
	group.POST("/trades/analyze", tradeHandler.AnalyzeTrade)
}
