package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Mreoch1/tradesync/internal/api/middleware"
	"github.com/Mreoch1/tradesync/internal/services"
	"github.com/Mreoch1/tradesync/pkg/utils"
)

// SyncHandler exposes the league sync operations.
type SyncHandler struct {
	syncService *services.SyncService
	scheduler   *services.ResyncScheduler
}

func NewSyncHandler(syncService *services.SyncService, scheduler *services.ResyncScheduler) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		scheduler:   scheduler,
	}
}

// SyncLeague runs a full sync for a league and returns fully valued teams.
// POST /leagues/:leagueKey/sync
func (h *SyncHandler) SyncLeague(c *gin.Context) {
	leagueKey := c.Param("leagueKey")
	if leagueKey == "" {
		utils.SendValidationError(c, "league key is required", "")
		return
	}
	accessToken := middleware.ProviderToken(c)
	if accessToken == "" {
		utils.SendUnauthorized(c, "provider access token required")
		return
	}

	teams, err := h.syncService.SyncLeague(c.Request.Context(), leagueKey, accessToken)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrTransport):
			utils.SendBadGateway(c, "provider request failed", err.Error())
		case errors.Is(err, utils.ErrSeasonUnresolved),
			errors.Is(err, utils.ErrTaxonomyUnresolved),
			errors.Is(err, utils.ErrStandingsUnresolved),
			errors.Is(err, utils.ErrStructuralMismatch),
			errors.Is(err, utils.ErrEmptyRoster):
			utils.SendError(c, 422, utils.NewAppError(utils.ErrCodeSyncFailed, "league sync failed", err.Error()))
		default:
			utils.SendInternalError(c, err.Error())
		}
		return
	}

	if h.scheduler != nil {
		h.scheduler.Register(leagueKey, accessToken)
	}

	utils.SendSuccess(c, teams)
}

// GetTeams returns the cached result of the most recent sync.
// GET /leagues/:leagueKey/teams
func (h *SyncHandler) GetTeams(c *gin.Context) {
	leagueKey := c.Param("leagueKey")
	if leagueKey == "" {
		utils.SendValidationError(c, "league key is required", "")
		return
	}

	teams, ok := h.syncService.CachedTeams(c.Request.Context(), leagueKey)
	if !ok {
		utils.SendNotFound(c, "no synced data for league; run a sync first")
		return
	}

	utils.SendSuccess(c, teams)
}

// GetSyncStatus reports the background resync scheduler state.
// GET /sync/status
func (h *SyncHandler) GetSyncStatus(c *gin.Context) {
	if h.scheduler == nil {
		utils.SendSuccess(c, gin.H{"is_running": false})
		return
	}
	utils.SendSuccess(c, h.scheduler.Status())
}
