package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/knowledge-sync-api/internal/service"
)

// SyncHandler handles sync endpoints
type SyncHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(services *service.Services, log zerolog.Logger) *SyncHandler {
	return &SyncHandler{
		services: services,
		log:      log.With().Str("handler", "sync").Logger(),
	}
}

// TriggerSync handles POST /v1/sync
// Runs one full resync and reports the outcome with the run's counters.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	result := h.services.Sync.Run(c.Request.Context())
	c.JSON(result.StatusCode, result)
}
