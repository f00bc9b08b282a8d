package controller

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"beancatalog/service"
)

// AdminTokenHeader carries the admin token on /admin requests
const AdminTokenHeader = "X-Admin-Token"

// SyncController handles catalog synchronization requests
type SyncController struct {
	syncService service.SyncServiceInterface
	adminToken  string
}

// NewSyncController creates a new SyncController.
// With an empty adminToken only loopback callers are accepted.
func NewSyncController(syncService service.SyncServiceInterface, adminToken string) *SyncController {
	return &SyncController{syncService: syncService, adminToken: adminToken}
}

func (c *SyncController) authorized(r *http.Request) bool {
	if c.adminToken != "" {
		got := r.Header.Get(AdminTokenHeader)
		return subtle.ConstantTimeCompare([]byte(got), []byte(c.adminToken)) == 1
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return false
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// SyncCatalog handles POST /admin/sync
// Refetches the catalog and warms the image cache
func (c *SyncController) SyncCatalog(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !c.authorized(r) {
		log.Warn().Str("remoteAddr", r.RemoteAddr).Msg("❌ Sync request rejected")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	log.Info().Msg("📥 Sync request received")

	stats, err := c.syncService.SyncCatalog(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ Sync failed")
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrDataUnavailable) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}

	response := map[string]any{
		"status": "success",
		"total":  stats.Total,
		"loaded": stats.Loaded,
		"failed": stats.Failed,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("❌ Failed to encode response")
		return
	}

	log.Info().Int("loaded", stats.Loaded).Int("total", stats.Total).Msg("✅ Sync request completed")
}
