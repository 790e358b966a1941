package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/http/middleware"
)

// SystemHandlers handles the admin maintenance toggle and user listing.
type SystemHandlers struct {
	settings domain.SettingRepository
	userRepo domain.UserRepository
}

// NewSystemHandlers creates new system handlers.
func NewSystemHandlers(settings domain.SettingRepository, userRepo domain.UserRepository) *SystemHandlers {
	return &SystemHandlers{
		settings: settings,
		userRepo: userRepo,
	}
}

// MaintenanceRequest toggles the maintenance gate.
type MaintenanceRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetMaintenance handles POST /admin/maintenance.
func (h *SystemHandlers) SetMaintenance(c *gin.Context) {
	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	value := strconv.FormatBool(*req.Enabled)
	if err := h.settings.Upsert(c.Request.Context(), middleware.MaintenanceKey, value); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "maintenance " + value})
}

// ListUsers handles GET /admin/users with page/limit pagination.
func (h *SystemHandlers) ListUsers(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	users, err := h.userRepo.List(c.Request.Context(), (page-1)*limit, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "currentPage": page})
}
