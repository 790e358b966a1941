package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/blogsvc/domain"
)

// MaintenanceKey is the settings row the gate reads.
const MaintenanceKey = "maintenance"

// Maintenance rejects requests while the maintenance setting is "true".
// A missing row means the gate was never configured and traffic passes.
func Maintenance(settings domain.SettingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		setting, err := settings.Get(c.Request.Context(), MaintenanceKey)
		if err != nil {
			if errors.Is(err, domain.ErrModelNotFound) {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"message": "server under maintenance",
				"code":    "Error_Maintenance",
			})
			return
		}
		if setting.Value == "true" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"message": "server under maintenance",
				"code":    "Error_Maintenance",
			})
			return
		}
		c.Next()
	}
}
