// Package settings exposes the run-time configurable values
package settings

import (
	"net/http"

	"github.com/Saurav-Paul/drop/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// updateBody uses pointers so only the keys the admin actually sent
// get written
type updateBody struct {
	DefaultExpiry *string `json:"default_expiry"`
	MaxExpiry     *string `json:"max_expiry"`
	MaxFileSize   *string `json:"max_file_size"`
	StorageLimit  *string `json:"storage_limit"`
	UploadAPIKey  *string `json:"upload_api_key"`
}

func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	snap, err := d.Settings.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load settings", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, snap)
}

func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var body updateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed request body",
			"requestID": requestID,
		})
		return
	}

	updates := map[string]string{}

	if body.DefaultExpiry != nil {
		updates["default_expiry"] = *body.DefaultExpiry
	}
	if body.MaxExpiry != nil {
		updates["max_expiry"] = *body.MaxExpiry
	}
	if body.MaxFileSize != nil {
		updates["max_file_size"] = *body.MaxFileSize
	}
	if body.StorageLimit != nil {
		updates["storage_limit"] = *body.StorageLimit
	}
	if body.UploadAPIKey != nil {
		updates["upload_api_key"] = *body.UploadAPIKey
	}

	if len(updates) > 0 {
		if err := d.Settings.SetMany(updates); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to update settings", zap.String("requestID", requestID), zap.Error(err))
			return
		}
	}

	Fetch(c, d)
}
