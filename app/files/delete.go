package files

import (
	"errors"
	"net/http"

	"github.com/Saurav-Paul/drop/internal"
	"github.com/Saurav-Paul/drop/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Delete removes a file record together with its blob
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No code provided",
			"requestID": requestID,
		})
		return
	}

	err := d.Files.DeleteByCode(code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file record", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	// Blob removal is best effort. A leftover directory is an orphan
	// and the next cleanup pass sweeps it
	if err := d.Blobs.Delete(code); err != nil {
		zap.L().Error("Failed to delete blob", zap.String("code", code), zap.Error(err))
	}

	c.Status(http.StatusNoContent)
}
