// Package files holds the admin file management endpoints
package files

import (
	"net/http"

	"github.com/Saurav-Paul/drop/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	all, err := d.Files.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list files", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, all)
}
