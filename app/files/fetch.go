package files

import (
	"errors"
	"net/http"

	"github.com/Saurav-Paul/drop/internal"
	"github.com/Saurav-Paul/drop/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No code provided",
			"requestID": requestID,
		})
		return
	}

	rec, err := d.Files.GetByCode(code)
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

		zap.L().Error("Failed to fetch file", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, rec)
}
