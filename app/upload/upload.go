// Package upload handles the public streaming upload endpoint
package upload

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Saurav-Paul/drop/internal"
	"github.com/Saurav-Paul/drop/internal/service"
	"github.com/Saurav-Paul/drop/pkg/auth"
	"github.com/Saurav-Paul/drop/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Upload streams a PUT body into storage and returns the share URL.
// Expiry, download cap and the upload key ride along as headers so the
// body stays a raw byte stream
func Upload(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	filename := c.Param("filename")
	if err := validators.FilenameValidator(filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var maxDownloads *int64
	if v := c.GetHeader("X-Max-Downloads"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "X-Max-Downloads must be a positive integer",
				"requestID": requestID,
			})
			return
		}
		maxDownloads = &n
	}

	res, err := d.Uploader.Save(c.Request.Body, service.UploadRequest{
		Filename:     filename,
		Expires:      c.GetHeader("X-Expires"),
		MaxDownloads: maxDownloads,
		UploadKey:    c.GetHeader("X-Upload-Key"),
		Privileged:   auth.IsAdmin(c),
		BaseURL:      baseURL(c),
	})
	if err != nil {
		var quota *service.QuotaError

		switch {
		case errors.As(err, &quota):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":     quota.Error(),
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "Invalid upload API key",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrCodeSpaceExhausted):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":     "Could not allocate a code. Please try again later",
				"requestID": requestID,
			})

			zap.L().Error("Code space exhausted", zap.String("requestID", requestID))
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to save upload", zap.String("requestID", requestID), zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + c.Request.Host
}
