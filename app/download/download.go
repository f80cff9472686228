// Package download handles the public download endpoint
package download

import (
	"io"
	"net/http"

	"github.com/Saurav-Paul/drop/internal"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Download validates a code+filename pair and streams the blob back.
// Every invalid request looks the same from the outside: 404
func Download(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	code := c.Param("code")
	filename := c.Param("filename")

	rec, err := d.Gate.Authorize(code, filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "File not found or expired",
			"requestID": requestID,
		})
		return
	}

	f, size, err := d.Blobs.Open(code, filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open blob", zap.String("code", code), zap.Error(err))
		return
	}
	defer f.Close()

	// The counter fires now, not when the stream finishes
	d.Gate.RecordDownload(code)

	contentType := detectContentType(f)

	c.DataFromReader(http.StatusOK, size, contentType, f, map[string]string{
		"Content-Disposition": `attachment; filename="` + rec.Filename + `"`,
	})
}

// detectContentType sniffs the first bytes of the blob and rewinds it
func detectContentType(f io.ReadSeeker) string {
	mime, err := mimetype.DetectReader(f)
	if _, serr := f.Seek(0, io.SeekStart); serr != nil || err != nil {
		return "application/octet-stream"
	}

	return mime.String()
}
