package files

import (
	"net/http"

	"github.com/Saurav-Paul/drop/internal"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stats returns aggregate numbers for the dashboard
func Stats(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	all, err := d.Files.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list files for stats", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	var totalStorage, totalDownloads int64
	for _, f := range all {
		totalStorage += f.Size
		totalDownloads += f.DownloadCount
	}

	c.JSON(http.StatusOK, gin.H{
		"total_files":         len(all),
		"total_storage":       totalStorage,
		"total_storage_human": humanize.IBytes(uint64(totalStorage)),
		"total_downloads":     totalDownloads,
	})
}
