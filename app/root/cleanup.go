package root

import (
	"net/http"

	"github.com/Saurav-Paul/drop/internal"

	"github.com/gin-gonic/gin"
)

// Cleanup triggers an immediate cleanup pass instead of waiting for
// the next scheduled one
func Cleanup(c *gin.Context, d *internal.Deps) {
	c.JSON(http.StatusOK, gin.H{
		"removed": d.Cleaner.Run(),
	})
}
