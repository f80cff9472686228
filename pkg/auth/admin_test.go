package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ctxWithHeaders(headers map[string]string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}

	return c
}

func TestIsAdmin(t *testing.T) {
	viper.Set("admin.user", "root")
	viper.Set("admin.pass", "hunter2")
	t.Cleanup(func() {
		viper.Set("admin.user", "")
		viper.Set("admin.pass", "")
	})

	assert.True(t, IsAdmin(ctxWithHeaders(map[string]string{
		"X-Admin-User": "root",
		"X-Admin-Pass": "hunter2",
	})))

	assert.False(t, IsAdmin(ctxWithHeaders(map[string]string{
		"X-Admin-User": "root",
		"X-Admin-Pass": "wrong",
	})))

	assert.False(t, IsAdmin(ctxWithHeaders(nil)))
}

func TestIsAdminWithoutConfiguredCredentials(t *testing.T) {
	viper.Set("admin.user", "")
	viper.Set("admin.pass", "")

	// No credentials configured means everyone is privileged
	assert.True(t, IsAdmin(ctxWithHeaders(nil)))
}
