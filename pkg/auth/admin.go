// Package auth implements the admin capability check
package auth

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// IsAdmin reports whether a request carries valid admin credentials.
// With no credentials configured there is nothing to check against and
// every caller is treated as privileged. This is the single place that
// decides privilege; handlers and services only ever see the boolean
func IsAdmin(c *gin.Context) bool {
	adminUser := viper.GetString("admin.user")
	adminPass := viper.GetString("admin.pass")

	if adminUser == "" || adminPass == "" {
		return true
	}

	user := c.GetHeader("X-Admin-User")
	pass := c.GetHeader("X-Admin-Pass")

	if user == "" || pass == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(adminPass)) == 1

	return userOK && passOK
}
