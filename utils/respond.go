// utils/respond.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError sends a uniform JSON error payload.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
