package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondSuccess writes {success: true} plus any extra top level fields.
func RespondSuccess(c *gin.Context, code int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(code, body)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   message,
	})
}
