// Package responses holds the envelope every route replies with: success
// responses carry {success, message, data}, error responses carry
// {success:false, error} and the status chosen by the caller.
package responses

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, data any, message string) {
	if message == "" {
		message = "Success"
	}
	c.JSON(200, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Error(c *gin.Context, status int, err string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   err,
	})
}

// AbortError is Error for middleware, stopping the rest of the chain.
func AbortError(c *gin.Context, status int, err string) {
	Error(c, status, err)
	c.Abort()
}
