package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// SuccessWithWarnings reports an operation that completed but whose
// best-effort cleanup steps partially failed. Callers can tell "nothing
// happened" from "the record changed but cleanup was incomplete".
func SuccessWithWarnings(c *gin.Context, statusCode int, data interface{}, warnings []string) {
	if len(warnings) == 0 {
		Success(c, statusCode, data)
		return
	}
	c.JSON(statusCode, gin.H{
		"success":  true,
		"data":     data,
		"warnings": warnings,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
