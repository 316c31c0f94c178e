package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListEnvelope is the wire shape of every list endpoint. TotalCount is the
// size of the full matching set ignoring limit/offset; clients derive page
// counts from it.
type ListEnvelope struct {
	Data       any   `json:"data"`
	TotalCount int64 `json:"totalCount"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func List(c *gin.Context, data any, totalCount int64) {
	c.JSON(http.StatusOK, ListEnvelope{
		Data:       data,
		TotalCount: totalCount,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	body := gin.H{
		"code":    errorCode,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"message": fmt.Sprintf("Method %s not allowed", c.Request.Method),
	})
}
