package middleware

import (
	"net"
	"net/http"
	"os"
	"strings"

	"marroking/internal/logger"

	"github.com/gin-gonic/gin"
)

func Recovery(logger *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if ne, ok := recovered.(*net.OpError); ok {
			if se, ok := ne.Err.(*os.SyscallError); ok {
				msg := strings.ToLower(se.Error())
				if strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer") {
					// The client is gone, nothing left to answer.
					c.Abort()
					return
				}
			}
		}

		logger.Error("panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
