package middleware

import (
	"fmt"
	"time"

	"marroking/internal/logger"

	"github.com/gin-gonic/gin"
)

func Logger(logger *logger.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		line := fmt.Sprintf("[%s] %s %s %d %s %s",
			param.TimeStamp.Format(time.RFC3339),
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency,
			param.ClientIP,
		)
		if param.ErrorMessage != "" {
			line += " " + param.ErrorMessage
		}
		return line + "\n"
	})
}
