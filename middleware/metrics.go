package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sawahq/sawa/utils"
)

// MetricsMiddleware records request count and latency per route. The
// route template is used as the path label so IDs do not explode the
// cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		utils.ReqCount.WithLabelValues(ctx.Request.Method, path, status).Inc()
		utils.ReqDuration.WithLabelValues(ctx.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
