package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"chat-dashboard/cmd/dashboard/trace"
	"chat-dashboard/cmd/internal/logger"
)

const (
	headerRequestID = "X-Request-Id"
	headerSpanID    = "X-Span-Id"
)

// RequestTrace 는 inbound 요청마다 Request ID 를 보장하고 컨텍스트와 응답 헤더에 싣는다.
// 백엔드 호출은 같은 Request ID 아래 span 1,2,3... 으로 기록된다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}

		ctx := trace.WithRequest(req.Context(), requestID)
		c.Request = req.WithContext(ctx)
		c.Writer.Header().Set(headerRequestID, requestID)
		c.Writer.Header().Set(headerSpanID, trace.CurrentSpanID(ctx))

		c.Next()

		fields := logger.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"query":      req.URL.RawQuery,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": requestID,
			"span_id":    trace.CurrentSpanID(c.Request.Context()),
		}
		if clientID := trace.ClientIDFromContext(c.Request.Context()); clientID != "" {
			fields["client_id"] = clientID
		}
		logger.InfoWithFields("completed request", fields)
	}
}
