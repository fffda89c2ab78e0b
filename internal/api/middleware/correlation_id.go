package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	correlationIDKey = "correlationID"

	// CorrelationIDHeader 是请求与响应中携带关联 ID 的头。
	CorrelationIDHeader = "X-Correlation-ID"

	// 关联 ID 会写入快照与任务载荷，过长的外部值直接丢弃。
	maxCorrelationIDLen = 64
)

// CorrelationIDMiddleware 沿用客户端传入的关联 ID，缺失或不合法时生成新的。
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if !validCorrelationID(id) {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Header(CorrelationIDHeader, id)
		c.Next()
	}
}

func validCorrelationID(id string) bool {
	if id == "" || len(id) > maxCorrelationIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// GetCorrelationID 返回当前请求的关联 ID。
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(correlationIDKey)
}
