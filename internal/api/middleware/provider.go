package middleware

import (
	"github.com/gin-gonic/gin"

	"portfolioCMS/internal/site"
)

// ProviderMiddleware 将内容 Provider 绑定到请求的 context。
func ProviderMiddleware(p *site.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(site.WithProvider(c.Request.Context(), p))
		c.Next()
	}
}
