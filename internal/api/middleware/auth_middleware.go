package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"portfolioCMS/internal/auth"
)

const (
	adminUsernameKey = "adminUsername"
	tokenClaimsKey   = "tokenClaims"

	// RevokedTokenKeyPrefix 是已注销访问令牌在 Redis 中的键前缀。
	RevokedTokenKeyPrefix = "auth:access:revoked:"
)

type revocationLookup interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// AuthMiddleware 校验 Bearer 访问令牌，并将管理员信息注入上下文。
// revoked 为 nil 时不检查注销状态。
func AuthMiddleware(authService *auth.AuthService, revoked revocationLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		// 注销状态查不到时拒绝请求，避免已注销的令牌在 Redis 故障期间继续可用。
		if revoked != nil && claims.ID != "" {
			n, err := revoked.Exists(c.Request.Context(), RevokedTokenKeyPrefix+claims.ID).Result()
			if err != nil {
				LoggerFromContext(c).Error("token revocation lookup failed", slog.Any("error", err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication temporarily unavailable"})
				return
			}
			if n > 0 {
				abortUnauthorized(c)
				return
			}
		}

		c.Set(adminUsernameKey, claims.Username)
		c.Set(tokenClaimsKey, claims)
		c.Next()
	}
}

// AdminUsername 返回已认证管理员的用户名。
func AdminUsername(c *gin.Context) (string, bool) {
	value, ok := c.Get(adminUsernameKey)
	if !ok {
		return "", false
	}
	username, ok := value.(string)
	return username, ok && username != ""
}

// TokenClaims 返回当前请求的令牌声明。
func TokenClaims(c *gin.Context) (*auth.TokenClaims, bool) {
	value, ok := c.Get(tokenClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.TokenClaims)
	return claims, ok
}
