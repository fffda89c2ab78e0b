package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"portfolioCMS/internal/api/middleware"
	"portfolioCMS/internal/auth"
)

// sessionStore 是认证处理器用到的 Redis 子集。
type sessionStore interface {
	redisRateCounter
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// AuthHandler 处理管理员登录与退出。
type AuthHandler struct {
	gate                  *auth.Gate
	authService           *auth.AuthService
	redis                 sessionStore
	logger                *slog.Logger
	loginRateLimitPerHour int
	now                   func() time.Time
}

// NewAuthHandler 构造认证处理器。redisClient 为 nil 时不做限流与注销。
func NewAuthHandler(gate *auth.Gate, authService *auth.AuthService, redisClient sessionStore, logger *slog.Logger, loginRateLimitPerHour int) *AuthHandler {
	return &AuthHandler{
		gate:                  gate,
		authService:           authService,
		redis:                 redisClient,
		logger:                logger,
		loginRateLimitPerHour: loginRateLimitPerHour,
		now:                   time.Now,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login 校验凭据并返回访问令牌。
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("username", req.Username))

	// 速率限制：每 IP+用户名 每小时若干次
	if h.redis != nil && h.loginRateLimitPerHour > 0 {
		count, err := incrWithTTL(ctx, h.redis, loginRateKey(c.ClientIP(), req.Username, h.now()), time.Hour)
		if err != nil {
			logger.Warn("login rate counter failed", slog.Any("error", err))
			count = 0
		}
		if count > int64(h.loginRateLimitPerHour) {
			TooManyRequests(c)
			return
		}
	}

	if err := h.gate.Authenticate(req.Username, req.Password); err != nil {
		logger.Info("login failed: invalid credentials")
		Unauthorized(c)
		return
	}

	issued, err := h.authService.GenerateAccessToken(h.gate.Username())
	if err != nil {
		logger.Error("generate access token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("admin logged in")
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: issued.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.authService.AccessTokenTTL().Seconds()),
	})
}

// Logout 注销当前访问令牌。未配置 Redis 时令牌只能等待自然过期。
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.TokenClaims(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	logger := h.loggerFromContext(c)

	if h.redis == nil || claims.ID == "" {
		logger.Info("logout without revocation store")
		c.Status(http.StatusNoContent)
		return
	}

	ttl := time.Second
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Time.Sub(h.now()); remaining > ttl {
			ttl = remaining
		}
	}
	key := middleware.RevokedTokenKeyPrefix + claims.ID
	if err := h.redis.Set(c.Request.Context(), key, "revoked", ttl).Err(); err != nil {
		logger.Error("logout revoke token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("admin logged out", slog.String("jti", claims.ID))
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}
