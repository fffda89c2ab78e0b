package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTypeAccess = "access"

// AuthService 负责签发与校验管理员会话令牌。
type AuthService struct {
	secret         []byte
	accessTokenTTL time.Duration
	now            func() time.Time
}

// TokenClaims 表示 JWT 中的业务字段，便于中间件读取会话信息。
type TokenClaims struct {
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// IssuedToken 是登录成功后返回给调用方的令牌。
type IssuedToken struct {
	AccessToken string
	TokenID     string
	ExpiresAt   time.Time
}

// NewAuthService 使用 HS256 密钥构造服务实例。
func NewAuthService(secret []byte, accessTTL time.Duration) (*AuthService, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	if accessTTL <= 0 {
		return nil, errors.New("access token ttl must be positive")
	}
	return &AuthService{
		secret:         secret,
		accessTokenTTL: accessTTL,
		now:            time.Now,
	}, nil
}

// RandomSecret 生成一次性的签名密钥；进程重启后旧令牌全部失效。
func RandomSecret() ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate jwt secret: %w", err)
	}
	return []byte(hex.EncodeToString(buf)), nil
}

// GenerateAccessToken 为管理员签发访问令牌，jti 用于注销。
func (s *AuthService) GenerateAccessToken(username string) (IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTokenTTL)
	claims := TokenClaims{
		Username:  username,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return IssuedToken{
		AccessToken: signed,
		TokenID:     claims.ID,
		ExpiresAt:   expiresAt,
	}, nil
}

// ValidateToken 解析并验证 JWT。
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.TokenType != tokenTypeAccess {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// AccessTokenTTL 暴露访问令牌有效期。
func (s *AuthService) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}
