package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials 表示用户名或密码不匹配。
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword 使用 bcrypt 生成密码哈希。
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPasswordHash 校验密码是否匹配哈希。
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Gate 校验唯一的管理员凭据。它与内容仓库相互独立，仓库本身不做任何鉴权。
type Gate struct {
	username     string
	passwordHash string
}

// NewGate 在构造时对密码做 bcrypt 哈希，之后内存中不再保留明文。
func NewGate(username, password string) (*Gate, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Gate{username: username, passwordHash: hash}, nil
}

// Check 返回凭据是否匹配。
func (g *Gate) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := CheckPasswordHash(password, g.passwordHash)
	return userOK && passOK
}

// Authenticate 与 Check 相同，但以 ErrInvalidCredentials 表示失败。
func (g *Gate) Authenticate(username, password string) error {
	if !g.Check(username, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// Username 返回配置的管理员用户名。
func (g *Gate) Username() string {
	return g.username
}
