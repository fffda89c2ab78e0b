package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorBody 是全部错误响应的统一结构。
type errorBody struct {
	Error string `json:"error"`
}

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, errorBody{Error: msg})
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "unauthorized"})
}

func Unauthorized(c *gin.Context)           { Error(c, http.StatusUnauthorized, "unauthorized") }
func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func Forbidden(c *gin.Context, msg string)  { Error(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

// Unavailable 用于依赖未配置（Redis、对象存储）的降级响应。
func Unavailable(c *gin.Context, msg string) { Error(c, http.StatusServiceUnavailable, msg) }

func TooManyRequests(c *gin.Context) { Error(c, http.StatusTooManyRequests, "rate limit exceeded") }
