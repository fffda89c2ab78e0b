package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolioCMS/internal/api/middleware"
	"portfolioCMS/internal/site"
)

// PortfolioHandler 提供作品集内容的公开读取与管理端修改。
type PortfolioHandler struct{}

func NewPortfolioHandler() *PortfolioHandler {
	return &PortfolioHandler{}
}

// provider 取出请求绑定的 Provider；未绑定属于编程错误，直接返回 500。
func (h *PortfolioHandler) provider(c *gin.Context) (*site.Provider, bool) {
	p, err := site.FromContext(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("content provider missing", slog.Any("error", err))
		Internal(c, "content unavailable")
		return nil, false
	}
	return p, true
}

type documentResponse struct {
	Loading  bool `json:"loading"`
	Document any  `json:"document"`
}

// GetDocument 返回完整文档与加载状态。
func (h *PortfolioHandler) GetDocument(c *gin.Context) {
	p, ok := h.provider(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, documentResponse{Loading: p.Loading(), Document: p.Document()})
}

func (h *PortfolioHandler) GetProjects(c *gin.Context) {
	if p, ok := h.provider(c); ok {
		c.JSON(http.StatusOK, p.Document().Projects)
	}
}

func (h *PortfolioHandler) GetSkills(c *gin.Context) {
	if p, ok := h.provider(c); ok {
		c.JSON(http.StatusOK, p.Document().Skills)
	}
}

func (h *PortfolioHandler) GetMyWorks(c *gin.Context) {
	if p, ok := h.provider(c); ok {
		c.JSON(http.StatusOK, p.Document().MyWorks)
	}
}

func (h *PortfolioHandler) GetHero(c *gin.Context) {
	if p, ok := h.provider(c); ok {
		c.JSON(http.StatusOK, p.Document().Hero)
	}
}

func (h *PortfolioHandler) GetContact(c *gin.Context) {
	if p, ok := h.provider(c); ok {
		c.JSON(http.StatusOK, p.Document().Contact)
	}
}

func (h *PortfolioHandler) GetAbout(c *gin.Context) {
	if p, ok := h.provider(c); ok {
		c.JSON(http.StatusOK, p.Document().About)
	}
}
