package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolioCMS/internal/api/middleware"
)

func (h *PortfolioHandler) auditLog(c *gin.Context, action string, attrs ...any) {
	username, _ := middleware.AdminUsername(c)
	attrs = append(attrs, slog.String("admin", username))
	middleware.LoggerFromContext(c).Info(action, attrs...)
}

// CreateProject 新增项目。
func (h *PortfolioHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	p, ok := h.provider(c)
	if !ok {
		return
	}

	created := p.AddProject(c.Request.Context(), draft)
	h.auditLog(c, "project created", slog.String("project_id", created.ID))
	c.JSON(http.StatusCreated, created)
}

// UpdateProject 部分更新项目。
func (h *PortfolioHandler) UpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	p, ok := h.provider(c)
	if !ok {
		return
	}

	updated, found := p.UpdateProject(c.Request.Context(), c.Param("id"), patch)
	if !found {
		NotFound(c, "project not found")
		return
	}
	h.auditLog(c, "project updated", slog.String("project_id", updated.ID))
	c.JSON(http.StatusOK, updated)
}

func (h *PortfolioHandler) DeleteProject(c *gin.Context) {
	p, ok := h.provider(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if !p.DeleteProject(c.Request.Context(), id) {
		NotFound(c, "project not found")
		return
	}
	h.auditLog(c, "project deleted", slog.String("project_id", id))
	c.Status(http.StatusNoContent)
}

func (h *PortfolioHandler) CreateSkill(c *gin.Context) {
	var req createSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	p, ok := h.provider(c)
	if !ok {
		return
	}

	created := p.AddSkill(c.Request.Context(), draft)
	h.auditLog(c, "skill created", slog.String("skill_id", created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *PortfolioHandler) UpdateSkill(c *gin.Context) {
	var req updateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	p, ok := h.provider(c)
	if !ok {
		return
	}

	updated, found := p.UpdateSkill(c.Request.Context(), c.Param("id"), patch)
	if !found {
		NotFound(c, "skill not found")
		return
	}
	h.auditLog(c, "skill updated", slog.String("skill_id", updated.ID))
	c.JSON(http.StatusOK, updated)
}

func (h *PortfolioHandler) DeleteSkill(c *gin.Context) {
	p, ok := h.provider(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if !p.DeleteSkill(c.Request.Context(), id) {
		NotFound(c, "skill not found")
		return
	}
	h.auditLog(c, "skill deleted", slog.String("skill_id", id))
	c.Status(http.StatusNoContent)
}

func (h *PortfolioHandler) CreateMyWork(c *gin.Context) {
	var req createMyWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	p, ok := h.provider(c)
	if !ok {
		return
	}

	created := p.AddMyWork(c.Request.Context(), draft)
	h.auditLog(c, "work created", slog.String("work_id", created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *PortfolioHandler) UpdateMyWork(c *gin.Context) {
	var req updateMyWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	p, ok := h.provider(c)
	if !ok {
		return
	}

	updated, found := p.UpdateMyWork(c.Request.Context(), c.Param("id"), patch)
	if !found {
		NotFound(c, "work not found")
		return
	}
	h.auditLog(c, "work updated", slog.String("work_id", updated.ID))
	c.JSON(http.StatusOK, updated)
}

func (h *PortfolioHandler) DeleteMyWork(c *gin.Context) {
	p, ok := h.provider(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if !p.DeleteMyWork(c.Request.Context(), id) {
		NotFound(c, "work not found")
		return
	}
	h.auditLog(c, "work deleted", slog.String("work_id", id))
	c.Status(http.StatusNoContent)
}

// UpdateHero 合并首屏区块。
func (h *PortfolioHandler) UpdateHero(c *gin.Context) {
	var req heroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	p, ok := h.provider(c)
	if !ok {
		return
	}
	p.UpdateHero(c.Request.Context(), req.toPatch())
	h.auditLog(c, "hero updated")
	c.JSON(http.StatusOK, p.Document().Hero)
}

func (h *PortfolioHandler) UpdateContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	p, ok := h.provider(c)
	if !ok {
		return
	}
	p.UpdateContact(c.Request.Context(), req.toPatch())
	h.auditLog(c, "contact updated")
	c.JSON(http.StatusOK, p.Document().Contact)
}

func (h *PortfolioHandler) UpdateAbout(c *gin.Context) {
	var req aboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	p, ok := h.provider(c)
	if !ok {
		return
	}
	p.UpdateAbout(c.Request.Context(), req.toPatch())
	h.auditLog(c, "about updated")
	c.JSON(http.StatusOK, p.Document().About)
}

// Reset 将全部内容恢复为默认值。
func (h *PortfolioHandler) Reset(c *gin.Context) {
	p, ok := h.provider(c)
	if !ok {
		return
	}
	p.Reset(c.Request.Context())
	h.auditLog(c, "portfolio reset to defaults")
	c.JSON(http.StatusOK, p.Document())
}
