package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"portfolioCMS/internal/api/middleware"
	"portfolioCMS/internal/auth"
	"portfolioCMS/internal/site"
)

// Deps 汇总路由所需的依赖。Redis、Queue、Storage 可以为 nil，对应功能降级或返回 503。
type Deps struct {
	Provider              *site.Provider
	Gate                  *auth.Gate
	AuthService           *auth.AuthService
	Redis                 *redis.Client
	Queue                 taskEnqueuer
	Storage               assetStorage
	Logger                *slog.Logger
	StorageKey            string
	ClamdAddr             string
	MaxUploadBytes        int64
	AllowedOrigins        []string
	LoginRateLimitPerHour int
}

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(router *gin.Engine, deps Deps) {
	// 显式传 nil 接口，避免 nil 指针被包装成非 nil 接口。
	var (
		sessions      sessionStore
		revocations   *redis.Client
		notifications notificationFeed
	)
	if deps.Redis != nil {
		sessions = deps.Redis
		revocations = deps.Redis
		notifications = redisFeed{client: deps.Redis}
	}

	portfolioHandler := NewPortfolioHandler()
	authHandler := NewAuthHandler(deps.Gate, deps.AuthService, sessions, deps.Logger, deps.LoginRateLimitPerHour)
	wsHandler := NewWsHandler(notifications, deps.AuthService, deps.Logger, deps.AllowedOrigins)
	assetHandler := NewAssetHandler(deps.Storage, deps.Logger, deps.ClamdAddr, deps.MaxUploadBytes)
	jobsHandler := NewJobsHandler(deps.Queue, deps.StorageKey)

	var authMiddleware gin.HandlerFunc
	if revocations != nil {
		authMiddleware = middleware.AuthMiddleware(deps.AuthService, revocations)
	} else {
		authMiddleware = middleware.AuthMiddleware(deps.AuthService, nil)
	}

	v1 := router.Group("/v1")
	v1.Use(middleware.ProviderMiddleware(deps.Provider))
	{
		portfolio := v1.Group("/portfolio")
		{
			portfolio.GET("", portfolioHandler.GetDocument)
			portfolio.GET("/projects", portfolioHandler.GetProjects)
			portfolio.GET("/skills", portfolioHandler.GetSkills)
			portfolio.GET("/my-works", portfolioHandler.GetMyWorks)
			portfolio.GET("/hero", portfolioHandler.GetHero)
			portfolio.GET("/contact", portfolioHandler.GetContact)
			portfolio.GET("/about", portfolioHandler.GetAbout)
			portfolio.GET("/assets/url", assetHandler.GetAssetURL)
			portfolio.GET("/assets/object", assetHandler.RedirectAsset)
			portfolio.GET("/ws", wsHandler.StreamDocument)
		}

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		// 浏览器无法为 WebSocket 设置 Authorization 头，鉴权在首条消息中完成。
		v1.GET("/admin/ws", wsHandler.HandleNotifications)

		admin := v1.Group("/admin")
		admin.Use(authMiddleware)
		{
			admin.POST("/projects", portfolioHandler.CreateProject)
			admin.PATCH("/projects/:id", portfolioHandler.UpdateProject)
			admin.DELETE("/projects/:id", portfolioHandler.DeleteProject)

			admin.POST("/skills", portfolioHandler.CreateSkill)
			admin.PATCH("/skills/:id", portfolioHandler.UpdateSkill)
			admin.DELETE("/skills/:id", portfolioHandler.DeleteSkill)

			admin.POST("/my-works", portfolioHandler.CreateMyWork)
			admin.PATCH("/my-works/:id", portfolioHandler.UpdateMyWork)
			admin.DELETE("/my-works/:id", portfolioHandler.DeleteMyWork)

			admin.PATCH("/hero", portfolioHandler.UpdateHero)
			admin.PATCH("/contact", portfolioHandler.UpdateContact)
			admin.PATCH("/about", portfolioHandler.UpdateAbout)
			admin.POST("/reset", portfolioHandler.Reset)

			admin.POST("/assets", assetHandler.UploadAsset)
			admin.POST("/exports/pdf", jobsHandler.ExportPDF)
			admin.POST("/snapshots", jobsHandler.CreateSnapshot)
		}
	}
}
