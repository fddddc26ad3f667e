package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/backend/config"
	"studyhub/backend/internal/api/handler"
	"studyhub/backend/internal/api/middleware"
	"studyhub/backend/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, verifier *jwt.Verifier, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(verifier))
	{
		// 时间表模块
		timetable := v1.Group("/timetable")
		{
			timetable.GET("", h.Timetable.GetTimetable)
			timetable.GET("/week", h.Timetable.GetWeek)
		}

		// 同步模块（客户端在登录、保存课表、回到前台时调用）
		sync := v1.Group("/sync")
		{
			sync.POST("", h.Sync.SyncAll)
			sync.POST("/reminders", h.Sync.SyncReminders)
			sync.POST("/widget", h.Sync.SyncWidget)
		}

		// 小组件视图模块
		widget := v1.Group("/widget")
		{
			widget.GET("/today", h.Widget.GetToday)
			widget.GET("/next", h.Widget.GetNext)
			widget.GET("/week", h.Widget.GetWeek)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/ics", h.Export.ExportICS)
			export.GET("/xlsx", h.Export.ExportXLSX)
		}
	}

	return r
}
