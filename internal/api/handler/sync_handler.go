package handler

import (
	"github.com/gin-gonic/gin"

	"studyhub/backend/internal/service"
	"studyhub/backend/pkg/response"
)

// SyncHandler 同步模块 Handler
// 对应客户端的触发点：登录完成、时间表保存、应用回到前台
type SyncHandler struct {
	syncSvc     service.SyncService
	reminderSvc service.ReminderService
	widgetSvc   service.WidgetService
}

// NewSyncHandler 创建 SyncHandler 实例
func NewSyncHandler(syncSvc service.SyncService, reminderSvc service.ReminderService, widgetSvc service.WidgetService) *SyncHandler {
	return &SyncHandler{
		syncSvc:     syncSvc,
		reminderSvc: reminderSvc,
		widgetSvc:   widgetSvc,
	}
}

// SyncAll 全量同步：提醒 + 小组件投影
// POST /api/v1/sync
func (h *SyncHandler) SyncAll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.syncSvc.SyncAll(c.Request.Context(), userID)
	if err != nil {
		// 仅"课程列表都拿不到"会走到这里；两侧的部分失败在响应体中逐侧报告
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// SyncReminders 仅同步提醒
// POST /api/v1/sync/reminders
func (h *SyncHandler) SyncReminders(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.reminderSvc.Sync(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// SyncWidget 仅同步小组件投影
// POST /api/v1/sync/widget
func (h *SyncHandler) SyncWidget(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.widgetSvc.Sync(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}
