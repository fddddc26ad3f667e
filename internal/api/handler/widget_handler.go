package handler

import (
	"github.com/gin-gonic/gin"

	"studyhub/backend/internal/widget"
	"studyhub/backend/pkg/response"
)

// WidgetHandler 小组件视图 Handler
// 直接读投影表渲染，不经过主应用侧服务（对应原生小组件的离线渲染路径）
type WidgetHandler struct {
	renderer *widget.Renderer
}

// NewWidgetHandler 创建 WidgetHandler 实例
func NewWidgetHandler(renderer *widget.Renderer) *WidgetHandler {
	return &WidgetHandler{renderer: renderer}
}

// GetToday 今日课程视图（含进行中高亮）
// GET /api/v1/widget/today
func (h *WidgetHandler) GetToday(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	view, err := h.renderer.RenderToday(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, view)
}

// GetNext "下一节课"紧凑视图
// GET /api/v1/widget/next
func (h *WidgetHandler) GetNext(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	view, err := h.renderer.RenderNext(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, view)
}

// GetWeek 整周课程视图
// GET /api/v1/widget/week
func (h *WidgetHandler) GetWeek(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	view, err := h.renderer.RenderWeek(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, view)
}
