package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"studyhub/backend/internal/service"
	"studyhub/backend/pkg/response"
)

// TimetableHandler 时间表模块 Handler
type TimetableHandler struct {
	svc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler 实例
func NewTimetableHandler(svc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{svc: svc}
}

// GetTimetable 获取单日课程（含 upcoming/active/completed 状态标注）
// GET /api/v1/timetable?day=Monday（day 缺省为今天）
func (h *TimetableHandler) GetTimetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	day := c.Query("day")

	resp, err := h.svc.GetTimetable(c.Request.Context(), userID, day)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetWeek 获取整周课程（按周一~周日分组）
// GET /api/v1/timetable/week
func (h *TimetableHandler) GetWeek(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetWeek(c.Request.Context(), userID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleTimetableError 统一时间表模块错误映射
func handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableInvalidDay):
		response.BadRequest(c, 15001, "无效的星期参数")
	default:
		response.InternalError(c)
	}
}
