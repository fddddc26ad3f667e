package handler

import (
	"studyhub/backend/internal/service"
	"studyhub/backend/internal/widget"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Timetable *TimetableHandler
	Sync      *SyncHandler
	Widget    *WidgetHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, renderer *widget.Renderer) *Handler {
	return &Handler{
		Timetable: NewTimetableHandler(svc.Timetable),
		Sync:      NewSyncHandler(svc.Sync, svc.Reminder, svc.Widget),
		Widget:    NewWidgetHandler(renderer),
		Export:    NewExportHandler(svc.Export),
	}
}
