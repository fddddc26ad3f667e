package service

import (
	"go.uber.org/zap"

	"studyhub/backend/config"
	"studyhub/backend/internal/notify"
	"studyhub/backend/internal/repository"
	"studyhub/backend/internal/widget"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Timetable TimetableService
	Reminder  ReminderService
	Widget    WidgetService
	Sync      SyncService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	notifier notify.Notifier,
	bridge widget.NativeBridge,
	logger *zap.Logger,
) *Service {
	reminderSvc := NewReminderService(repo, notifier, &cfg.Reminder, logger)
	widgetSvc := NewWidgetService(repo, bridge, logger)

	return &Service{
		Timetable: NewTimetableService(repo, logger),
		Reminder:  reminderSvc,
		Widget:    widgetSvc,
		Sync:      NewSyncService(repo, reminderSvc, widgetSvc, &cfg.Reminder, logger),
		Export:    NewExportService(repo, logger),
	}
}
