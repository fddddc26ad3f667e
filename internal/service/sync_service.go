package service

import (
	"context"

	"go.uber.org/zap"

	"studyhub/backend/config"
	"studyhub/backend/internal/dto"
	"studyhub/backend/internal/repository"
)

// ── SyncService 编排 ────────────────────────────────────────
//
// 设计说明：
//   - 一次拉取未过滤的整周课程，提醒同步与投影同步各自独立消费同一份
//     列表；任一侧失败只降级该侧，不影响另一侧。
//   - 并发触发（快速重进前台等）不做去抖或串行化：两侧均为"全量重置
//     再重建"，后完成者覆盖先完成者即为正确结果。
//   - 任一侧部分成功时不向调用方返回 5xx，结果在响应体中逐侧报告。
// ─────────────────────────────────────────────────────────────

// SyncService 同步编排业务接口
type SyncService interface {
	// SyncAll 拉取一次整周课程，依次驱动提醒同步与投影同步
	SyncAll(ctx context.Context, userID string) (*dto.SyncResponse, error)
}

type syncService struct {
	repo     *repository.Repository
	reminder ReminderService
	widget   WidgetService
	cfg      *config.ReminderConfig
	logger   *zap.Logger
}

// NewSyncService 创建 SyncService 实例
func NewSyncService(repo *repository.Repository, reminder ReminderService, widgetSvc WidgetService, cfg *config.ReminderConfig, logger *zap.Logger) SyncService {
	return &syncService{
		repo:     repo,
		reminder: reminder,
		widget:   widgetSvc,
		cfg:      cfg,
		logger:   logger,
	}
}

// SyncAll 全量同步：一次拉取，两侧独立消费
func (s *syncService) SyncAll(ctx context.Context, userID string) (*dto.SyncResponse, error) {
	sessions, err := s.repo.Session.ListByUser(ctx, userID)
	if err != nil {
		// 列表都拿不到时两侧均无事可做，这是唯一向上传播的失败
		s.logger.Error("拉取课程失败，本次同步放弃", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	resp := &dto.SyncResponse{}

	if s.cfg.Enabled {
		resp.Reminders = s.reminder.SyncSessions(ctx, userID, sessions)
	}

	widgetResult, err := s.widget.SyncSessions(ctx, userID, sessions)
	if err != nil {
		// 投影侧失败已在服务内记录；此处仅降级，不拖垮提醒侧的结果
		s.logger.Warn("投影同步失败", zap.Error(err), zap.String("user_id", userID))
	} else {
		resp.Widget = widgetResult
	}

	return resp, nil
}
