package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"studyhub/backend/config"
	"studyhub/backend/internal/dto"
	"studyhub/backend/internal/model"
	"studyhub/backend/internal/notify"
	"studyhub/backend/internal/repository"
)

// ── ReminderService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 同步采用"全量重置再重排"：先无条件取消全部已排提醒，再逐课排定。
//     不维护课程到提醒句柄的映射，也不做增量 diff —— 定时服务的状态
//     跨进程重启不可靠，全量失效比补丁更简单也更稳。
//   - 取消失败降级为告警后继续排定（宁可重复提醒，不可静默漏排）。
//   - 单条课程字段损坏或单次排定失败都只影响该课程，绝不中断批次。
//   - 每门课默认只向前看一次上课（occurrences_ahead=1）；下一周的提醒
//     由下一次 sync 负责，这是既定的延迟上界而非正确性缺口。
// ─────────────────────────────────────────────────────────────

// ReminderService 课程提醒同步业务接口
type ReminderService interface {
	// Sync 拉取用户整周课程并同步提醒（可重复调用，幂等）
	Sync(ctx context.Context, userID string) (*dto.ReminderSyncResult, error)
	// SyncSessions 基于已就绪的课程列表同步提醒（供编排层复用一次拉取）
	SyncSessions(ctx context.Context, userID string, sessions []model.ClassSession) *dto.ReminderSyncResult
}

type reminderService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	cfg      *config.ReminderConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewReminderService 创建 ReminderService 实例
func NewReminderService(repo *repository.Repository, notifier notify.Notifier, cfg *config.ReminderConfig, logger *zap.Logger) ReminderService {
	return &reminderService{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Sync 拉取整周课程并同步提醒
func (s *reminderService) Sync(ctx context.Context, userID string) (*dto.ReminderSyncResult, error) {
	// 提醒逻辑必须基于未过滤的整周列表
	sessions, err := s.repo.Session.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("拉取课程失败，本次提醒同步放弃", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}
	return s.SyncSessions(ctx, userID, sessions), nil
}

// SyncSessions 全量重置后逐课排定提醒
func (s *reminderService) SyncSessions(ctx context.Context, userID string, sessions []model.ClassSession) *dto.ReminderSyncResult {
	result := &dto.ReminderSyncResult{ResetOK: true}

	// 1. 无条件全量取消；失败降级继续（接受可能的重复提醒）
	if err := s.notifier.CancelAll(ctx, userID); err != nil {
		result.ResetOK = false
		s.logger.Warn("取消既有提醒失败，继续排定", zap.Error(err), zap.String("user_id", userID))
	}

	now := s.now()
	ahead := s.cfg.OccurrencesAhead
	if ahead < 1 {
		ahead = 1
	}

	for _, sess := range sessions {
		// 2. 必填字段校验：单条损坏跳过并告警
		if err := validateForReminder(sess); err != nil {
			result.Skipped++
			s.logger.Warn("课程记录损坏，跳过提醒排定",
				zap.String("class_session_id", sess.ClassSessionID),
				zap.Error(err),
			)
			continue
		}

		for k := 0; k < ahead; k++ {
			// 3. 解算第 k 次未来上课时刻
			occurrence, err := NthOccurrence(now, sess.DayOfWeek, sess.StartTime, k)
			if err != nil {
				result.Skipped++
				s.logger.Warn("课程记录损坏，跳过提醒排定",
					zap.String("class_session_id", sess.ClassSessionID),
					zap.Error(err),
				)
				break
			}

			// 4. 提前 lead_time 触发；解算保证时刻在未来，此处再防御性复查一次
			fireAt := occurrence.Add(-s.cfg.LeadTime)
			if !fireAt.After(now) {
				continue
			}

			title := fmt.Sprintf("Upcoming: %s", sess.SubjectName)
			body := reminderBody(sess, s.cfg.LeadTime)
			if _, err := s.notifier.ScheduleAt(ctx, userID, fireAt, title, body); err != nil {
				// 单条排定失败不中断批次
				s.logger.Warn("排定提醒失败",
					zap.Error(err),
					zap.String("class_session_id", sess.ClassSessionID),
					zap.Time("fire_at", fireAt),
				)
				continue
			}
			result.Scheduled++
		}
	}

	s.logger.Info("提醒同步完成",
		zap.String("user_id", userID),
		zap.Int("scheduled", result.Scheduled),
		zap.Int("skipped", result.Skipped),
		zap.Bool("reset_ok", result.ResetOK),
	)
	return result
}

// ── 私有辅助方法 ──

// validateForReminder 提醒排定所需的必填字段校验
func validateForReminder(sess model.ClassSession) error {
	if sess.SubjectName == "" {
		return fmt.Errorf("缺少课程名称")
	}
	if sess.StartTime == "" {
		return fmt.Errorf("缺少开始时间")
	}
	if _, err := parseClock(sess.StartTime); err != nil {
		return err
	}
	if _, err := parseDay(sess.DayOfWeek); err != nil {
		return err
	}
	return nil
}

// reminderBody 提醒正文：教室 + 提前量
func reminderBody(sess model.ClassSession, lead time.Duration) string {
	mins := int(lead.Minutes())
	if sess.Room != "" {
		return fmt.Sprintf("Starts in %d min · Room %s", mins, sess.Room)
	}
	return fmt.Sprintf("Starts in %d min", mins)
}
