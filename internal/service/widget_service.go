package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"studyhub/backend/internal/dto"
	"studyhub/backend/internal/model"
	"studyhub/backend/internal/repository"
	"studyhub/backend/internal/widget"
)

// ── WidgetService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - 投影永远是整周全量快照：按周一~周日分桶、桶内按开始时间升序，
//     输出可直接整表覆盖的行集合，从不产生增量。
//   - 空课表输出零行 + 显式"无课"摘要，原生端渲染为明确的空态，
//     而不是一块空白小组件。
//   - 推送对调用方 fire-and-forget：只确认存储写入，不等待重绘。
//   - 字段损坏的课程跳过并告警，不影响其余投影行。
// ─────────────────────────────────────────────────────────────

// WidgetService 小组件投影同步业务接口
type WidgetService interface {
	// Sync 拉取用户整周课程并推送投影（可重复调用）
	Sync(ctx context.Context, userID string) (*dto.WidgetSyncResult, error)
	// SyncSessions 基于已就绪的课程列表推送投影（供编排层复用一次拉取）
	SyncSessions(ctx context.Context, userID string, sessions []model.ClassSession) (*dto.WidgetSyncResult, error)
}

type widgetService struct {
	repo   *repository.Repository
	bridge widget.NativeBridge
	logger *zap.Logger
}

// NewWidgetService 创建 WidgetService 实例
func NewWidgetService(repo *repository.Repository, bridge widget.NativeBridge, logger *zap.Logger) WidgetService {
	return &widgetService{repo: repo, bridge: bridge, logger: logger}
}

// Sync 拉取整周课程并推送投影
func (s *widgetService) Sync(ctx context.Context, userID string) (*dto.WidgetSyncResult, error) {
	// 投影逻辑必须基于未过滤的整周列表
	sessions, err := s.repo.Session.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("拉取课程失败，本次投影同步放弃", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}
	return s.SyncSessions(ctx, userID, sessions)
}

// SyncSessions 构建整周投影并跨桥推送
func (s *widgetService) SyncSessions(ctx context.Context, userID string, sessions []model.ClassSession) (*dto.WidgetSyncResult, error) {
	payload := s.project(sessions)

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化投影载荷失败: %w", err)
	}

	result := &dto.WidgetSyncResult{Rows: len(payload.Rows)}
	if err := s.bridge.PushScheduleData(ctx, userID, raw); err != nil {
		// 推送失败只记录：小组件保持上一次成功同步的数据，下次同步补齐
		s.logger.Warn("投影推送失败，小组件数据暂为旧快照",
			zap.Error(err), zap.String("user_id", userID))
		return result, nil
	}
	result.Pushed = true
	return result, nil
}

// ── 私有辅助方法 ──

// project 将课程列表投影为整周全量载荷
func (s *widgetService) project(sessions []model.ClassSession) *widget.SchedulePayload {
	byDay := make(map[string][]model.ClassSession, len(model.WeekDays))
	for _, sess := range sessions {
		if !model.IsValidDay(sess.DayOfWeek) || sess.SubjectName == "" {
			s.logger.Warn("课程记录损坏，跳过投影",
				zap.String("class_session_id", sess.ClassSessionID),
				zap.String("day_of_week", sess.DayOfWeek),
			)
			continue
		}
		byDay[sess.DayOfWeek] = append(byDay[sess.DayOfWeek], sess)
	}

	payload := &widget.SchedulePayload{Rows: make([]widget.PayloadRow, 0, len(sessions))}
	var summary strings.Builder

	for _, day := range model.WeekDays {
		daySessions := byDay[day]
		if len(daySessions) == 0 {
			continue
		}
		sort.SliceStable(daySessions, func(i, j int) bool {
			return daySessions[i].StartTime < daySessions[j].StartTime
		})

		// 周摘要文本：与移动端小组件格式一致（"Mon:" + "• 课程 (HH:mm)"）
		summary.WriteString("\n" + day[:3] + ":\n")
		for i, sess := range daySessions {
			payload.Rows = append(payload.Rows, widget.PayloadRow{
				Subject:   sess.SubjectName,
				StartTime: clockHHMM(sess.StartTime),
				EndTime:   clockHHMM(sess.EndTime),
				Room:      sess.Room,
				DayOfWeek: day,
			})
			if i > 0 {
				summary.WriteString("\n")
			}
			summary.WriteString(fmt.Sprintf("• %s (%s)", sess.SubjectName, clockHHMM(sess.StartTime)))
		}
		summary.WriteString("\n")
	}

	payload.Summary = strings.TrimSpace(summary.String())
	if payload.Summary == "" {
		payload.Summary = widget.NoClassesSummary
	}
	return payload
}

// clockHHMM 截取 HH:mm（数据库 time 列可能回读为 HH:mm:ss）
func clockHHMM(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
