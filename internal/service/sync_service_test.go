package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"studyhub/backend/config"
	"studyhub/backend/internal/model"
	"studyhub/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestSyncService(sessions []model.ClassSession, reminderEnabled bool) (*syncService, *mockSessionRepo, *mockNotifier, *mockBridge) {
	sessionRepo := &mockSessionRepo{sessions: sessions}
	repo := &repository.Repository{
		Session:        sessionRepo,
		WidgetSchedule: newMockWidgetScheduleRepo(),
	}
	cfg := &config.ReminderConfig{
		Enabled:          reminderEnabled,
		LeadTime:         10 * time.Minute,
		OccurrencesAhead: 1,
	}
	now := func() time.Time { return time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC) }

	notifier := &mockNotifier{}
	bridge := &mockBridge{}

	reminderSvc := &reminderService{repo: repo, notifier: notifier, cfg: cfg, logger: zap.NewNop(), now: now}
	widgetSvc := &widgetService{repo: repo, bridge: bridge, logger: zap.NewNop()}
	svc := &syncService{repo: repo, reminder: reminderSvc, widget: widgetSvc, cfg: cfg, logger: zap.NewNop()}

	return svc, sessionRepo, notifier, bridge
}

// ── SyncAll 测试 ──

func TestSyncService_SyncAll_BothSides(t *testing.T) {
	sessions := []model.ClassSession{
		sessionFixture("a", "Monday", "09:00", "10:00"),
		sessionFixture("b", "Friday", "14:00", "15:00"),
	}
	svc, sessionRepo, notifier, bridge := setupTestSyncService(sessions, true)

	resp, err := svc.SyncAll(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("SyncAll 应成功: %v", err)
	}

	if resp.Reminders == nil || resp.Reminders.Scheduled != 2 {
		t.Errorf("期望提醒侧 scheduled=2，实际=%+v", resp.Reminders)
	}
	if resp.Widget == nil || resp.Widget.Rows != 2 || !resp.Widget.Pushed {
		t.Errorf("期望投影侧 rows=2 pushed=true，实际=%+v", resp.Widget)
	}
	if len(notifier.scheduled) != 2 {
		t.Errorf("提醒队列应有2条，实际=%d", len(notifier.scheduled))
	}
	if bridge.pushCalls != 1 {
		t.Errorf("投影应推送1次，实际=%d", bridge.pushCalls)
	}

	// 编排层只拉取一次课程列表，两侧共用
	if sessionRepo.calls != 1 {
		t.Errorf("课程列表应只拉取1次，实际=%d", sessionRepo.calls)
	}
}

func TestSyncService_SyncAll_RemindersDisabled(t *testing.T) {
	sessions := []model.ClassSession{
		sessionFixture("a", "Monday", "09:00", "10:00"),
	}
	svc, _, notifier, _ := setupTestSyncService(sessions, false)

	resp, err := svc.SyncAll(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("SyncAll 应成功: %v", err)
	}
	if resp.Reminders != nil {
		t.Errorf("提醒停用时不应有提醒侧结果，实际=%+v", resp.Reminders)
	}
	if len(notifier.scheduled) != 0 {
		t.Errorf("提醒停用时不应排定提醒，实际=%d", len(notifier.scheduled))
	}
	if resp.Widget == nil || resp.Widget.Rows != 1 {
		t.Errorf("投影侧不受提醒开关影响，实际=%+v", resp.Widget)
	}
}

func TestSyncService_SyncAll_FetchErrorPropagates(t *testing.T) {
	svc, sessionRepo, _, _ := setupTestSyncService(nil, true)
	repoErr := errors.New("db down")
	sessionRepo.err = repoErr

	if _, err := svc.SyncAll(context.Background(), "user-001"); !errors.Is(err, repoErr) {
		t.Errorf("拉取失败应向上传播，实际: %v", err)
	}
}

func TestSyncService_SyncAll_WidgetFailureDegrades(t *testing.T) {
	// 投影侧序列化/推送层面的失败不拖垮提醒侧结果；
	// 推送失败本身在 WidgetService 内已降级，这里验证编排层行为
	sessions := []model.ClassSession{
		sessionFixture("a", "Monday", "09:00", "10:00"),
	}
	svc, _, _, bridge := setupTestSyncService(sessions, true)
	bridge.pushErr = errors.New("bridge down")

	resp, err := svc.SyncAll(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("投影失败不应使整体同步失败: %v", err)
	}
	if resp.Reminders == nil || resp.Reminders.Scheduled != 1 {
		t.Errorf("提醒侧不受投影失败影响，实际=%+v", resp.Reminders)
	}
	if resp.Widget == nil || resp.Widget.Pushed {
		t.Errorf("期望投影侧 pushed=false，实际=%+v", resp.Widget)
	}
}
