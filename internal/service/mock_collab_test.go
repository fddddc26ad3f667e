package service

import (
	"context"
	"time"

	"studyhub/backend/internal/model"
)

// ═══════════════════════════════════════════════════════════
// Mock 协作方（课程仓储 / 提醒服务 / 原生桥）
// ═══════════════════════════════════════════════════════════

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions []model.ClassSession
	err      error
	calls    int // ListByUser 调用次数（验证编排层只拉取一次）
}

func (m *mockSessionRepo) ListByUser(_ context.Context, userID string) ([]model.ClassSession, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var result []model.ClassSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) ListByUserAndDay(_ context.Context, userID, day string) ([]model.ClassSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.ClassSession
	for _, s := range m.sessions {
		if s.UserID == userID && s.DayOfWeek == day {
			result = append(result, s)
		}
	}
	return result, nil
}

// ── Mock WidgetScheduleRepository ──

type mockWidgetScheduleRepo struct {
	rows map[string][]model.WidgetScheduleRow
	err  error
}

func newMockWidgetScheduleRepo() *mockWidgetScheduleRepo {
	return &mockWidgetScheduleRepo{rows: make(map[string][]model.WidgetScheduleRow)}
}

func (m *mockWidgetScheduleRepo) ReplaceAll(_ context.Context, userID string, rows []model.WidgetScheduleRow) error {
	if m.err != nil {
		return m.err
	}
	m.rows[userID] = rows
	return nil
}

func (m *mockWidgetScheduleRepo) ListByUserAndDay(_ context.Context, userID, day string) ([]model.WidgetScheduleRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.WidgetScheduleRow
	for _, r := range m.rows[userID] {
		if r.DayOfWeek == day {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockWidgetScheduleRepo) ListByUser(_ context.Context, userID string) ([]model.WidgetScheduleRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows[userID], nil
}

func (m *mockWidgetScheduleRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.rows[userID])), nil
}

// ── Mock Notifier ──

type scheduledCall struct {
	userID string
	fireAt time.Time
	title  string
	body   string
}

type mockNotifier struct {
	scheduled   []scheduledCall
	cancelCalls int
	cancelErr   error
	scheduleErr error
}

func (m *mockNotifier) CancelAll(_ context.Context, _ string) error {
	m.cancelCalls++
	if m.cancelErr != nil {
		return m.cancelErr
	}
	// 全量重置：清空已排定记录
	m.scheduled = nil
	return nil
}

func (m *mockNotifier) ScheduleAt(_ context.Context, userID string, fireAt time.Time, title, body string) (string, error) {
	if m.scheduleErr != nil {
		return "", m.scheduleErr
	}
	m.scheduled = append(m.scheduled, scheduledCall{userID: userID, fireAt: fireAt, title: title, body: body})
	return "reminder-" + title, nil
}

func (m *mockNotifier) ScheduleImmediate(_ context.Context, userID string, title, body string) (string, error) {
	if m.scheduleErr != nil {
		return "", m.scheduleErr
	}
	m.scheduled = append(m.scheduled, scheduledCall{userID: userID, title: title, body: body})
	return "reminder-" + title, nil
}

// ── Mock NativeBridge ──

type mockBridge struct {
	lastUserID  string
	lastPayload []byte
	pushCalls   int
	pushErr     error
}

func (m *mockBridge) PushScheduleData(_ context.Context, userID string, payload []byte) error {
	m.pushCalls++
	if m.pushErr != nil {
		return m.pushErr
	}
	m.lastUserID = userID
	m.lastPayload = payload
	return nil
}
