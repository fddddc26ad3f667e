package widget

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
)

// ── StoreBridge 测试 ──

func marshalPayload(t *testing.T, p *SchedulePayload) []byte {
	t.Helper()
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("序列化载荷失败: %v", err)
	}
	return raw
}

func TestStoreBridge_PushScheduleData_FullReplace(t *testing.T) {
	repo := newMockWidgetRepo()
	bridge := NewStoreBridge(repo, nil, zap.NewNop())

	first := &SchedulePayload{
		Rows: []PayloadRow{
			{Subject: "OS", StartTime: "09:00", EndTime: "10:00", DayOfWeek: "Monday"},
			{Subject: "DBMS", StartTime: "11:00", EndTime: "12:00", DayOfWeek: "Tuesday"},
		},
	}
	if err := bridge.PushScheduleData(context.Background(), "user-001", marshalPayload(t, first)); err != nil {
		t.Fatalf("第一次推送应成功: %v", err)
	}

	// 第二次推送更小的快照：旧行必须被完整替换
	second := &SchedulePayload{
		Rows: []PayloadRow{
			{Subject: "OS", StartTime: "09:00", EndTime: "10:00", DayOfWeek: "Monday"},
		},
	}
	if err := bridge.PushScheduleData(context.Background(), "user-001", marshalPayload(t, second)); err != nil {
		t.Fatalf("第二次推送应成功: %v", err)
	}

	stored := repo.rows["user-001"]
	if len(stored) != 1 {
		t.Fatalf("整表替换后期望1行，实际=%d", len(stored))
	}
	if stored[0].Subject != "OS" || stored[0].UserID != "user-001" {
		t.Errorf("存储行字段不符，实际=%+v", stored[0])
	}
}

func TestStoreBridge_PushScheduleData_EmptySnapshot(t *testing.T) {
	repo := newMockWidgetRepo()
	bridge := NewStoreBridge(repo, nil, zap.NewNop())

	// 先写入数据再推空快照：表应被清空而非保留旧行
	seed := &SchedulePayload{
		Rows: []PayloadRow{{Subject: "OS", StartTime: "09:00", EndTime: "10:00", DayOfWeek: "Monday"}},
	}
	if err := bridge.PushScheduleData(context.Background(), "user-001", marshalPayload(t, seed)); err != nil {
		t.Fatalf("推送应成功: %v", err)
	}

	empty := &SchedulePayload{Summary: NoClassesSummary}
	if err := bridge.PushScheduleData(context.Background(), "user-001", marshalPayload(t, empty)); err != nil {
		t.Fatalf("空快照推送应成功: %v", err)
	}
	if len(repo.rows["user-001"]) != 0 {
		t.Errorf("空快照应清空投影表，实际=%d行", len(repo.rows["user-001"]))
	}
}

func TestStoreBridge_PushScheduleData_BadPayload(t *testing.T) {
	repo := newMockWidgetRepo()
	bridge := NewStoreBridge(repo, nil, zap.NewNop())

	if err := bridge.PushScheduleData(context.Background(), "user-001", []byte("{not json")); err == nil {
		t.Error("损坏的载荷应返回错误")
	}
	if len(repo.replaceLogs) != 0 {
		t.Error("损坏的载荷不应触发落库")
	}
}

func TestStoreBridge_PushScheduleData_StoreError(t *testing.T) {
	repo := newMockWidgetRepo()
	repo.replaceErr = errors.New("db down")
	bridge := NewStoreBridge(repo, nil, zap.NewNop())

	payload := &SchedulePayload{
		Rows: []PayloadRow{{Subject: "OS", StartTime: "09:00", EndTime: "10:00", DayOfWeek: "Monday"}},
	}
	if err := bridge.PushScheduleData(context.Background(), "user-001", marshalPayload(t, payload)); err == nil {
		t.Error("落库失败应返回错误")
	}
}
