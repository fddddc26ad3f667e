package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"studyhub/backend/internal/model"
	"studyhub/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestExportService(sessions []model.ClassSession, now time.Time) *exportService {
	return &exportService{
		repo: &repository.Repository{
			Session:        &mockSessionRepo{sessions: sessions},
			WidgetSchedule: newMockWidgetScheduleRepo(),
		},
		logger: zap.NewNop(),
		now:    func() time.Time { return now },
	}
}

// ── ExportICS 测试 ──

func TestExportService_ExportICS_WeeklyRecurring(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC) // 周一
	svc := setupTestExportService([]model.ClassSession{
		{ClassSessionID: "cs-1", UserID: "user-001", SubjectName: "Operating Systems",
			SubjectCode: "CS301", Kind: "theory", Room: "B204",
			DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"},
	}, now)

	buf, filename, err := svc.ExportICS(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("ExportICS 应成功: %v", err)
	}
	if filename != "timetable.ics" {
		t.Errorf("期望文件名=timetable.ics，实际=%s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("应为 iCalendar 格式")
	}
	if !strings.Contains(content, "SUMMARY:Operating Systems") {
		t.Errorf("应含课程名，实际内容:\n%s", content)
	}
	if !strings.Contains(content, "RRULE:FREQ=WEEKLY") {
		t.Error("每门课应带每周循环规则")
	}
	if !strings.Contains(content, "LOCATION:B204") {
		t.Error("应含教室")
	}
}

func TestExportService_ExportICS_SkipsMalformed(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	svc := setupTestExportService([]model.ClassSession{
		{ClassSessionID: "ok", UserID: "user-001", SubjectName: "OS",
			DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"},
		{ClassSessionID: "bad", UserID: "user-001", SubjectName: "Broken",
			DayOfWeek: "Monday", StartTime: "ab:cd", EndTime: "10:00"},
	}, now)

	buf, _, err := svc.ExportICS(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("单条损坏不应使导出失败: %v", err)
	}
	content := buf.String()
	if !strings.Contains(content, "SUMMARY:OS") {
		t.Error("正常课程应被导出")
	}
	if strings.Contains(content, "Broken") {
		t.Error("损坏课程不应出现在导出中")
	}
}

func TestExportService_ExportICS_NoSessions(t *testing.T) {
	svc := setupTestExportService(nil, time.Now())

	_, _, err := svc.ExportICS(context.Background(), "user-001")
	if !errors.Is(err, ErrExportNoSessions) {
		t.Errorf("期望 ErrExportNoSessions，实际: %v", err)
	}
}

// ── ExportXLSX 测试 ──

func TestExportService_ExportXLSX_Success(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	svc := setupTestExportService([]model.ClassSession{
		{ClassSessionID: "cs-1", UserID: "user-001", SubjectName: "OS",
			SubjectCode: "CS301", Kind: "theory", Room: "B204",
			DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"},
		{ClassSessionID: "cs-2", UserID: "user-001", SubjectName: "DBMS",
			Kind: "lab", DayOfWeek: "Friday", StartTime: "14:00", EndTime: "16:00"},
	}, now)

	buf, filename, err := svc.ExportXLSX(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("ExportXLSX 应成功: %v", err)
	}
	if filename != "timetable.xlsx" {
		t.Errorf("期望文件名=timetable.xlsx，实际=%s", filename)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	// xlsx 是 zip 容器，校验魔数
	head := buf.Bytes()[:2]
	if head[0] != 'P' || head[1] != 'K' {
		t.Errorf("xlsx 应为 zip 容器，头两字节=%v", head)
	}
}

func TestExportService_ExportXLSX_NoSessions(t *testing.T) {
	svc := setupTestExportService(nil, time.Now())

	_, _, err := svc.ExportXLSX(context.Background(), "user-001")
	if !errors.Is(err, ErrExportNoSessions) {
		t.Errorf("期望 ErrExportNoSessions，实际: %v", err)
	}
}

func TestExportService_Export_RepoError(t *testing.T) {
	repoErr := errors.New("db down")
	svc := &exportService{
		repo:   &repository.Repository{Session: &mockSessionRepo{err: repoErr}},
		logger: zap.NewNop(),
		now:    time.Now,
	}

	if _, _, err := svc.ExportICS(context.Background(), "user-001"); !errors.Is(err, repoErr) {
		t.Errorf("仓储错误应向上传播，实际: %v", err)
	}
}
