package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"studyhub/backend/internal/model"
	"studyhub/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSessions   = errors.New("暂无课程可导出")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 课表导出业务接口
//
// 设计说明：
//   - ICS：每门课一个 VEVENT，DTSTART 锚定在下一次上课时刻，
//     RRULE FREQ=WEEKLY 表达每周循环；可直接订阅进日历应用。
//   - XLSX：整周平铺表格，按天 + 开始时间排序。
//   - 字段损坏的课程跳过并告警，与提醒/投影同一隔离策略。
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response。
type ExportService interface {
	// ExportICS 导出周循环课表为 iCalendar
	ExportICS(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportXLSX 导出周课表为 Excel
	ExportXLSX(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ExportICS 导出周循环课表为 iCalendar
func (s *exportService) ExportICS(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	sessions, err := s.fetchValid(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for _, sess := range sessions {
		start, err := NextOccurrence(now, sess.DayOfWeek, sess.StartTime)
		if err != nil {
			// fetchValid 已过滤，此处仅防御
			continue
		}
		startMin, _ := parseClock(sess.StartTime)
		endMin, err := parseClock(sess.EndTime)
		if err != nil || endMin <= startMin {
			s.logger.Warn("课程结束时间损坏，跳过导出",
				zap.String("class_session_id", sess.ClassSessionID))
			continue
		}
		end := start.Add(time.Duration(endMin-startMin) * time.Minute)

		event := cal.AddEvent(fmt.Sprintf("%s@studyhub", sess.ClassSessionID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(sess.SubjectName)
		if sess.Room != "" {
			event.SetLocation(sess.Room)
		}
		if sess.SubjectCode != "" {
			event.SetDescription(fmt.Sprintf("%s · %s", sess.SubjectCode, sess.Kind))
		}
		event.AddRrule("FREQ=WEEKLY")
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "timetable.ics", nil
}

// ExportXLSX 导出周课表为 Excel
func (s *exportService) ExportXLSX(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	sessions, err := s.fetchValid(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 8)
	f.SetColWidth(sheetName, "D", "D", 28)
	f.SetColWidth(sheetName, "E", "G", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Day", "Start", "End", "Subject", "Code", "Kind", "Room"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, col+"1", h)
		f.SetCellStyle(sheetName, col+"1", col+"1", headerStyle)
	}

	// 按周一~周日、开始时间升序写入
	byDay := make(map[string][]model.ClassSession)
	for _, sess := range sessions {
		byDay[sess.DayOfWeek] = append(byDay[sess.DayOfWeek], sess)
	}

	row := 2
	for _, day := range model.WeekDays {
		for _, sess := range byDay[day] {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), day)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), clockHHMM(sess.StartTime))
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), clockHHMM(sess.EndTime))
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), sess.SubjectName)
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), sess.SubjectCode)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), sess.Kind)
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), sess.Room)
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "timetable.xlsx", nil
}

// ── 私有辅助方法 ──

// fetchValid 拉取整周课程并过滤损坏记录；每天桶内已由仓储层按开始时间排序
func (s *exportService) fetchValid(ctx context.Context, userID string) ([]model.ClassSession, error) {
	sessions, err := s.repo.Session.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询课程失败", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	valid := make([]model.ClassSession, 0, len(sessions))
	for _, sess := range sessions {
		if sess.SubjectName == "" || !model.IsValidDay(sess.DayOfWeek) {
			s.logger.Warn("课程记录损坏，跳过导出",
				zap.String("class_session_id", sess.ClassSessionID))
			continue
		}
		if _, err := parseClock(sess.StartTime); err != nil {
			s.logger.Warn("课程记录损坏，跳过导出",
				zap.String("class_session_id", sess.ClassSessionID))
			continue
		}
		valid = append(valid, sess)
	}
	if len(valid) == 0 {
		return nil, ErrExportNoSessions
	}
	return valid, nil
}
