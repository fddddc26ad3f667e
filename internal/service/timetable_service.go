package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"studyhub/backend/internal/dto"
	"studyhub/backend/internal/model"
	"studyhub/backend/internal/repository"
)

// ── 时间表模块业务错误 ──

var ErrTimetableInvalidDay = errors.New("无效的星期参数")

// ── TimetableService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 状态（upcoming/active/completed）为展示期派生值，按请求时刻现算。
//   - 只有"今天"的课程会被判为 active/completed；查询其他天时整天皆为 upcoming
//     （与移动端单日视图行为一致）。
//   - 字段损坏的记录跳过并告警，不中断整个列表（见错误处理约定）。
// ─────────────────────────────────────────────────────────────

// TimetableService 时间表展示业务接口
type TimetableService interface {
	// GetTimetable 获取用户某天的课程（day 缺省为今天），按展示规则排序
	GetTimetable(ctx context.Context, userID, day string) (*dto.TimetableResponse, error)
	// GetWeek 获取用户整周课程，按周一~周日分组
	GetWeek(ctx context.Context, userID string) (*dto.WeekTimetableResponse, error)
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger, now: time.Now}
}

// GetTimetable 获取单日时间表
func (s *timetableService) GetTimetable(ctx context.Context, userID, day string) (*dto.TimetableResponse, error) {
	now := s.now()
	if day == "" {
		day = now.Weekday().String()
	}
	if !model.IsValidDay(day) {
		return nil, ErrTimetableInvalidDay
	}

	sessions, err := s.repo.Session.ListByUserAndDay(ctx, userID, day)
	if err != nil {
		s.logger.Error("查询课程失败", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	responses, entries, skipped := s.annotate(sessions, now, day == now.Weekday().String())

	// 展示排序：active 优先，其余按开始时间升序，稳定
	indexes := make([]int, len(responses))
	for i := range indexes {
		indexes[i] = i
	}
	sortForDisplay(entries, indexes)

	sorted := make([]dto.SessionResponse, 0, len(responses))
	for _, idx := range indexes {
		sorted = append(sorted, responses[idx])
	}

	return &dto.TimetableResponse{Day: day, Sessions: sorted, Skipped: skipped}, nil
}

// GetWeek 获取整周时间表
func (s *timetableService) GetWeek(ctx context.Context, userID string) (*dto.WeekTimetableResponse, error) {
	sessions, err := s.repo.Session.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询整周课程失败", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	now := s.now()
	today := now.Weekday().String()

	byDay := make(map[string][]dto.SessionResponse, len(model.WeekDays))
	for _, sess := range sessions {
		resp, _, ok := s.annotateOne(sess, now, sess.DayOfWeek == today)
		if !ok {
			continue
		}
		byDay[sess.DayOfWeek] = append(byDay[sess.DayOfWeek], resp)
	}

	days := make([]dto.WeekDayGroup, 0, len(model.WeekDays))
	for _, day := range model.WeekDays {
		days = append(days, dto.WeekDayGroup{
			Day:      day,
			Sessions: byDay[day],
		})
	}

	return &dto.WeekTimetableResponse{Days: days}, nil
}

// ── 私有辅助方法 ──

// annotate 为课程列表标注状态；返回响应、排序视图与跳过数
func (s *timetableService) annotate(sessions []model.ClassSession, now time.Time, isToday bool) ([]dto.SessionResponse, []displayEntry, int) {
	responses := make([]dto.SessionResponse, 0, len(sessions))
	entries := make([]displayEntry, 0, len(sessions))
	skipped := 0

	for _, sess := range sessions {
		resp, entry, ok := s.annotateOne(sess, now, isToday)
		if !ok {
			skipped++
			continue
		}
		responses = append(responses, resp)
		entries = append(entries, entry)
	}
	return responses, entries, skipped
}

// annotateOne 单条课程标注；字段损坏时 ok=false 并告警
func (s *timetableService) annotateOne(sess model.ClassSession, now time.Time, isToday bool) (dto.SessionResponse, displayEntry, bool) {
	startMin, err := parseClock(sess.StartTime)
	if err != nil {
		s.logger.Warn("课程时间字段损坏，已跳过",
			zap.String("class_session_id", sess.ClassSessionID),
			zap.String("start_time", sess.StartTime),
			zap.Error(err),
		)
		return dto.SessionResponse{}, displayEntry{}, false
	}
	endMin, err := parseClock(sess.EndTime)
	if err != nil || endMin <= startMin {
		s.logger.Warn("课程时间字段损坏，已跳过",
			zap.String("class_session_id", sess.ClassSessionID),
			zap.String("end_time", sess.EndTime),
		)
		return dto.SessionResponse{}, displayEntry{}, false
	}

	status := StatusUpcoming
	if isToday {
		status = classifyMinutes(minutesOfDay(now), startMin, endMin)
	}

	return dto.SessionResponse{
		ID:          sess.ClassSessionID,
		SubjectName: sess.SubjectName,
		SubjectCode: sess.SubjectCode,
		Kind:        sess.Kind,
		Room:        sess.Room,
		SlotLabel:   sess.SlotLabel,
		DayOfWeek:   sess.DayOfWeek,
		StartTime:   sess.StartTime,
		EndTime:     sess.EndTime,
		Status:      string(status),
	}, displayEntry{status: status, startMin: startMin}, true
}
