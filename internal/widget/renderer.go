package widget

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"studyhub/backend/internal/model"
	"studyhub/backend/internal/repository"
	"studyhub/backend/pkg/redis"
)

// ── 渲染端 ──
//
// 渲染端只依赖投影表，主应用侧服务全部下线时仍可工作（对应原生小组件
// 离线渲染）。"进行中"高亮在这里独立实现一遍左闭右开规则，与主应用侧
// 的分类器是同一规范的两个实现，由一致性测试保证行为一致。

// TodayItem 今日视图条目
type TodayItem struct {
	Subject   string `json:"subject"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room,omitempty"`
	Active    bool   `json:"active"` // 进行中高亮
}

// TodayView 今日课程视图
type TodayView struct {
	Day     string      `json:"day"`
	Items   []TodayItem `json:"items"`
	Message string      `json:"message,omitempty"` // 空列表时的显式文案
}

// NextView "下一节课"紧凑视图
type NextView struct {
	Subject   string `json:"subject,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Room      string `json:"room,omitempty"`
	Found     bool   `json:"found"`
	Message   string `json:"message,omitempty"`
}

// WeekDayGroup 整周视图的按天分组
type WeekDayGroup struct {
	Day   string      `json:"day"`
	Items []TodayItem `json:"items"`
}

// WeekView 整周课程视图
type WeekView struct {
	Days    []WeekDayGroup `json:"days"`
	Message string         `json:"message,omitempty"`
}

// 空态文案与移动端小组件保持一致
const (
	emptyTodayMessage = "No classes today! 🎉"
	emptyNextTitle    = "No upcoming classes!"
	emptyNextBody     = "Enjoy your free time 🎉"
	emptyWeekMessage  = NoClassesSummary
)

// Renderer 小组件渲染器
type Renderer struct {
	repo            repository.WidgetScheduleRepository
	rdb             *redis.Client
	logger          *zap.Logger
	refreshInterval time.Duration
	now             func() time.Time

	mu        sync.RWMutex
	nextCache map[string]NextView // userID → 最近一次渲染的"下一节课"快照
}

// NewRenderer 创建 Renderer 实例
// rdb 可为 nil：不订阅刷新广播，仅按需渲染
func NewRenderer(repo repository.WidgetScheduleRepository, rdb *redis.Client, logger *zap.Logger, refreshInterval time.Duration) *Renderer {
	if refreshInterval <= 0 {
		refreshInterval = 15 * time.Minute
	}
	return &Renderer{
		repo:            repo,
		rdb:             rdb,
		logger:          logger,
		refreshInterval: refreshInterval,
		now:             time.Now,
		nextCache:       make(map[string]NextView),
	}
}

// RenderToday 渲染今日课程视图
func (r *Renderer) RenderToday(ctx context.Context, userID string) (*TodayView, error) {
	now := r.now()
	day := now.Weekday().String()

	rows, err := r.repo.ListByUserAndDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	view := &TodayView{Day: day, Items: r.toItems(rows, now)}
	if len(view.Items) == 0 {
		view.Message = emptyTodayMessage
	}
	return view, nil
}

// RenderNext 渲染"下一节课"紧凑视图：今天第一节尚未结束的课
func (r *Renderer) RenderNext(ctx context.Context, userID string) (*NextView, error) {
	now := r.now()
	day := now.Weekday().String()

	rows, err := r.repo.ListByUserAndDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	view := findNext(rows, clockMinutes(now))
	r.mu.Lock()
	r.nextCache[userID] = *view
	r.mu.Unlock()
	return view, nil
}

// RenderWeek 渲染整周视图（周一优先分组）
func (r *Renderer) RenderWeek(ctx context.Context, userID string) (*WeekView, error) {
	rows, err := r.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := r.now()
	today := now.Weekday().String()

	byDay := make(map[string][]TodayItem, len(model.WeekDays))
	for _, row := range rows {
		item := TodayItem{
			Subject:   row.Subject,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Room:      row.Room,
		}
		if row.DayOfWeek == today {
			item.Active = isActiveNow(row.StartTime, row.EndTime, clockMinutes(now))
		}
		byDay[row.DayOfWeek] = append(byDay[row.DayOfWeek], item)
	}

	view := &WeekView{Days: make([]WeekDayGroup, 0, len(model.WeekDays))}
	for _, day := range model.WeekDays {
		if items := byDay[day]; len(items) > 0 {
			view.Days = append(view.Days, WeekDayGroup{Day: day, Items: items})
		}
	}
	if len(view.Days) == 0 {
		view.Message = emptyWeekMessage
	}
	return view, nil
}

// CachedNext 最近一次刷新渲染的"下一节课"快照
func (r *Renderer) CachedNext(userID string) (NextView, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.nextCache[userID]
	return v, ok
}

// Start 启动刷新循环：订阅刷新广播 + 定时重渲染已知用户
// （对应系统定时触发的小组件重绘）
func (r *Renderer) Start(ctx context.Context) {
	if r.rdb != nil {
		go r.subscribeLoop(ctx)
	}
	go r.tickLoop(ctx)
}

func (r *Renderer) subscribeLoop(ctx context.Context) {
	sub := r.rdb.SubscribeWidgetRefresh(ctx)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			userID := msg.Payload
			if _, err := r.RenderNext(ctx, userID); err != nil {
				r.logger.Warn("小组件刷新渲染失败", zap.Error(err), zap.String("user_id", userID))
				continue
			}
			r.logger.Debug("小组件已按广播刷新", zap.String("user_id", userID))
		}
	}
}

func (r *Renderer) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(r.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.RLock()
			users := make([]string, 0, len(r.nextCache))
			for u := range r.nextCache {
				users = append(users, u)
			}
			r.mu.RUnlock()

			for _, u := range users {
				if _, err := r.RenderNext(ctx, u); err != nil {
					r.logger.Warn("小组件定时刷新失败", zap.Error(err), zap.String("user_id", u))
				}
			}
		}
	}
}

// ── 渲染端本地时间规则（独立于主应用侧分类器）──

// clockMinutes 当前时刻的当日分钟数
func clockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// parseHHMM HH:mm → 当日分钟数；损坏数据返回 -1（该行按非进行中处理）
func parseHHMM(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return -1
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return -1
	}
	return h*60 + m
}

// isActiveNow 左闭右开：start <= now < end
func isActiveNow(start, end string, nowMin int) bool {
	startVal := parseHHMM(start)
	endVal := parseHHMM(end)
	if startVal < 0 || endVal < 0 {
		return false
	}
	return startVal <= nowMin && nowMin < endVal
}

// findNext 今天第一节"尚未结束"的课（end > now），按开始时间取最早
func findNext(rows []model.WidgetScheduleRow, nowMin int) *NextView {
	best := -1
	bestStart := 0
	for i, row := range rows {
		endVal := parseHHMM(row.EndTime)
		if endVal < 0 || endVal <= nowMin {
			continue
		}
		startVal := parseHHMM(row.StartTime)
		if startVal < 0 {
			continue
		}
		if best == -1 || startVal < bestStart {
			best = i
			bestStart = startVal
		}
	}
	if best == -1 {
		return &NextView{Found: false, Message: emptyNextTitle + " " + emptyNextBody}
	}
	row := rows[best]
	return &NextView{
		Subject:   row.Subject,
		StartTime: row.StartTime,
		EndTime:   row.EndTime,
		Room:      row.Room,
		Found:     true,
	}
}

func (r *Renderer) toItems(rows []model.WidgetScheduleRow, now time.Time) []TodayItem {
	items := make([]TodayItem, 0, len(rows))
	nowMin := clockMinutes(now)
	for _, row := range rows {
		items = append(items, TodayItem{
			Subject:   row.Subject,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Room:      row.Room,
			Active:    isActiveNow(row.StartTime, row.EndTime, nowMin),
		})
	}
	return items
}
