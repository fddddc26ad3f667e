package service

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ── 课程状态分类 ──
//
// 设计说明：
//   - 状态为派生值，每次调用按当前墙钟时间现算，从不落库。
//   - 判定采用左闭右开区间：start <= now < end 为 active；
//     now >= end 为 completed；其余为 upcoming。
//   - 比较基于"当日零点起的分钟数"，不支持跨午夜课程
//     （end <= start 属非法输入，须由调用方在上游过滤）。

// Status 课程相对当前时刻的状态
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ErrInvalidClock HH:mm 时间串无法解析
var ErrInvalidClock = errors.New("无法解析的时间格式")

// parseClock 将 HH:mm 解析为当日零点起的分钟数
// 兼容 HH:mm:ss（数据库 time 列的常见回读格式），忽略秒
func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// minutesOfDay 当前时刻对应的当日分钟数
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// classifyMinutes 按分钟数分类（三值互斥，全函数，无错误路径）
func classifyMinutes(now, start, end int) Status {
	switch {
	case now >= end:
		return StatusCompleted
	case now >= start:
		return StatusActive
	default:
		return StatusUpcoming
	}
}

// displayEntry 供展示排序的最小视图
type displayEntry struct {
	status   Status
	startMin int
}

// sortForDisplay 展示排序：active 优先，其余按开始时间升序；
// 同状态同开始时间保持原始顺序（稳定排序，无副作用）
func sortForDisplay(entries []displayEntry, indexes []int) {
	sort.SliceStable(indexes, func(i, j int) bool {
		a, b := entries[indexes[i]], entries[indexes[j]]
		if (a.status == StatusActive) != (b.status == StatusActive) {
			return a.status == StatusActive
		}
		return a.startMin < b.startMin
	})
}
