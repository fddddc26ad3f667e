package service

import (
	"errors"
	"fmt"
	"time"
)

// ── 下次上课时刻解算 ──
//
// 课程按"星期 + 当日时刻"每周循环。给定当前时刻，解算该课程下一次
// 开始的具体时间点：
//   daysUntil = (目标星期 - 当前星期 + 7) mod 7
//   候选时刻  = 今天 + daysUntil 天，当日 HH:mm
//   若候选时刻已不晚于当前时刻（今天的课已经开始或结束），顺延 7 天
// 结果保证严格晚于当前时刻。

// ErrUnknownDay 星期字段无法识别（不做任何猜测，该课程单独失败）
var ErrUnknownDay = errors.New("无法识别的星期值")

var dayToWeekday = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// parseDay 英文星期全称 → time.Weekday（周日=0）
func parseDay(day string) (time.Weekday, error) {
	wd, ok := dayToWeekday[day]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}
	return wd, nil
}

// NextOccurrence 解算课程下一次开始的时刻（严格晚于 now）
func NextOccurrence(now time.Time, day string, startClock string) (time.Time, error) {
	wd, err := parseDay(day)
	if err != nil {
		return time.Time{}, err
	}
	startMin, err := parseClock(startClock)
	if err != nil {
		return time.Time{}, err
	}

	daysUntil := (int(wd) - int(now.Weekday()) + 7) % 7
	candidate := time.Date(now.Year(), now.Month(), now.Day(),
		startMin/60, startMin%60, 0, 0, now.Location()).
		AddDate(0, 0, daysUntil)

	// 当天的课已开始或已结束：顺延一周
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate, nil
}

// NthOccurrence 解算第 k 次（k 从 0 起）未来开始时刻：下一次 + 7k 天
func NthOccurrence(now time.Time, day string, startClock string, k int) (time.Time, error) {
	next, err := NextOccurrence(now, day, startClock)
	if err != nil {
		return time.Time{}, err
	}
	if k <= 0 {
		return next, nil
	}
	return next.AddDate(0, 0, 7*k), nil
}
