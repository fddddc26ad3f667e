package service

import (
	"errors"
	"testing"
	"time"
)

// 2026-01-05 是周一
var mondayMorning = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

// ── NextOccurrence 测试 ──

func TestNextOccurrence_LaterToday(t *testing.T) {
	// 周一 08:00 查周一 09:00 的课 → 今天 09:00
	got, err := NextOccurrence(mondayMorning, "Monday", "09:00")
	if err != nil {
		t.Fatalf("NextOccurrence 应成功: %v", err)
	}
	want := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("期望=%v，实际=%v", want, got)
	}
}

func TestNextOccurrence_SameInstantRollsOver(t *testing.T) {
	// 周一 08:30 查周一 08:30 的课：候选时刻不晚于当前，顺延整周
	now := time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC)
	got, err := NextOccurrence(now, "Monday", "08:30")
	if err != nil {
		t.Fatalf("NextOccurrence 应成功: %v", err)
	}
	want := time.Date(2026, 1, 12, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("期望下周一=%v，实际=%v", want, got)
	}
}

func TestNextOccurrence_EarlierTodayRollsOver(t *testing.T) {
	// 周一 10:00 查周一 09:00 的课 → 下周一 09:00
	now := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	got, err := NextOccurrence(now, "Monday", "09:00")
	if err != nil {
		t.Fatalf("NextOccurrence 应成功: %v", err)
	}
	want := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("期望下周一=%v，实际=%v", want, got)
	}
}

func TestNextOccurrence_OtherDays(t *testing.T) {
	cases := []struct {
		day      string
		wantDate int // 2026 年 1 月的日期
	}{
		{"Tuesday", 6},
		{"Wednesday", 7},
		{"Thursday", 8},
		{"Friday", 9},
		{"Saturday", 10},
		{"Sunday", 11},
	}
	for _, c := range cases {
		got, err := NextOccurrence(mondayMorning, c.day, "09:00")
		if err != nil {
			t.Fatalf("NextOccurrence(%s) 应成功: %v", c.day, err)
		}
		if got.Day() != c.wantDate {
			t.Errorf("%s 期望日期=%d，实际=%d", c.day, c.wantDate, got.Day())
		}
	}
}

func TestNextOccurrence_UnknownDay(t *testing.T) {
	cases := []string{"", "Mon", "monday", "Funday"}
	for _, day := range cases {
		if _, err := NextOccurrence(mondayMorning, day, "09:00"); !errors.Is(err, ErrUnknownDay) {
			t.Errorf("NextOccurrence(%q) 期望 ErrUnknownDay，实际: %v", day, err)
		}
	}
}

func TestNextOccurrence_InvalidClock(t *testing.T) {
	if _, err := NextOccurrence(mondayMorning, "Monday", "25:00"); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("期望 ErrInvalidClock，实际: %v", err)
	}
}

// TestNextOccurrence_AlwaysFuture 任意星期任意时刻，结果严格晚于当前时刻
// 且与当前时刻相距不超过 7 天
func TestNextOccurrence_AlwaysFuture(t *testing.T) {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	clocks := []string{"00:00", "08:30", "12:00", "18:45", "23:59"}

	for offset := 0; offset < 7; offset++ {
		now := mondayMorning.AddDate(0, 0, offset).Add(7*time.Hour + 13*time.Minute)
		for _, day := range days {
			for _, clock := range clocks {
				got, err := NextOccurrence(now, day, clock)
				if err != nil {
					t.Fatalf("NextOccurrence(%v, %s, %s) 应成功: %v", now, day, clock, err)
				}
				if !got.After(now) {
					t.Errorf("结果 %v 应严格晚于 now=%v（day=%s clock=%s）", got, now, day, clock)
				}
				if got.Sub(now) > 7*24*time.Hour {
					t.Errorf("结果 %v 距 now=%v 超过 7 天（day=%s clock=%s）", got, now, day, clock)
				}
				if got.Weekday() != dayToWeekday[day] {
					t.Errorf("结果星期=%v，期望=%s", got.Weekday(), day)
				}
			}
		}
	}
}

// ── NthOccurrence 测试 ──

func TestNthOccurrence(t *testing.T) {
	next, err := NextOccurrence(mondayMorning, "Wednesday", "10:00")
	if err != nil {
		t.Fatalf("NextOccurrence 应成功: %v", err)
	}

	for k := 0; k < 4; k++ {
		got, err := NthOccurrence(mondayMorning, "Wednesday", "10:00", k)
		if err != nil {
			t.Fatalf("NthOccurrence(k=%d) 应成功: %v", k, err)
		}
		want := next.AddDate(0, 0, 7*k)
		if !got.Equal(want) {
			t.Errorf("NthOccurrence(k=%d) 期望=%v，实际=%v", k, want, got)
		}
	}
}

func TestNthOccurrence_NegativeK(t *testing.T) {
	got, err := NthOccurrence(mondayMorning, "Monday", "09:00", -1)
	if err != nil {
		t.Fatalf("NthOccurrence 应成功: %v", err)
	}
	next, _ := NextOccurrence(mondayMorning, "Monday", "09:00")
	if !got.Equal(next) {
		t.Errorf("k<0 应等价于 k=0，期望=%v，实际=%v", next, got)
	}
}
