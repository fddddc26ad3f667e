package dto

// ── 时间表展示 ──

// TimetableRequest 查询时间表请求
type TimetableRequest struct {
	Day string `form:"day" binding:"omitempty"` // 英文星期全称；缺省为今天
}

// SessionResponse 课程条目响应（含现算状态）
type SessionResponse struct {
	ID          string `json:"id"`
	SubjectName string `json:"subject_name"`
	SubjectCode string `json:"subject_code,omitempty"`
	Kind        string `json:"kind"`
	Room        string `json:"room,omitempty"`
	SlotLabel   string `json:"slot_label,omitempty"`
	DayOfWeek   string `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"` // upcoming | active | completed
}

// TimetableResponse 单日时间表响应
type TimetableResponse struct {
	Day      string            `json:"day"`
	Sessions []SessionResponse `json:"sessions"`
	Skipped  int               `json:"skipped,omitempty"` // 字段损坏被跳过的记录数
}

// WeekDayGroup 按天分组的课程
type WeekDayGroup struct {
	Day      string            `json:"day"`
	Sessions []SessionResponse `json:"sessions"`
}

// WeekTimetableResponse 整周时间表响应
type WeekTimetableResponse struct {
	Days []WeekDayGroup `json:"days"`
}
