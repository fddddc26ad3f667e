package model

// ClassSession 课程表 — 对应 class_sessions
// 每条记录表示一门每周固定时间循环的课程；由外部课程录入表单维护，本服务只读
type ClassSession struct {
	ClassSessionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_session_id"`
	UserID         string `gorm:"type:uuid;not null"                             json:"user_id"`
	SubjectName    string `gorm:"type:varchar(120);not null"                     json:"subject_name"`
	SubjectCode    string `gorm:"type:varchar(40);not null;default:''"           json:"subject_code"`
	Kind           string `gorm:"type:varchar(10);not null;default:'theory'"     json:"kind"` // theory | lab
	Room           string `gorm:"type:varchar(60);not null;default:''"           json:"room"`
	SlotLabel      string `gorm:"type:varchar(40);not null;default:''"           json:"slot_label"`
	DayOfWeek      string `gorm:"type:varchar(10);not null"                      json:"day_of_week"` // Monday .. Sunday（英文全称）
	StartTime      string `gorm:"type:varchar(5);not null"                       json:"start_time"`  // HH:mm
	EndTime        string `gorm:"type:varchar(5);not null"                       json:"end_time"`    // HH:mm
	BaseModel
}

// TableName 指定表名
func (ClassSession) TableName() string { return "class_sessions" }

// WeekDays 每周七天的固定显示顺序（周一优先，与移动端小组件一致）
var WeekDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// IsValidDay 判断是否为合法的英文星期全称
func IsValidDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}
