package model

// WidgetScheduleRow 小组件投影表 — 对应 widget_schedule
// 镜像 ClassSession 的展示字段；每次同步对该用户整表覆盖，不做增量更新
type WidgetScheduleRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"             json:"id"`
	UserID    string `gorm:"type:uuid;not null"                   json:"user_id"`
	Subject   string `gorm:"type:varchar(120);not null"           json:"subject"`
	StartTime string `gorm:"type:varchar(5);not null"             json:"start_time"` // HH:mm
	EndTime   string `gorm:"type:varchar(5);not null"             json:"end_time"`   // HH:mm
	Room      string `gorm:"type:varchar(60);not null;default:''" json:"room"`
	DayOfWeek string `gorm:"type:varchar(10);not null"            json:"day_of_week"` // Monday .. Sunday（英文全称）
}

// TableName 指定表名
func (WidgetScheduleRow) TableName() string { return "widget_schedule" }
