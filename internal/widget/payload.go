package widget

import "context"

// ── 原生桥接口与载荷 ──
//
// 载荷是投影端（主应用侧）与存储端（原生侧）之间的唯一数据契约：
// 永远是全量快照，存储端以"删全表 + 重插入"方式落库，从不做增量合并。

// NoClassesSummary 空课表的显式文案（与移动端小组件一致）
const NoClassesSummary = "No classes set for this week"

// PayloadRow 投影载荷中的一行（对应 widget_schedule 表结构）
type PayloadRow struct {
	Subject   string `json:"subject"`
	StartTime string `json:"start_time"` // HH:mm
	EndTime   string `json:"end_time"`   // HH:mm
	Room      string `json:"room"`
	DayOfWeek string `json:"day_of_week"` // Monday .. Sunday（英文全称）
}

// SchedulePayload 整周投影载荷
type SchedulePayload struct {
	Rows    []PayloadRow `json:"rows"`
	Summary string       `json:"summary"` // 紧凑周摘要文本；空课表为 NoClassesSummary
}

// NativeBridge 原生桥：跨进程推送投影数据
// 调用方视角 fire-and-forget：只确认存储写入，不等待小组件重绘
type NativeBridge interface {
	PushScheduleData(ctx context.Context, userID string, payload []byte) error
}
