package dto

// ── 同步触发 ──

// ReminderSyncResult 提醒同步结果
type ReminderSyncResult struct {
	Scheduled int  `json:"scheduled"` // 成功排定的提醒数
	Skipped   int  `json:"skipped"`   // 字段损坏被跳过的课程数
	ResetOK   bool `json:"reset_ok"`  // 全量取消是否成功（失败时仍继续排定）
}

// WidgetSyncResult 小组件投影同步结果
type WidgetSyncResult struct {
	Rows   int  `json:"rows"`   // 投影行数（空课表为 0，但载荷含显式"无课"文案）
	Pushed bool `json:"pushed"` // 是否成功推送到原生存储
}

// SyncResponse 全量同步响应：两侧互不阻塞，各自报告结果
type SyncResponse struct {
	Reminders *ReminderSyncResult `json:"reminders,omitempty"`
	Widget    *WidgetSyncResult   `json:"widget,omitempty"`
}
