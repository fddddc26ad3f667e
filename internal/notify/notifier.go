package notify

import (
	"context"
	"time"
)

// Notifier 本地提醒服务协作方接口
//
// 对应移动端的系统级定时通知服务：排定后不可单条查询，
// 清理只有"全量取消"一种形态；调用方不保存返回的句柄。
type Notifier interface {
	// CancelAll 取消用户全部待触发提醒
	CancelAll(ctx context.Context, userID string) error
	// ScheduleAt 在指定时刻排定一条提醒，返回句柄（调用方不存储）
	ScheduleAt(ctx context.Context, userID string, fireAt time.Time, title, body string) (string, error)
	// ScheduleImmediate 立即投递一条提醒
	ScheduleImmediate(ctx context.Context, userID string, title, body string) (string, error)
}
