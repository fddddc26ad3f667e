package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogNotifier Notifier 的降级实现：Redis 不可用时仅记录日志。
// 排定的提醒不会真正触发，但同步流程保持可用，待 Redis 恢复后
// 下一次同步会全量重建队列。
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier 创建 LogNotifier 实例
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// CancelAll 取消用户全部待触发提醒（降级：无队列可清）
func (n *LogNotifier) CancelAll(ctx context.Context, userID string) error {
	return nil
}

// ScheduleAt 在指定时刻排定一条提醒（降级：仅记录）
func (n *LogNotifier) ScheduleAt(ctx context.Context, userID string, fireAt time.Time, title, body string) (string, error) {
	id := uuid.New().String()
	n.logger.Warn("提醒服务降级中，提醒未入队",
		zap.String("user_id", userID),
		zap.String("title", title),
		zap.Time("fire_at", fireAt),
	)
	return id, nil
}

// ScheduleImmediate 立即投递一条提醒
func (n *LogNotifier) ScheduleImmediate(ctx context.Context, userID string, title, body string) (string, error) {
	id := uuid.New().String()
	deliver(n.logger, userID, reminderEntry{ID: id, Title: title, Body: body, FireAt: time.Now()})
	return id, nil
}
