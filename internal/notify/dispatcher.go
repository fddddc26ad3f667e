package notify

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"studyhub/backend/pkg/redis"
)

// Dispatcher 到期提醒派发器
// 定时扫描各用户的提醒队列，弹出已到期条目并投递
type Dispatcher struct {
	client   *redis.Client
	logger   *zap.Logger
	interval time.Duration
}

// NewDispatcher 创建 Dispatcher 实例
func NewDispatcher(client *redis.Client, logger *zap.Logger, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Dispatcher{client: client, logger: logger, interval: interval}
}

// Start 启动派发循环（随 ctx 取消退出）
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.dispatchDue(ctx, time.Now())
			}
		}
	}()
}

// dispatchDue 派发所有用户的到期提醒
func (d *Dispatcher) dispatchDue(ctx context.Context, now time.Time) {
	users, err := d.client.ReminderUsers(ctx)
	if err != nil {
		d.logger.Warn("读取提醒用户集合失败", zap.Error(err))
		return
	}

	for _, userID := range users {
		members, err := d.client.PopDueReminders(ctx, userID, now)
		if err != nil {
			// 单用户失败不影响其他用户
			d.logger.Warn("弹出到期提醒失败", zap.Error(err), zap.String("user_id", userID))
			continue
		}
		for _, m := range members {
			var entry reminderEntry
			if err := json.Unmarshal([]byte(m), &entry); err != nil {
				d.logger.Warn("提醒载荷损坏，已丢弃", zap.Error(err), zap.String("user_id", userID))
				continue
			}
			deliver(d.logger, userID, entry)
		}
	}
}
