package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studyhub/backend/pkg/redis"
)

// reminderEntry 提醒队列成员（JSON 序列化后存入 ZSET）
type reminderEntry struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"fire_at"`
}

// RedisNotifier 基于 Redis 的提醒服务实现
// 待触发提醒存于按用户分键的 ZSET（score 为触发时刻），
// 由 Dispatcher 轮询弹出到期条目并投递
type RedisNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisNotifier 创建 RedisNotifier 实例
func NewRedisNotifier(client *redis.Client, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

// CancelAll 取消用户全部待触发提醒
func (n *RedisNotifier) CancelAll(ctx context.Context, userID string) error {
	if err := n.client.CancelUserReminders(ctx, userID); err != nil {
		return fmt.Errorf("清空提醒队列失败: %w", err)
	}
	return nil
}

// ScheduleAt 在指定时刻排定一条提醒
func (n *RedisNotifier) ScheduleAt(ctx context.Context, userID string, fireAt time.Time, title, body string) (string, error) {
	entry := reminderEntry{
		ID:     uuid.New().String(),
		Title:  title,
		Body:   body,
		FireAt: fireAt,
	}
	member, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("序列化提醒载荷失败: %w", err)
	}
	if err := n.client.ScheduleReminder(ctx, userID, fireAt, member); err != nil {
		return "", fmt.Errorf("写入提醒队列失败: %w", err)
	}
	return entry.ID, nil
}

// ScheduleImmediate 立即投递一条提醒（不进队列，直接按投递路径处理）
func (n *RedisNotifier) ScheduleImmediate(ctx context.Context, userID string, title, body string) (string, error) {
	id := uuid.New().String()
	deliver(n.logger, userID, reminderEntry{ID: id, Title: title, Body: body, FireAt: time.Now()})
	return id, nil
}

// PendingCount 用户当前待触发提醒数（供诊断接口与测试使用）
func (n *RedisNotifier) PendingCount(ctx context.Context, userID string) (int64, error) {
	return n.client.PendingReminderCount(ctx, userID)
}

// deliver 投递一条提醒
// 服务端形态下的"本地通知"即一条结构化投递日志，设备网关据此推送
func deliver(logger *zap.Logger, userID string, entry reminderEntry) {
	logger.Info("提醒触发",
		zap.String("user_id", userID),
		zap.String("reminder_id", entry.ID),
		zap.String("title", entry.Title),
		zap.String("body", entry.Body),
		zap.Time("fire_at", entry.FireAt),
	)
}
