package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"studyhub/backend/config"
)

// Client Redis 客户端封装
// 当前承载两类状态：
//   - 课程提醒队列（按用户分键的 ZSET，score 为触发时刻的 Unix 秒）
//   - 小组件刷新广播（Pub/Sub 频道，对应原生端的刷新 Intent）
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 提醒队列 ──

const (
	reminderQueuePrefix  = "reminder:queue:"
	reminderUsersKey     = "reminder:users"
	widgetRefreshChannel = "widget:refresh"
)

// ScheduleReminder 将一条提醒加入用户的提醒队列
// member 为序列化后的提醒载荷，score 为触发时刻
func (c *Client) ScheduleReminder(ctx context.Context, userID string, fireAt time.Time, member []byte) error {
	key := reminderQueuePrefix + userID
	pipe := c.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(fireAt.Unix()), Member: string(member)})
	pipe.SAdd(ctx, reminderUsersKey, userID)
	_, err := pipe.Exec(ctx)
	return err
}

// CancelUserReminders 清空用户的全部待触发提醒（全量重置）
func (c *Client) CancelUserReminders(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, reminderQueuePrefix+userID).Err()
}

// PendingReminderCount 用户当前待触发提醒数量
func (c *Client) PendingReminderCount(ctx context.Context, userID string) (int64, error) {
	return c.rdb.ZCard(ctx, reminderQueuePrefix+userID).Result()
}

// PopDueReminders 弹出用户所有已到期的提醒（原子：取出后即从队列移除）
func (c *Client) PopDueReminders(ctx context.Context, userID string, now time.Time) ([]string, error) {
	key := reminderQueuePrefix + userID
	max := strconv.FormatInt(now.Unix(), 10)

	members, err := c.rdb.ZRangeByScore(ctx, key, &goredis.ZRangeBy{Min: "-inf", Max: max}).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := c.rdb.ZRem(ctx, key, args...).Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// ReminderUsers 当前持有提醒队列的用户集合
func (c *Client) ReminderUsers(ctx context.Context) ([]string, error) {
	return c.rdb.SMembers(ctx, reminderUsersKey).Result()
}

// ── 小组件刷新广播 ──

// PublishWidgetRefresh 广播一次小组件刷新（载荷为用户 ID）
func (c *Client) PublishWidgetRefresh(ctx context.Context, userID string) error {
	return c.rdb.Publish(ctx, widgetRefreshChannel, userID).Err()
}

// SubscribeWidgetRefresh 订阅小组件刷新频道
func (c *Client) SubscribeWidgetRefresh(ctx context.Context) *goredis.PubSub {
	return c.rdb.Subscribe(ctx, widgetRefreshChannel)
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
