package widget

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"studyhub/backend/internal/model"
	"studyhub/backend/internal/repository"
	"studyhub/backend/pkg/redis"
)

// StoreBridge NativeBridge 的存储端实现
// 在单个事务中整表替换用户投影数据，随后广播一次刷新
// （对应原生端写 SharedPreferences/Room 后发送 APPWIDGET_UPDATE Intent）
type StoreBridge struct {
	repo   repository.WidgetScheduleRepository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewStoreBridge 创建 StoreBridge 实例
// rdb 可为 nil：Redis 不可用时仅落库，不广播刷新
func NewStoreBridge(repo repository.WidgetScheduleRepository, rdb *redis.Client, logger *zap.Logger) *StoreBridge {
	return &StoreBridge{repo: repo, rdb: rdb, logger: logger}
}

// PushScheduleData 接收整周投影载荷并原子落库
func (b *StoreBridge) PushScheduleData(ctx context.Context, userID string, payload []byte) error {
	var p SchedulePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("解析投影载荷失败: %w", err)
	}

	rows := make([]model.WidgetScheduleRow, 0, len(p.Rows))
	for _, r := range p.Rows {
		rows = append(rows, model.WidgetScheduleRow{
			UserID:    userID,
			Subject:   r.Subject,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Room:      r.Room,
			DayOfWeek: r.DayOfWeek,
		})
	}

	// 原子替换：删全部旧行 + 插入新行，绝不部分更新
	if err := b.repo.ReplaceAll(ctx, userID, rows); err != nil {
		return fmt.Errorf("写入投影表失败: %w", err)
	}

	b.logger.Info("小组件投影已更新",
		zap.String("user_id", userID),
		zap.Int("rows", len(rows)),
	)

	// 刷新广播失败不影响写入结果
	if b.rdb != nil {
		if err := b.rdb.PublishWidgetRefresh(ctx, userID); err != nil {
			b.logger.Warn("小组件刷新广播失败", zap.Error(err), zap.String("user_id", userID))
		}
	}
	return nil
}
