package repository

import (
	"context"

	"gorm.io/gorm"

	"studyhub/backend/internal/model"
)

// WidgetScheduleRepository 小组件投影表数据访问接口
// 写入只有一种形态：整表替换；不暴露按 ID 更新
type WidgetScheduleRepository interface {
	// ReplaceAll 在事务中全量替换用户的投影数据：先删除旧行，再批量插入新行
	ReplaceAll(ctx context.Context, userID string, rows []model.WidgetScheduleRow) error
	// ListByUserAndDay 查询用户某天的投影行（按开始时间升序）
	ListByUserAndDay(ctx context.Context, userID, day string) ([]model.WidgetScheduleRow, error)
	// ListByUser 查询用户全部投影行（按天 + 开始时间排序，供整周视图）
	ListByUser(ctx context.Context, userID string) ([]model.WidgetScheduleRow, error)
	// CountByUser 用户投影行数
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type widgetScheduleRepo struct {
	db *gorm.DB
}

// NewWidgetScheduleRepo 创建 WidgetScheduleRepository 实例
func NewWidgetScheduleRepo(db *gorm.DB) WidgetScheduleRepository {
	return &widgetScheduleRepo{db: db}
}

func (r *widgetScheduleRepo) ReplaceAll(ctx context.Context, userID string, rows []model.WidgetScheduleRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&model.WidgetScheduleRow{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *widgetScheduleRepo) ListByUserAndDay(ctx context.Context, userID, day string) ([]model.WidgetScheduleRow, error) {
	var rows []model.WidgetScheduleRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_of_week = ?", userID, day).
		Order("start_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *widgetScheduleRepo) ListByUser(ctx context.Context, userID string) ([]model.WidgetScheduleRow, error) {
	var rows []model.WidgetScheduleRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *widgetScheduleRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WidgetScheduleRow{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
