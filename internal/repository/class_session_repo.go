package repository

import (
	"context"

	"gorm.io/gorm"

	"studyhub/backend/internal/model"
)

// SessionRepository 课程数据访问接口
// 本服务对 class_sessions 只读：写入方是课程录入表单（范围外协作方）
type SessionRepository interface {
	// ListByUser 查询用户整周课程（未过滤；提醒与投影逻辑必须走此方法）
	ListByUser(ctx context.Context, userID string) ([]model.ClassSession, error)
	// ListByUserAndDay 查询用户某天的课程（仅供展示层按天筛选）
	ListByUserAndDay(ctx context.Context, userID, day string) ([]model.ClassSession, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string) ([]model.ClassSession, error) {
	var sessions []model.ClassSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC, start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByUserAndDay(ctx context.Context, userID, day string) ([]model.ClassSession, error) {
	var sessions []model.ClassSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_of_week = ?", userID, day).
		Order("start_time ASC").
		Find(&sessions).Error
	return sessions, err
}
