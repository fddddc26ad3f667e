package widget

import (
	"context"

	"studyhub/backend/internal/model"
)

// ── Mock WidgetScheduleRepository ──

type mockWidgetRepo struct {
	rows        map[string][]model.WidgetScheduleRow
	replaceErr  error
	listErr     error
	replaceLogs [][]model.WidgetScheduleRow // 每次 ReplaceAll 收到的行集
}

func newMockWidgetRepo() *mockWidgetRepo {
	return &mockWidgetRepo{rows: make(map[string][]model.WidgetScheduleRow)}
}

func (m *mockWidgetRepo) ReplaceAll(_ context.Context, userID string, rows []model.WidgetScheduleRow) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.rows[userID] = rows
	m.replaceLogs = append(m.replaceLogs, rows)
	return nil
}

func (m *mockWidgetRepo) ListByUserAndDay(_ context.Context, userID, day string) ([]model.WidgetScheduleRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.WidgetScheduleRow
	for _, r := range m.rows[userID] {
		if r.DayOfWeek == day {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockWidgetRepo) ListByUser(_ context.Context, userID string) ([]model.WidgetScheduleRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows[userID], nil
}

func (m *mockWidgetRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	if m.listErr != nil {
		return 0, m.listErr
	}
	return int64(len(m.rows[userID])), nil
}
