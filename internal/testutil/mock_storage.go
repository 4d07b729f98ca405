//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/mine-sweeper/internal/game/board"
	"github.com/palemoky/mine-sweeper/internal/network/server/storage"
)

// MockRecorder 对局统计 mock
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordResult(ctx context.Context, rec *storage.GameRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecorder) GetStats(ctx context.Context) (*storage.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Stats), args.Error(1)
}

// MockSource 棋盘来源 mock，用于模拟重新加载失败
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Load() (board.Grid, error) {
	args := m.Called()
	return args.Get(0).(board.Grid), args.Error(1)
}
