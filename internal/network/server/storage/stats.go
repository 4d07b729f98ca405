package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/mine-sweeper/internal/config"
)

const (
	// Redis key
	statsKey       = "stats"
	recentGamesKey = "games:recent"

	fieldGames = "games"
)

// ErrUnknownOutcome 结局不是 won/lost/disconnected
var ErrUnknownOutcome = errors.New("unknown outcome")

// Stats 累计统计
type Stats struct {
	Games        int64 `json:"games"`
	Won          int64 `json:"won"`
	Lost         int64 `json:"lost"`
	Disconnected int64 `json:"disconnected"`
}

// WinRate 胜率（断线不计入）
func (s *Stats) WinRate() float64 {
	finished := s.Won + s.Lost
	if finished == 0 {
		return 0
	}
	return float64(s.Won) / float64(finished)
}

// StatsStore 游戏结果统计，只记录结局，从不用于恢复对局
type StatsStore struct {
	redis  *redis.Client
	recent int64
}

// NewStatsStore 创建统计存储，recent 为保留的最近对局条数
func NewStatsStore(client *redis.Client, recent int) *StatsStore {
	if recent <= 0 {
		recent = config.DefaultRecentGames
	}
	return &StatsStore{redis: client, recent: int64(recent)}
}

// Connect 按配置连接 Redis 并 ping
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}
	return rdb, nil
}

// RecordResult 记录一局结果
func (s *StatsStore) RecordResult(ctx context.Context, rec *GameRecord) error {
	switch rec.Outcome {
	case OutcomeWon, OutcomeLost, OutcomeDisconnected:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, rec.Outcome)
	}

	data := rec.Marshal()
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, statsKey, fieldGames, 1)
		pipe.HIncrBy(ctx, statsKey, rec.Outcome, 1)
		pipe.LPush(ctx, recentGamesKey, data)
		pipe.LTrim(ctx, recentGamesKey, 0, s.recent-1)
		return nil
	})
	return err
}

// GetStats 读取累计统计
func (s *StatsStore) GetStats(ctx context.Context) (*Stats, error) {
	fields, err := s.redis.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for name, dst := range map[string]*int64{
		fieldGames:          &stats.Games,
		OutcomeWon:          &stats.Won,
		OutcomeLost:         &stats.Lost,
		OutcomeDisconnected: &stats.Disconnected,
	} {
		v, ok := fields[name]
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stats field %s: %w", name, err)
		}
		*dst = n
	}
	return stats, nil
}

// RecentGames 最近 n 局，最新的在前
func (s *StatsStore) RecentGames(ctx context.Context, n int) ([]*GameRecord, error) {
	if n <= 0 {
		return nil, nil
	}

	items, err := s.redis.LRange(ctx, recentGamesKey, 0, int64(n)-1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*GameRecord, 0, len(items))
	for _, item := range items {
		rec, err := UnmarshalRecord([]byte(item))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
