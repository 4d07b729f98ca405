package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/palemoky/mine-sweeper/internal/config"
	"github.com/palemoky/mine-sweeper/internal/game/board"
	"github.com/palemoky/mine-sweeper/internal/logger"
	"github.com/palemoky/mine-sweeper/internal/network/server"
	"github.com/palemoky/mine-sweeper/internal/network/server/storage"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	logger.InitConsole(stderr)

	a, err := parseArgs(args, stderr)
	if err != nil {
		if !errors.Is(err, errUsage) {
			_, _ = fmt.Fprintln(stderr, err)
		}
		_, _ = fmt.Fprintln(stderr, usage)
		return 1
	}

	cfg := loadConfig(a.configPath)
	a.apply(cfg)
	if err := cfg.Validate(); err != nil {
		logger.LogError("配置无效: %v", err)
		return 1
	}
	if cfg.Server.BoardFile == "" {
		_, _ = fmt.Fprintln(stderr, "missing board file (-i)")
		_, _ = fmt.Fprintln(stderr, usage)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var recorder server.ResultRecorder
	if cfg.StatsEnabled() {
		rdb, err := storage.Connect(ctx, cfg.Redis)
		if err != nil {
			logger.LogError("%v", err)
			return 1
		}
		defer func() { _ = rdb.Close() }()
		recorder = storage.NewStatsStore(rdb, cfg.Redis.RecentGames)
		logger.LogInfo("📊 对局统计写入 Redis %s", cfg.Redis.Addr)
	}

	logger.LogInfo("🎮 扫雷服务器启动中...")
	srv := server.NewServer(cfg, board.FileSource{Path: cfg.Server.BoardFile}, recorder)
	if err := srv.Listen(); err != nil {
		logger.LogError("服务器启动失败: %v", err)
		return 1
	}

	if err := srv.Serve(ctx); err != nil {
		logger.LogError("服务器异常退出: %v", err)
		return 1
	}
	return 0
}

// loadConfig 没有配置文件时使用默认配置
func loadConfig(path string) *config.Config {
	if path == "" {
		cfg := config.Default()
		if err := cfg.ApplyEnv(); err != nil {
			logger.LogError("环境变量无效，已忽略: %v", err)
			return config.Default()
		}
		return cfg
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.LogError("加载配置文件失败，使用默认配置: %v", err)
		return config.Default()
	}
	return cfg
}
