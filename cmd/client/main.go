package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/mine-sweeper/internal/config"
	"github.com/palemoky/mine-sweeper/internal/logger"
	"github.com/palemoky/mine-sweeper/internal/network/client"
	"github.com/palemoky/mine-sweeper/internal/sound"
	"github.com/palemoky/mine-sweeper/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	a, err := parseArgs(args, stderr)
	if err != nil {
		if !errors.Is(err, errUsage) {
			_, _ = fmt.Fprintln(stderr, err)
		}
		_, _ = fmt.Fprintln(stderr, usage)
		return 1
	}

	// 终端归界面所有，日志写文件
	if err := logger.Init("client"); err != nil {
		_, _ = fmt.Fprintf(stderr, "日志初始化失败: %v\n", err)
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			panic(r)
		}
	}()

	cfg := config.Default()
	if a.configPath != "" {
		if loaded, err := config.Load(a.configPath); err == nil {
			cfg = loaded
		} else {
			logger.LogError("加载配置文件失败，使用默认配置: %v", err)
		}
	} else if err := cfg.ApplyEnv(); err != nil {
		logger.LogError("环境变量无效，已忽略: %v", err)
	}

	c, err := client.Dial(a.transportKind(cfg), a.host, a.port)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "无法连接服务器: %v\n", err)
		logger.LogError("无法连接服务器: %v", err)
		return 1
	}
	defer func() { _ = c.Close() }()

	var player ui.Player
	if cfg.Client.Sound {
		sm := sound.NewSoundManager()
		if err := sm.Init(); err != nil {
			logger.LogError("音效不可用: %v", err)
		} else {
			defer sm.Close()
			player = sm
		}
	}

	p := tea.NewProgram(ui.NewModel(c, player))
	if _, err := p.Run(); err != nil {
		_, _ = fmt.Fprintf(stderr, "启动客户端时出错: %v\n", err)
		logger.LogError("启动客户端时出错: %v", err)
		return 1
	}
	return 0
}
