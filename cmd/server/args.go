package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/palemoky/mine-sweeper/internal/config"
	"github.com/palemoky/mine-sweeper/internal/network/transport"
)

const usage = "usage: server <v4|v6> <port> -i <board-file> [-config path] [-once] [-ws]"

var errUsage = errors.New(usage)

// serverArgs 命令行参数，覆盖配置文件和环境变量
type serverArgs struct {
	ipVersion  string
	port       int
	boardFile  string
	configPath string
	once       bool
	ws         bool
}

// parseArgs 先取两个位置参数，其余交给 FlagSet
func parseArgs(args []string, stderr io.Writer) (*serverArgs, error) {
	if len(args) < 2 {
		return nil, errUsage
	}

	a := &serverArgs{ipVersion: args[0]}
	if a.ipVersion != transport.IPv4 && a.ipVersion != transport.IPv6 {
		return nil, fmt.Errorf("invalid ip version %q (want v4 or v6)", a.ipVersion)
	}

	port, err := strconv.Atoi(args[1])
	if err != nil || port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %q", args[1])
	}
	a.port = port

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&a.boardFile, "i", "", "棋盘文件（16 个整数，行优先）")
	fs.StringVar(&a.configPath, "config", "", "配置文件路径")
	fs.BoolVar(&a.once, "once", false, "一局结束后退出")
	fs.BoolVar(&a.ws, "ws", false, "使用 WebSocket 传输")
	if err := fs.Parse(args[2:]); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments %v", fs.Args())
	}
	return a, nil
}

// apply 把命令行参数写入配置
func (a *serverArgs) apply(cfg *config.Config) {
	cfg.Server.IPVersion = a.ipVersion
	cfg.Server.Port = a.port
	if a.boardFile != "" {
		cfg.Server.BoardFile = a.boardFile
	}
	if a.once {
		cfg.Server.AcceptLoop = false
	}
	if a.ws {
		cfg.Server.Transport = transport.KindWebSocket
	}
}
