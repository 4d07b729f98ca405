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

const usage = "usage: client <server-address> <port> [-ws] [-config path]"

var errUsage = errors.New(usage)

// clientArgs 命令行参数
type clientArgs struct {
	host       string
	port       int
	configPath string
	ws         bool
}

func parseArgs(args []string, stderr io.Writer) (*clientArgs, error) {
	if len(args) < 2 {
		return nil, errUsage
	}

	a := &clientArgs{host: args[0]}
	port, err := strconv.Atoi(args[1])
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %q", args[1])
	}
	a.port = port

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&a.ws, "ws", false, "使用 WebSocket 传输")
	fs.StringVar(&a.configPath, "config", "", "配置文件路径")
	if err := fs.Parse(args[2:]); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments %v", fs.Args())
	}
	return a, nil
}

// transportKind -ws 优先，其次是配置
func (a *clientArgs) transportKind(cfg *config.Config) string {
	if a.ws {
		return transport.KindWebSocket
	}
	return cfg.Server.Transport
}
