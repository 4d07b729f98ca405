//go:build !production

package testutil

import (
	"net"

	"github.com/palemoky/mine-sweeper/internal/game/board"
	"github.com/palemoky/mine-sweeper/internal/network/transport"
)

// ScenarioBoard 文档里的示例棋盘
var ScenarioBoard = board.Grid{
	{0, 1, -1, 1},
	{1, 2, 2, 1},
	{0, 1, -1, 1},
	{0, 0, 1, 1},
}

// ConnPair 返回一对内存连接
func ConnPair() (client, server transport.Conn) {
	a, b := net.Pipe()
	return transport.NewConn(a), transport.NewConn(b)
}
