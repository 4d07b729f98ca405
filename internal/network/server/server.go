// Package server 连接管理：监听一个端点，串行地为每个客户端运行一局
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/palemoky/mine-sweeper/internal/config"
	"github.com/palemoky/mine-sweeper/internal/game/board"
	"github.com/palemoky/mine-sweeper/internal/game/session"
	"github.com/palemoky/mine-sweeper/internal/logger"
	"github.com/palemoky/mine-sweeper/internal/network/server/storage"
	"github.com/palemoky/mine-sweeper/internal/network/transport"
)

const recordTimeout = 5 * time.Second

// ResultRecorder 对局结果的统计出口
type ResultRecorder interface {
	RecordResult(ctx context.Context, rec *storage.GameRecord) error
	GetStats(ctx context.Context) (*storage.Stats, error)
}

// Server 扫雷服务端，同一时间只服务一个连接
type Server struct {
	config   *config.Config
	source   board.Source
	recorder ResultRecorder

	mu       sync.Mutex
	listener transport.Listener
	active   transport.Conn
	closed   bool

	games int
}

// NewServer 创建服务器实例，recorder 可以为 nil
func NewServer(cfg *config.Config, source board.Source, recorder ResultRecorder) *Server {
	return &Server{
		config:   cfg,
		source:   source,
		recorder: recorder,
	}
}

// Listen 预加载棋盘并绑定端口
func (s *Server) Listen() error {
	ref, err := s.source.Load()
	if err != nil {
		return err
	}
	logger.LogInfo("📋 参考棋盘 (%d 个雷):\n%s", ref.MineCount(), ref.String())

	ln, err := transport.Listen(s.config.Server.Transport, s.config.Server.IPVersion, s.config.Server.Port)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	logger.LogInfo("🚀 服务器启动在 %s (%s, %s)", ln.Addr(), s.config.Server.Transport, s.config.Server.IPVersion)
	return nil
}

// Addr 监听地址，Listen 之前为 nil
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Games 已结束的对局数
func (s *Server) Games() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games
}

// Serve 逐个接受连接直到 ctx 取消、Shutdown 或（单局模式下）第一局结束。
// 棋盘重新加载失败是致命错误。
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
		s.mu.Lock()
		ln = s.listener
		s.mu.Unlock()
	}

	stop := context.AfterFunc(ctx, s.Shutdown)
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		if err := s.serveConn(ctx, conn); err != nil {
			s.Shutdown()
			return err
		}

		if !s.config.Server.AcceptLoop {
			logger.LogInfo("👋 单局模式，服务器退出")
			s.Shutdown()
			return nil
		}
	}
}

// serveConn 在一个连接上运行一局：收一条、回至多一条
func (s *Server) serveConn(ctx context.Context, conn transport.Conn) error {
	if !s.setActive(conn) {
		_ = conn.Close()
		return nil
	}
	defer s.setActive(nil)
	defer conn.Close()

	remote := conn.RemoteAddr()
	sess := session.New(s.source)
	log := logger.L().With().Str("session", sess.ID).Str("remote", remote).Logger()
	log.Info().Msg("🔗 客户端已连接")

	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			sess.Exit()
			s.finishGame(ctx, remote, sess)
		}
	}()

	for !sess.State().IsTerminal() {
		req, err := conn.ReadAction()
		if err != nil {
			log.Info().Err(err).Msg("🔌 连接断开")
			sess.Exit()
			break
		}

		reply, err := sess.Handle(req)
		if err != nil {
			if errors.Is(err, session.ErrSessionOver) {
				break
			}
			log.Error().Err(err).Msg("加载棋盘失败")
			return err
		}
		if reply == nil {
			log.Info().Msg("👋 客户端退出")
			continue
		}

		if err := conn.WriteAction(*reply); err != nil {
			log.Info().Err(err).Msg("🔌 发送失败，连接断开")
			sess.Exit()
		}
	}

	s.finishGame(ctx, remote, sess)
	return nil
}

// finishGame 记录日志和统计
func (s *Server) finishGame(ctx context.Context, remote string, sess *session.Session) {
	sum := sess.Summary()

	s.mu.Lock()
	s.games++
	s.mu.Unlock()

	logger.L().Info().
		Str("session", sum.ID).
		Str("remote", remote).
		Str("outcome", sum.State.String()).
		Int("moves", sum.Moves).
		Dur("duration", sum.Duration).
		Msg("🏁 对局结束")

	if s.recorder == nil {
		return
	}

	// 关机时也要写完最后一局
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	rec := &storage.GameRecord{
		ID:        sum.ID,
		Outcome:   outcomeOf(sum.State),
		Moves:     sum.Moves,
		StartedAt: sum.StartedAt,
		Duration:  sum.Duration,
		Remote:    remote,
		Reference: sum.Reference,
	}
	if err := s.recorder.RecordResult(rctx, rec); err != nil {
		logger.LogError("记录对局结果失败: %v", err)
		return
	}

	stats, err := s.recorder.GetStats(rctx)
	if err != nil {
		logger.LogError("读取统计失败: %v", err)
		return
	}
	logger.LogInfo("📊 累计 %d 局: 胜 %d, 负 %d, 断线 %d", stats.Games, stats.Won, stats.Lost, stats.Disconnected)
}

func outcomeOf(state session.State) string {
	switch state {
	case session.StateWon:
		return storage.OutcomeWon
	case session.StateLost:
		return storage.OutcomeLost
	default:
		return storage.OutcomeDisconnected
	}
}

func (s *Server) setActive(conn transport.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conn != nil && s.closed {
		return false
	}
	s.active = conn
	return true
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Shutdown 关闭监听和当前连接，可重复调用
func (s *Server) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	ln, active := s.listener, s.active
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	if active != nil {
		_ = active.Close()
	}
	logger.LogInfo("服务器已关闭")
}
