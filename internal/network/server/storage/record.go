package storage

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/mine-sweeper/internal/game/board"
)

// 结局
const (
	OutcomeWon          = "won"
	OutcomeLost         = "lost"
	OutcomeDisconnected = "disconnected"
)

// GameRecord 一局游戏的结果记录
type GameRecord struct {
	ID        string
	Outcome   string
	Moves     int
	StartedAt time.Time
	Duration  time.Duration
	Remote    string
	Reference board.Grid
}

// 字段编号
const (
	fieldID        protowire.Number = 1
	fieldOutcome   protowire.Number = 2
	fieldMoves     protowire.Number = 3
	fieldStartedAt protowire.Number = 4 // unix 毫秒
	fieldDuration  protowire.Number = 5 // 毫秒
	fieldRemote    protowire.Number = 6
	fieldReference protowire.Number = 7 // packed zigzag，行优先
)

var errTruncatedBoard = errors.New("reference board has fewer than 16 cells")

// Marshal 编码为 protobuf wire 格式
func (r *GameRecord) Marshal() []byte {
	b := make([]byte, 0, 64+board.CellCount)

	b = protowire.AppendTag(b, fieldID, protowire.BytesType)
	b = protowire.AppendString(b, r.ID)
	b = protowire.AppendTag(b, fieldOutcome, protowire.BytesType)
	b = protowire.AppendString(b, r.Outcome)
	b = protowire.AppendTag(b, fieldMoves, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Moves))
	b = protowire.AppendTag(b, fieldStartedAt, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(r.StartedAt.UnixMilli()))
	b = protowire.AppendTag(b, fieldDuration, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Duration.Milliseconds()))
	if r.Remote != "" {
		b = protowire.AppendTag(b, fieldRemote, protowire.BytesType)
		b = protowire.AppendString(b, r.Remote)
	}

	var cells []byte
	for row := range board.Size {
		for col := range board.Size {
			cells = protowire.AppendVarint(cells, protowire.EncodeZigZag(int64(r.Reference[row][col])))
		}
	}
	b = protowire.AppendTag(b, fieldReference, protowire.BytesType)
	b = protowire.AppendBytes(b, cells)
	return b
}

// UnmarshalRecord 解码，未知字段跳过
func UnmarshalRecord(b []byte) (*GameRecord, error) {
	r := &GameRecord{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("decode tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldID && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("decode id: %w", protowire.ParseError(n))
			}
			r.ID = v
			b = b[n:]
		case num == fieldOutcome && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("decode outcome: %w", protowire.ParseError(n))
			}
			r.Outcome = v
			b = b[n:]
		case num == fieldMoves && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("decode moves: %w", protowire.ParseError(n))
			}
			r.Moves = int(v)
			b = b[n:]
		case num == fieldStartedAt && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("decode started_at: %w", protowire.ParseError(n))
			}
			r.StartedAt = time.UnixMilli(protowire.DecodeZigZag(v))
			b = b[n:]
		case num == fieldDuration && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("decode duration: %w", protowire.ParseError(n))
			}
			r.Duration = time.Duration(v) * time.Millisecond
			b = b[n:]
		case num == fieldRemote && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("decode remote: %w", protowire.ParseError(n))
			}
			r.Remote = v
			b = b[n:]
		case num == fieldReference && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("decode reference: %w", protowire.ParseError(n))
			}
			grid, err := decodeCells(v)
			if err != nil {
				return nil, err
			}
			r.Reference = grid
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("skip field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return r, nil
}

func decodeCells(b []byte) (board.Grid, error) {
	var g board.Grid
	for i := range board.CellCount {
		if len(b) == 0 {
			return g, errTruncatedBoard
		}
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return g, fmt.Errorf("decode cell %d: %w", i, protowire.ParseError(n))
		}
		g[i/board.Size][i%board.Size] = board.Cell(protowire.DecodeZigZag(v))
		b = b[n:]
	}
	return g, nil
}
