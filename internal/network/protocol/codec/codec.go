// Package codec encodes Actions into the fixed 76-byte wire frame.
//
// Layout (little-endian int32 words):
//
//	word 0       type
//	word 1..2    row, col
//	word 3..18   board, row-major (row 0 col 0 first)
package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/palemoky/mine-sweeper/internal/game/board"
	"github.com/palemoky/mine-sweeper/internal/network/protocol"
)

const (
	wordSize = 4
	words    = 1 + 2 + board.CellCount

	// FrameSize is the size in bytes of one encoded Action.
	FrameSize = words * wordSize
)

var byteOrder = binary.LittleEndian

// Put encodes a into buf.
func Put(buf *[FrameSize]byte, a protocol.Action) {
	byteOrder.PutUint32(buf[0:], uint32(a.Type))
	byteOrder.PutUint32(buf[4:], uint32(a.Coordinates[0]))
	byteOrder.PutUint32(buf[8:], uint32(a.Coordinates[1]))

	off := 12
	for r := range board.Size {
		for c := range board.Size {
			byteOrder.PutUint32(buf[off:], uint32(a.Board[r][c]))
			off += wordSize
		}
	}
}

// Get decodes an Action from buf.
func Get(buf *[FrameSize]byte) protocol.Action {
	var a protocol.Action
	a.Type = protocol.ActionType(int32(byteOrder.Uint32(buf[0:])))
	a.Coordinates[0] = int32(byteOrder.Uint32(buf[4:]))
	a.Coordinates[1] = int32(byteOrder.Uint32(buf[8:]))

	off := 12
	for r := range board.Size {
		for c := range board.Size {
			a.Board[r][c] = board.Cell(int32(byteOrder.Uint32(buf[off:])))
			off += wordSize
		}
	}
	return a
}

// Encode returns the frame for a as a new slice.
func Encode(a protocol.Action) []byte {
	var buf [FrameSize]byte
	Put(&buf, a)
	return buf[:]
}

// Decode parses exactly one frame.
func Decode(data []byte) (protocol.Action, error) {
	if len(data) != FrameSize {
		return protocol.Action{}, fmt.Errorf("frame size %d, want %d: %w", len(data), FrameSize, io.ErrUnexpectedEOF)
	}
	var buf [FrameSize]byte
	copy(buf[:], data)
	return Get(&buf), nil
}

// WriteAction writes one frame to w.
func WriteAction(w io.Writer, a protocol.Action) error {
	buf := GetFrame()
	defer PutFrame(buf)

	Put(buf, a)
	_, err := w.Write(buf[:])
	return err
}

// ReadAction reads one full frame from r. A frame cut short returns
// io.ErrUnexpectedEOF; a stream closed on a frame boundary returns io.EOF.
func ReadAction(r io.Reader) (protocol.Action, error) {
	buf := GetFrame()
	defer PutFrame(buf)

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return protocol.Action{}, err
	}
	return Get(buf), nil
}
