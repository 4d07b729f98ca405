package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/mine-sweeper/internal/game/board"
)

var scenarioBoard = board.Grid{
	{0, 1, -1, 1},
	{1, 2, 2, 1},
	{0, 1, -1, 1},
	{0, 0, 1, 1},
}

func TestGameRecord_MarshalUnmarshal(t *testing.T) {
	t.Parallel()

	started := time.UnixMilli(1_760_000_000_123)
	rec := &GameRecord{
		ID:        "3f1c7c1e-0000-4000-8000-000000000001",
		Outcome:   OutcomeLost,
		Moves:     2,
		StartedAt: started,
		Duration:  1500 * time.Millisecond,
		Remote:    "127.0.0.1:50000",
		Reference: scenarioBoard,
	}

	got, err := UnmarshalRecord(rec.Marshal())
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Outcome, got.Outcome)
	assert.Equal(t, rec.Moves, got.Moves)
	assert.True(t, rec.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, rec.Duration, got.Duration)
	assert.Equal(t, rec.Remote, got.Remote)
	assert.Equal(t, scenarioBoard, got.Reference)
}

func TestGameRecord_EmptyRemoteOmitted(t *testing.T) {
	t.Parallel()

	rec := &GameRecord{ID: "x", Outcome: OutcomeWon, StartedAt: time.UnixMilli(0)}
	got, err := UnmarshalRecord(rec.Marshal())
	require.NoError(t, err)
	assert.Empty(t, got.Remote)
	assert.Equal(t, board.Grid{}, got.Reference)
}

func TestUnmarshalRecord_SkipsUnknownFields(t *testing.T) {
	t.Parallel()

	rec := &GameRecord{ID: "abc", Outcome: OutcomeWon, Reference: scenarioBoard}
	data := rec.Marshal()
	data = protowire.AppendTag(data, 99, protowire.VarintType)
	data = protowire.AppendVarint(data, 12345)

	got, err := UnmarshalRecord(data)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, scenarioBoard, got.Reference)
}

func TestUnmarshalRecord_Errors(t *testing.T) {
	t.Parallel()

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()
		data := (&GameRecord{ID: "abcdef", Outcome: OutcomeWon}).Marshal()
		_, err := UnmarshalRecord(data[:4])
		assert.Error(t, err)
	})

	t.Run("short board", func(t *testing.T) {
		t.Parallel()
		var cells []byte
		for range 3 {
			cells = protowire.AppendVarint(cells, protowire.EncodeZigZag(1))
		}
		data := protowire.AppendTag(nil, fieldReference, protowire.BytesType)
		data = protowire.AppendBytes(data, cells)

		_, err := UnmarshalRecord(data)
		assert.ErrorIs(t, err, errTruncatedBoard)
	})
}
