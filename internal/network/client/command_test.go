package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mine-sweeper/internal/apperrors"
	"github.com/palemoky/mine-sweeper/internal/network/protocol"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want Command
	}{
		{"start", Command{Kind: CmdStart}},
		{"  START  ", Command{Kind: CmdStart}},
		{"reveal 1,2", Command{Kind: CmdReveal, Row: 1, Col: 2}},
		{"reveal 1, 2", Command{Kind: CmdReveal, Row: 1, Col: 2}},
		{"flag 3,0", Command{Kind: CmdFlag, Row: 3, Col: 0}},
		{"remove_flag 0,3", Command{Kind: CmdRemoveFlag, Row: 0, Col: 3}},
		{"reveal 9,9", Command{Kind: CmdReveal, Row: 9, Col: 9}},
		{"reveal -1,0", Command{Kind: CmdReveal, Row: -1, Col: 0}},
		{"reset", Command{Kind: CmdReset}},
		{"exit", Command{Kind: CmdExit}},
		{"help", Command{Kind: CmdHelp}},
		{"board", Command{Kind: CmdBoard}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want error
	}{
		{"", apperrors.ErrUnknownCommand},
		{"   ", apperrors.ErrUnknownCommand},
		{"dig 1,1", apperrors.ErrUnknownCommand},
		{"reveal", apperrors.ErrInvalidArgs},
		{"reveal 1", apperrors.ErrInvalidArgs},
		{"reveal 1,2,3", apperrors.ErrInvalidArgs},
		{"reveal a,b", apperrors.ErrInvalidArgs},
		{"flag 1,", apperrors.ErrInvalidArgs},
		{"start now", apperrors.ErrInvalidArgs},
	}

	for _, tt := range tests {
		_, err := ParseCommand(tt.line)
		assert.ErrorIs(t, err, tt.want, tt.line)
	}
}

func TestCommand_Action(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  Command
		want protocol.Action
	}{
		{Command{Kind: CmdStart}, protocol.NewAction(protocol.ActionStart)},
		{Command{Kind: CmdReveal, Row: 1, Col: 2}, protocol.NewCellAction(protocol.ActionReveal, 1, 2)},
		{Command{Kind: CmdFlag, Row: 2, Col: 3}, protocol.NewCellAction(protocol.ActionFlag, 2, 3)},
		{Command{Kind: CmdRemoveFlag, Row: 0, Col: 1}, protocol.NewCellAction(protocol.ActionRemoveFlag, 0, 1)},
		{Command{Kind: CmdReset}, protocol.NewAction(protocol.ActionReset)},
		{Command{Kind: CmdExit}, protocol.NewAction(protocol.ActionExit)},
	}
	for _, tt := range tests {
		got, ok := tt.cmd.Action()
		assert.True(t, ok)
		assert.Equal(t, tt.want, got)
	}

	_, ok := Command{Kind: CmdHelp}.Action()
	assert.False(t, ok)
	_, ok = Command{Kind: CmdBoard}.Action()
	assert.False(t, ok)
}

func TestCommandKind_Predicates(t *testing.T) {
	t.Parallel()

	assert.True(t, CmdReveal.HasCoordinates())
	assert.True(t, CmdRemoveFlag.HasCoordinates())
	assert.False(t, CmdStart.HasCoordinates())
	assert.True(t, CmdHelp.IsLocal())
	assert.True(t, CmdBoard.IsLocal())
	assert.False(t, CmdExit.IsLocal())
}
