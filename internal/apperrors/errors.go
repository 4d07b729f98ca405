package apperrors

import (
	"github.com/palemoky/mine-sweeper/internal/network/protocol"
)

// GameError 游戏错误（服务端会话和客户端预校验共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrUnknownCommand  = &GameError{Code: protocol.ErrCodeUnknownCommand, Message: protocol.ErrorMessages[protocol.ErrCodeUnknownCommand]}
	ErrInvalidCell     = &GameError{Code: protocol.ErrCodeInvalidCell, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidCell]}
	ErrAlreadyRevealed = &GameError{Code: protocol.ErrCodeAlreadyRevealed, Message: protocol.ErrorMessages[protocol.ErrCodeAlreadyRevealed]}
	ErrAlreadyFlagged  = &GameError{Code: protocol.ErrCodeAlreadyFlagged, Message: protocol.ErrorMessages[protocol.ErrCodeAlreadyFlagged]}
	ErrFlagRevealed    = &GameError{Code: protocol.ErrCodeFlagRevealed, Message: protocol.ErrorMessages[protocol.ErrCodeFlagRevealed]}
	ErrGameNotStarted  = &GameError{Code: protocol.ErrCodeGameNotStarted, Message: protocol.ErrorMessages[protocol.ErrCodeGameNotStarted]}
	ErrInvalidArgs     = &GameError{Code: protocol.ErrCodeInvalidArgs, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidArgs]}
)

var byCode = map[int]*GameError{
	protocol.ErrCodeUnknownCommand:  ErrUnknownCommand,
	protocol.ErrCodeInvalidCell:     ErrInvalidCell,
	protocol.ErrCodeAlreadyRevealed: ErrAlreadyRevealed,
	protocol.ErrCodeAlreadyFlagged:  ErrAlreadyFlagged,
	protocol.ErrCodeFlagRevealed:    ErrFlagRevealed,
	protocol.ErrCodeGameNotStarted:  ErrGameNotStarted,
	protocol.ErrCodeInvalidArgs:     ErrInvalidArgs,
}

// FromCode 根据服务端回复的错误码还原错误，未知错误码返回新的 GameError
func FromCode(code int) *GameError {
	if err, ok := byCode[code]; ok {
		return err
	}
	return &GameError{Code: code, Message: "unknown error"}
}
