package protocol

// 错误码（通过 ActionError 回复的 Coordinates[0] 传输）
const (
	ErrCodeUnknownCommand  = 1
	ErrCodeInvalidCell     = 2
	ErrCodeAlreadyRevealed = 3
	ErrCodeAlreadyFlagged  = 4
	ErrCodeFlagRevealed    = 5
	ErrCodeGameNotStarted  = 6
	ErrCodeInvalidArgs     = 7 // 仅客户端本地解析使用
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknownCommand:  "unknown command",
	ErrCodeInvalidCell:     "invalid cell",
	ErrCodeAlreadyRevealed: "cell already revealed",
	ErrCodeAlreadyFlagged:  "cell already has a flag",
	ErrCodeFlagRevealed:    "cannot flag revealed cell",
	ErrCodeGameNotStarted:  "game not started",
	ErrCodeInvalidArgs:     "invalid arguments",
}
