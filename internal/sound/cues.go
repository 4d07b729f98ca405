package sound

// 音效名，对应 assets/sounds 下的同名文件；文件不存在时使用合成音
const (
	Reveal = "reveal"
	Flag   = "flag"
	Win    = "win"
	Lose   = "lose"
	Error  = "error"
)

// tone 一个音符：频率（Hz）和时长（毫秒），频率为 0 表示静音
type tone struct {
	freq float64
	ms   int
}

var cueTones = map[string][]tone{
	Reveal: {{880, 40}},
	Flag:   {{660, 60}},
	Error:  {{220, 120}},
	Win:    {{523.25, 120}, {659.25, 120}, {783.99, 200}},
	Lose:   {{392, 150}, {0, 30}, {311.13, 150}, {0, 30}, {233.08, 300}},
}
