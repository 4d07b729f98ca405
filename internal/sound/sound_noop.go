//go:build ci

package sound

// SoundManager ci 构建下没有音频设备，所有音效静默
type SoundManager struct{}

func NewSoundManager() *SoundManager { return &SoundManager{} }

func (sm *SoundManager) Init() error { return nil }

func (sm *SoundManager) Play(string) {}

func (sm *SoundManager) Close() {}
