//go:build !ci

package sound

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	sampleRate = beep.SampleRate(44100)
	soundDir   = "assets/sounds"
	volume     = 0.25
)

var stereo = beep.Format{
	SampleRate:  sampleRate,
	NumChannels: 2,
	Precision:   4,
}

type SoundManager struct {
	buffers map[string]*beep.Buffer
	enabled bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		buffers: make(map[string]*beep.Buffer),
		enabled: false,
	}
}

func (sm *SoundManager) Init() error {
	// Init speaker with smaller buffer for lower latency
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	sm.enabled = true

	sm.buffers = synthesizeCues()
	return sm.loadSoundFiles(soundDir)
}

// synthesizeCues 为每个音效生成内置的提示音
func synthesizeCues() map[string]*beep.Buffer {
	buffers := make(map[string]*beep.Buffer, len(cueTones))
	for name, tones := range cueTones {
		parts := make([]beep.Streamer, 0, len(tones))
		for _, t := range tones {
			parts = append(parts, beep.Take(sampleRate.N(time.Duration(t.ms)*time.Millisecond), sine(t.freq)))
		}
		buffer := beep.NewBuffer(stereo)
		buffer.Append(beep.Seq(parts...))
		buffers[name] = buffer
	}
	return buffers
}

// sine 无限长的正弦波，freq 为 0 时输出静音
func sine(freq float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sampleRate)
	var phase float64
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			v := volume * math.Sin(phase)
			samples[i][0], samples[i][1] = v, v
			phase += step
		}
		return len(samples), true
	})
}

// loadSoundFiles 用目录中的 mp3/wav 覆盖合成音，目录不存在不算错误
func (sm *SoundManager) loadSoundFiles(dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}

		buffer, err := loadSoundFile(filepath.Join(dir, name), ext)
		if err != nil {
			// Continue loading other files even if one fails
			continue
		}
		sm.buffers[strings.TrimSuffix(name, filepath.Ext(name))] = buffer
	}
	return nil
}

func loadSoundFile(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported sound format %s", ext)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(stereo)
	buffer.Append(resampled)
	return buffer, nil
}

func (sm *SoundManager) Play(name string) {
	if !sm.enabled {
		return
	}

	buffer, ok := sm.buffers[name]
	if !ok {
		// Silent failure if sound not found
		return
	}

	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.enabled = false
}
