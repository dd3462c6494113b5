package audio

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/mission/core"
)

// AudioService wraps SoundManager as a Service
// A missing audio device disables playback instead of failing startup
type AudioService struct {
	manager  *SoundManager
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService() *AudioService {
	return &AudioService{}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// Reads the environment; a bool arg forces mute (true) or unmute (false)
func (s *AudioService) Init(args ...any) error {
	cfg := LoadAudioConfig()
	for _, arg := range args {
		if muted, ok := arg.(bool); ok {
			cfg.Enabled = !muted
			break
		}
	}

	s.manager = NewSoundManager(cfg)
	if !cfg.Enabled {
		s.disabled.Store(true)
	}
	return nil
}

// Start implements Service
func (s *AudioService) Start() error {
	if s.disabled.Load() || s.manager == nil {
		return nil
	}
	if err := s.manager.Initialize(); err != nil {
		log.Printf("audio: disabled: %v", err)
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.manager != nil {
		s.manager.Cleanup()
	}
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Player returns the playback surface, nil if disabled
func (s *AudioService) Player() AudioPlayer {
	if s.disabled.Load() || s.manager == nil {
		return nil
	}
	return s.manager
}

// PlayAll plays each queued event, returning how many were started
func (s *AudioService) PlayAll(sounds []core.SoundType) int {
	p := s.Player()
	if p == nil {
		return 0
	}
	n := 0
	for _, st := range sounds {
		if p.Play(st) {
			n++
		}
	}
	return n
}

// AudioPlayer is the minimal playback interface the front end uses
type AudioPlayer interface {
	Play(core.SoundType) bool
	ToggleMute() bool
	IsMuted() bool
	IsRunning() bool
}
