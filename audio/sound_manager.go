package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/mission/core"
)

// minRepeat suppresses the same effect retriggering within one frame burst
const minRepeat = 50 * time.Millisecond

// SoundManager plays effects through a single mixer on the system speaker
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	lastPlayed  [core.SoundTypeCount]time.Time
	muted       bool
	initialized bool

	now func() time.Time
}

// NewSoundManager creates an uninitialized manager; every call is a no-op until Initialize succeeds
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize opens the speaker and attaches the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Play starts an effect, returning false if it was dropped
func (sm *SoundManager) Play(st core.SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.admit(st) {
		return false
	}

	s := Effect(st, sm.cfg)
	if s == nil {
		return false
	}
	if sm.initialized {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
	return true
}

// admit applies mute and the repeat window; caller holds mu
func (sm *SoundManager) admit(st core.SoundType) bool {
	if sm.muted || st < 0 || st >= core.SoundTypeCount {
		return false
	}
	now := sm.now()
	if last := sm.lastPlayed[st]; !last.IsZero() && now.Sub(last) < minRepeat {
		return false
	}
	sm.lastPlayed[st] = now
	return true
}

// ToggleMute flips the mute state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// IsMuted reports the mute state
func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// IsRunning reports whether the speaker is open
func (sm *SoundManager) IsRunning() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}
