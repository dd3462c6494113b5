package audio

import (
	"log"
	"os"
	"strconv"

	"github.com/lixenwraith/mission/core"
	"github.com/sugawarayuuta/sonnet"
)

// Environment variables read by LoadAudioConfig
const (
	EnvAudioEnabled = "MISSION_AUDIO_ENABLED"
	EnvMasterVolume = "MISSION_MASTER_VOLUME"
	EnvSFXVolumes   = "MISSION_SFX_VOLUMES"
	EnvSampleRate   = "MISSION_SAMPLE_RATE"
)

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	SampleRate    int
	EffectVolumes map[core.SoundType]float64
}

// DefaultAudioConfig returns the built-in settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		EffectVolumes: map[core.SoundType]float64{
			core.SoundPathReady: 0.6,
			core.SoundNoRoute:   0.8,
			core.SoundSpawn:     0.4,
			core.SoundArrive:    1.0,
		},
	}
}

// LoadAudioConfig overlays environment variables on the defaults
// Malformed values are ignored
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 mapped to 0.0-1.0
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clamp01(float64(val) / 100.0)
		}
	}

	// JSON object keyed by sound name, e.g. {"arrive":0.5,"no_route":1}
	if effectVols := os.Getenv(EnvSFXVolumes); effectVols != "" {
		var volumes map[string]float64
		if err := sonnet.Unmarshal([]byte(effectVols), &volumes); err != nil {
			log.Printf("audio: ignoring %s: %v", EnvSFXVolumes, err)
		} else {
			for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
				if v, ok := volumes[st.String()]; ok {
					cfg.EffectVolumes[st] = clamp01(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
