package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/lixenwraith/mission/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Effect timings
const (
	pathNoteDuration = 60 * time.Millisecond
	noRouteDuration  = 180 * time.Millisecond
	spawnDuration    = 90 * time.Millisecond
	arriveDuration   = 400 * time.Millisecond
	attackTime       = 5 * time.Millisecond
)

// oscillator produces a fixed-length raw waveform
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer emitting duration worth of wave at freq
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps a stream in over attack and out over release
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	totalSamples int
}

// NewEnvelope shapes s with a linear attack and release across duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:     s,
		attack:       rate.N(attack),
		release:      rate.N(release),
		totalSamples: rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.release

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; math.Log2(0) is -Inf, so zero becomes silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attackTime, d/2, rate)
}

// pathReadySound is a rising two-note blip (E5, A5)
func pathReadySound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(659.25, pathNoteDuration, WaveSine, rate),
		tone(880.0, pathNoteDuration, WaveSine, rate),
	)
}

// noRouteSound is a low saw buzz
func noRouteSound(rate beep.SampleRate) beep.Streamer {
	return tone(110.0, noRouteDuration, WaveSaw, rate)
}

// spawnSound is a short noise burst
func spawnSound(rate beep.SampleRate) beep.Streamer {
	return tone(0, spawnDuration, WaveNoise, rate)
}

// arriveSound is a bell: fundamental A5 plus a quieter octave
func arriveSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(NewEnvelope(NewOscillator(880, arriveDuration, WaveSine, rate), arriveDuration, attackTime, arriveDuration*3/4, rate), 0.7),
		newVolume(NewEnvelope(NewOscillator(1760, arriveDuration, WaveSine, rate), arriveDuration, attackTime, arriveDuration/2, rate), 0.3),
	)
}

// Effect returns a fresh streamer for st at the configured volume, nil for unknown types
func Effect(st core.SoundType, cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch st {
	case core.SoundPathReady:
		s = pathReadySound(rate)
	case core.SoundNoRoute:
		s = noRouteSound(rate)
	case core.SoundSpawn:
		s = spawnSound(rate)
	case core.SoundArrive:
		s = arriveSound(rate)
	default:
		return nil
	}
	return newVolume(s, cfg.EffectVolumes[st]*cfg.MasterVolume)
}
