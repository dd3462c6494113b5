package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/lixenwraith/mission/core"
)

// drain streams s to completion, returning total samples and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			peak = math.Max(peak, math.Max(math.Abs(buf[j][0]), math.Abs(buf[j][1])))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	waves := []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise}

	for _, w := range waves {
		n, peak := drain(t, NewOscillator(440, 100*time.Millisecond, w, rate))
		if n != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d: streamed %d samples, want %d", w, n, rate.N(100*time.Millisecond))
		}
		if peak > 1.0 {
			t.Errorf("wave %d: peak %f out of range", w, peak)
		}
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate) // constant 1.0
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	buf := make([][2]float64, 1000)
	n, _ := env.Stream(buf)
	if n != 1000 {
		t.Fatalf("streamed %d samples", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("attack should start silent, got %f", buf[0][0])
	}
	if buf[500][0] != 1 {
		t.Errorf("sustain should be full volume, got %f", buf[500][0])
	}
	if buf[999][0] > 0.02 {
		t.Errorf("release should end near silence, got %f", buf[999][0])
	}

	if n, ok := env.Stream(buf); n != 0 || ok {
		t.Errorf("drained envelope returned %d, %v", n, ok)
	}
}

func TestEffectForEverySound(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 1
	for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
		s := Effect(st, cfg)
		if s == nil {
			t.Fatalf("no effect for %s", st)
		}
		n, peak := drain(t, s)
		if n == 0 {
			t.Errorf("%s produced no samples", st)
		}
		if peak > 1.0 || peak == 0 {
			t.Errorf("%s peak %f", st, peak)
		}
	}

	if Effect(core.SoundTypeCount, cfg) != nil {
		t.Error("unknown sound should have no effect")
	}
}

func TestEffectSilentVolume(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.EffectVolumes[core.SoundArrive] = 0
	_, peak := drain(t, Effect(core.SoundArrive, cfg))
	if peak != 0 {
		t.Errorf("zero volume produced peak %f", peak)
	}
}
