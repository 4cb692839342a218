package audio

import (
	"math"
	"testing"

	"github.com/san-kum/dpend/internal/pendulum"
)

func buffers(n int) [][]float32 {
	return [][]float32{make([]float32, n), make([]float32, n)}
}

func peak(out [][]float32) float64 {
	var p float64
	for _, ch := range out {
		for _, v := range ch {
			p = math.Max(p, math.Abs(float64(v)))
		}
	}
	return p
}

func TestSynthSilentAtRest(t *testing.T) {
	s := NewSynth(SampleRate)
	s.Update(pendulum.State{Theta2: 2})
	out := buffers(BufferSize)
	s.Fill(out)
	if p := peak(out); p != 0 {
		t.Errorf("expected silence at rest, got peak %f", p)
	}
}

func TestSynthPlaysWhenMoving(t *testing.T) {
	s := NewSynth(SampleRate)
	s.Update(pendulum.State{Omega1: 4, Omega2: 8})
	out := buffers(BufferSize)
	for range 10 {
		s.Fill(out)
	}
	p := peak(out)
	if p == 0 {
		t.Fatal("expected sound from a moving pendulum")
	}
	if p > 1 {
		t.Errorf("output clips: peak %f", p)
	}
}

func TestSynthMutesNonFinite(t *testing.T) {
	s := NewSynth(SampleRate)
	s.Update(pendulum.State{Omega1: 8, Omega2: 8})
	out := buffers(BufferSize)
	s.Fill(out)

	s.Update(pendulum.State{Omega1: math.NaN()})
	for range 100 {
		s.Fill(out)
	}
	if p := peak(out); p > 1e-3 {
		t.Errorf("expected fade to silence, got peak %f", p)
	}
	for _, v := range out[0] {
		if math.IsNaN(float64(v)) {
			t.Fatal("NaN sample")
		}
	}
}

func TestSynthFaster(t *testing.T) {
	s := NewSynth(SampleRate)
	s.Update(pendulum.State{Omega1: 100})
	s.Fill(buffers(BufferSize))
	if s.level[0] > 1 {
		t.Errorf("level exceeds full scale: %f", s.level[0])
	}
	if s.level[1] != 0 {
		t.Errorf("idle voice moved: %f", s.level[1])
	}
}

func TestSynthIgnoresMonoBuffer(t *testing.T) {
	s := NewSynth(SampleRate)
	s.Fill([][]float32{make([]float32, 8)})
}
