// Package audio turns the pendulum's motion into sound: one voice per bob,
// pitch and loudness following its angular velocity.
package audio

import (
	"math"
	"sync"

	"github.com/san-kum/dpend/internal/pendulum"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// A3 and E4, a fifth apart.
var baseFreqs = [2]float64{220.00, 329.63}

// Synth renders stereo samples from the latest pendulum state. Update may be
// called from the simulation goroutine while Fill runs on the audio thread.
type Synth struct {
	mu     sync.Mutex
	target [2]float64 // |ω| per bob

	// Volume is the master gain. OmegaScale is the angular speed, in rad/s,
	// at which a voice reaches full loudness and one octave above its base.
	Volume     float64
	OmegaScale float64

	rate   float64
	phase  [2]float64
	level  [2]float64 // smoothed |ω| / OmegaScale
	filter [2]float64 // stereo LPF state
	delay  [2][]float64
	head   int
}

func NewSynth(rate float64) *Synth {
	if rate <= 0 {
		rate = SampleRate
	}
	// 0.35 s echo
	n := int(rate * 0.35)
	return &Synth{
		Volume:     0.25,
		OmegaScale: 8,
		rate:       rate,
		delay:      [2][]float64{make([]float64, n), make([]float64, n)},
	}
}

func (s *Synth) Rate() float64 { return s.rate }

// Update sets the state the next samples follow. A non-finite state mutes
// both voices.
func (s *Synth) Update(st pendulum.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !st.IsFinite() {
		s.target = [2]float64{}
		return
	}
	s.target = [2]float64{math.Abs(st.Omega1), math.Abs(st.Omega2)}
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Fill writes len(out[0]) frames into the two channels of out. The upper bob
// leans left and the lower bob right.
func (s *Synth) Fill(out [][]float32) {
	if len(out) < 2 {
		return
	}
	s.mu.Lock()
	target := s.target
	s.mu.Unlock()

	for v := range target {
		target[v] = math.Min(target[v]/s.OmegaScale, 1)
	}

	dt := 1 / s.rate
	// about 20 ms to settle
	smooth := 1 - math.Exp(-dt/0.02)

	for i := range out[0] {
		var voice [2]float64
		for v := range voice {
			s.level[v] += (target[v] - s.level[v]) * smooth
			freq := baseFreqs[v] * math.Exp2(s.level[v])
			s.phase[v] += freq * dt
			s.phase[v] -= math.Floor(s.phase[v])
			voice[v] = triangle(s.phase[v]) * s.level[v]
		}

		left := 0.7*voice[0] + 0.3*voice[1]
		right := 0.3*voice[0] + 0.7*voice[1]

		// faster motion opens the filter
		cutoff := 400 + 1600*math.Max(s.level[0], s.level[1])
		s.filter[0] = lpf(left, cutoff, dt, s.filter[0])
		s.filter[1] = lpf(right, cutoff, dt, s.filter[1])

		dl, dr := s.delay[0][s.head], s.delay[1][s.head]
		mixL := s.filter[0] + dl*0.3 + dr*0.1
		mixR := s.filter[1] + dr*0.3 + dl*0.1
		s.delay[0][s.head] = mixL * 0.5
		s.delay[1][s.head] = mixR * 0.5
		s.head = (s.head + 1) % len(s.delay[0])

		out[0][i] = float32(mixL * s.Volume)
		out[1][i] = float32(mixR * s.Volume)
	}
}
