package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrShortSignal = errors.New("analysis: signal needs at least two samples")

// Spectrum is a one-sided power spectrum. Power[i] belongs to Freqs[i] in Hz.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum returns the one-sided power spectrum of samples taken every
// dt seconds. The mean is removed first so the DC bin does not swamp the
// oscillation. Any length is accepted.
func PowerSpectrum(samples []float64, dt float64) (*Spectrum, error) {
	n := len(samples)
	if n < 2 {
		return nil, ErrShortSignal
	}
	if !(dt > 0) {
		return nil, errors.New("analysis: sample interval must be positive")
	}

	centered := make([]float64, n)
	copy(centered, samples)
	floats.AddConst(-stat.Mean(samples, nil), centered)

	coeffs := fft.FFTReal(centered)
	half := n/2 + 1
	spec := &Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	df := 1 / (float64(n) * dt)
	for k := 0; k < half; k++ {
		a := cmplx.Abs(coeffs[k])
		spec.Freqs[k] = float64(k) * df
		spec.Power[k] = a * a / float64(n)
	}
	return spec, nil
}

// Peak returns the frequency with the largest power, ignoring the DC bin.
func (s *Spectrum) Peak() (freq, power float64) {
	if len(s.Power) < 2 {
		return 0, 0
	}
	i := floats.MaxIdx(s.Power[1:]) + 1
	return s.Freqs[i], s.Power[i]
}

// DominantPeriod is 1/Peak, or +Inf for a flat signal.
func (s *Spectrum) DominantPeriod() float64 {
	f, p := s.Peak()
	if f == 0 || p == 0 {
		return math.Inf(1)
	}
	return 1 / f
}
