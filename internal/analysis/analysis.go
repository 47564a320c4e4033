// Package analysis extracts frequency content from stored particle
// traces: a settling ball's bounce rhythm, a thrown ball's wall
// cadence.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided magnitude spectrum of samples
// taken dt apart, with the matching frequency axis in Hz. The mean is
// removed first so the DC bin does not swamp the motion peaks.
func PowerSpectrum(samples []float64, dt float64) (freqs, power []float64) {
	n := len(samples)
	if n < 2 || dt <= 0 {
		return nil, nil
	}

	mean := 0.0
	for _, s := range samples {
		mean += s
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, s := range samples {
		centered[i] = s - mean
	}

	spec := fft.FFTReal(centered)
	half := n / 2
	freqs = make([]float64, half)
	power = make([]float64, half)
	for i := 0; i < half; i++ {
		freqs[i] = float64(i) / (float64(n) * dt)
		power[i] = cmplx.Abs(spec[i])
	}
	return freqs, power
}

// DominantFrequency picks the strongest non-DC bin. Zero magnitude
// means the trace had no periodic content.
func DominantFrequency(freqs, power []float64) (hz, magnitude float64) {
	for i := 1; i < len(power); i++ {
		if power[i] > magnitude {
			magnitude = power[i]
			hz = freqs[i]
		}
	}
	return hz, magnitude
}
