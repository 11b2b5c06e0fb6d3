package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const minSamples = 8

var (
	ErrTooShort = errors.New("analysis: series too short")
	ErrNoPeriod = errors.New("analysis: no periodic component")
)

// PowerSpectrum returns |X_k| for k in [0, n/2) of the mean-removed series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period, in samples, of the strongest
// non-constant frequency in data.
func DominantPeriod(data []float64) (float64, error) {
	if len(data) < minSamples {
		return 0, ErrTooShort
	}

	ps := PowerSpectrum(data)
	peak, peakIdx := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > peak {
			peak, peakIdx = ps[k], k
		}
	}
	if peakIdx == 0 || peak < 1e-9 {
		return 0, ErrNoPeriod
	}
	return float64(len(data)) / float64(peakIdx), nil
}
