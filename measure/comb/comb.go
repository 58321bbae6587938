package comb

import (
	"errors"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-flange/dsp/core"
)

// Errors returned by comb response analysis functions.
var (
	ErrEmptyResponse     = errors.New("comb: impulse response is empty")
	ErrInvalidSampleRate = errors.New("comb: sample rate must be positive")
	ErrNoDirectPath      = errors.New("comb: no direct path found in impulse response")
)

// Peak detection and notch depth thresholds, relative to the direct path
// and the spectral passband level respectively.
const (
	minPeakRatio  = 1e-4
	minNotchDepth = 6.0 // dB
)

// Metrics holds comb response analysis results for a delay based effect.
type Metrics struct {
	DirectGain   float64 // amplitude of the direct path
	DirectIndex  int     // sample index of the direct path
	EchoDelay    float64 // seconds between direct path and first echo
	EchoGain     float64 // amplitude ratio of first echo to direct path
	DecayRatio   float64 // mean amplitude ratio between successive echoes
	EchoCount    int     // number of echoes above the detection threshold
	NotchSpacing float64 // Hz between adjacent magnitude notches
	NotchDepth   float64 // mean notch depth below the passband level in dB
	NotchCount   int     // number of detected magnitude notches
}

// Analyzer computes comb metrics from impulse response data.
type Analyzer struct {
	SampleRate float64

	// FFTSize overrides the transform length used for notch analysis.
	// When zero the next power of two covering the response is used.
	FFTSize int
}

// NewAnalyzer creates a comb analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all comb metrics from an impulse response. The echo
// train is measured in the time domain and the notch pattern from the
// magnitude spectrum.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyResponse
	}

	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	peaks := a.findPeaks(ir)
	if len(peaks) == 0 {
		return Metrics{}, ErrNoDirectPath
	}

	m := Metrics{
		DirectGain:  math.Abs(ir[peaks[0]]),
		DirectIndex: peaks[0],
		EchoCount:   len(peaks) - 1,
	}

	if len(peaks) > 1 {
		m.EchoDelay = float64(peaks[1]-peaks[0]) / a.SampleRate
		m.EchoGain = math.Abs(ir[peaks[1]]) / m.DirectGain
		m.DecayRatio = a.decayRatio(ir, peaks)
	}

	if err := a.analyzeNotches(ir, &m); err != nil {
		return Metrics{}, err
	}

	return m, nil
}

// findPeaks returns the indices of local maxima of |ir| that rise above
// minPeakRatio of the strongest sample. The first entry is the direct path.
func (a *Analyzer) findPeaks(ir []float64) []int {
	var maxAbs float64
	for _, v := range ir {
		if abs := math.Abs(v); abs > maxAbs {
			maxAbs = abs
		}
	}

	if maxAbs == 0 {
		return nil
	}

	threshold := maxAbs * minPeakRatio

	var peaks []int

	for i := range ir {
		abs := math.Abs(ir[i])
		if abs < threshold {
			continue
		}

		if i > 0 && math.Abs(ir[i-1]) > abs {
			continue
		}
		if i < len(ir)-1 && math.Abs(ir[i+1]) >= abs {
			continue
		}

		peaks = append(peaks, i)
	}

	return peaks
}

// decayRatio averages the amplitude ratio between successive echo peaks.
func (a *Analyzer) decayRatio(ir []float64, peaks []int) float64 {
	if len(peaks) < 3 {
		return math.Abs(ir[peaks[1]]) / math.Abs(ir[peaks[0]])
	}

	var sum float64
	var count int

	for i := 2; i < len(peaks); i++ {
		prev := math.Abs(ir[peaks[i-1]])
		if prev == 0 {
			continue
		}

		sum += math.Abs(ir[peaks[i]]) / prev
		count++
	}

	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// analyzeNotches transforms the response and measures the spacing and depth
// of the magnitude minima.
func (a *Analyzer) analyzeNotches(ir []float64, m *Metrics) error {
	fftSize := a.FFTSize
	if fftSize <= 0 {
		fftSize = nextPow2(len(ir))
		if fftSize < 2048 {
			fftSize = 2048
		}
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return err
	}

	inData := make([]complex128, fftSize)
	for i, v := range ir {
		if i >= fftSize {
			break
		}
		inData[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return err
	}

	half := fftSize/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)

	for i := 0; i < half; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)

	notches := findNotches(mag)
	m.NotchCount = len(notches)

	if len(notches) == 0 {
		return nil
	}

	ref := passbandDB(mag)

	var depthSum float64
	for _, n := range notches {
		depthSum += ref - core.LinearToDB(mag[n])
	}
	m.NotchDepth = depthSum / float64(len(notches))

	if len(notches) > 1 {
		binHz := a.SampleRate / float64(fftSize)
		span := float64(notches[len(notches)-1] - notches[0])
		m.NotchSpacing = span / float64(len(notches)-1) * binHz
	}

	return nil
}

// findNotches returns local minima of the magnitude spectrum that dip at
// least minNotchDepth below the passband level.
func findNotches(mag []float64) []int {
	if len(mag) < 3 {
		return nil
	}

	ref := passbandDB(mag)

	var notches []int

	for i := 1; i < len(mag)-1; i++ {
		if mag[i] > mag[i-1] || mag[i] >= mag[i+1] {
			continue
		}

		if ref-core.LinearToDB(mag[i]) >= minNotchDepth {
			notches = append(notches, i)
		}
	}

	return notches
}

// passbandDB estimates the passband level as the peak spectral magnitude.
func passbandDB(mag []float64) float64 {
	var peak float64
	for _, v := range mag {
		if v > peak {
			peak = v
		}
	}

	return core.LinearToDB(peak)
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
