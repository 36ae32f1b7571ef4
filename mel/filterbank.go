package mel

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Slaney's auditory toolbox mel scale: linear below 1 kHz, logarithmic above.
const (
	fSp       = 200.0 / 3
	minLogHz  = 1000.0
	minLogMel = minLogHz / fSp
)

var logStep = math.Log(6.4) / 27.0

// HzToMel converts a frequency to the slaney mel scale.
func HzToMel(hz float64) float64 {
	if hz >= minLogHz {
		return minLogMel + math.Log(hz/minLogHz)/logStep
	}
	return hz / fSp
}

// MelToHz converts a slaney mel value back to Hz.
func MelToHz(mel float64) float64 {
	if mel >= minLogMel {
		return minLogHz * math.Exp(logStep*(mel-minLogMel))
	}
	return fSp * mel
}

// melFrequencies returns n frequencies evenly spaced on the mel scale between fmin and fmax.
func melFrequencies(n int, fmin, fmax float64) []float64 {
	lo, hi := HzToMel(fmin), HzToMel(fmax)
	out := make([]float64, n)
	for i := range out {
		var mel = lo
		if n > 1 {
			mel = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		out[i] = MelToHz(mel)
	}
	return out
}

// Filterbank builds the numMels x (nfft/2+1) triangular filter matrix.
// Each filter is scaled by 2/(bandwidth in Hz) so that filters have equal area.
func Filterbank(sampleRate, nfft, numMels int, fmin, fmax float64) *mat.Dense {
	bins := nfft/2 + 1
	fftFreqs := make([]float64, bins)
	for k := range fftFreqs {
		fftFreqs[k] = float64(k) * float64(sampleRate) / float64(nfft)
	}

	edges := melFrequencies(numMels+2, fmin, fmax)

	bank := mat.NewDense(numMels, bins, nil)
	for i := 0; i < numMels; i++ {
		lower := edges[i+1] - edges[i]
		upper := edges[i+2] - edges[i+1]
		if lower <= 0 || upper <= 0 {
			continue
		}
		enorm := 2.0 / (edges[i+2] - edges[i])
		for k, f := range fftFreqs {
			up := (f - edges[i]) / lower
			down := (edges[i+2] - f) / upper
			if w := math.Min(up, down); w > 0 {
				bank.Set(i, k, w*enorm)
			}
		}
	}
	return bank
}
