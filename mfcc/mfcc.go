package mfcc

import (
	"fmt"
	"math"

	"github.com/ivsvarma/music-genre-classification/mel"
	"gonum.org/v1/gonum/mat"
)

// MFCC represents the configuration for computing cepstral coefficients.
type MFCC struct {
	mel.Mel

	NumMFCC int
	// TopDB clips the dB spectrogram to this many decibels below its peak; negative disables
	TopDB float64
	// Amin floors the power spectrum before taking the logarithm
	Amin float64

	basis    *mat.Dense
	basisFor [2]int
}

// NewMFCC creates a new MFCC instance with default values.
func NewMFCC() *MFCC {
	return &MFCC{
		Mel:     *mel.NewMel(),
		NumMFCC: 13,
		TopDB:   80,
		Amin:    1e-10,
	}
}

// Compute returns the MFCC matrix of buf with shape [frames][NumMFCC].
func (m *MFCC) Compute(buf []float64) ([][]float64, error) {
	if m.NumMFCC <= 0 || m.NumMFCC > m.NumMels || m.Amin <= 0 {
		return nil, fmt.Errorf("%w: num_mfcc=%d num_mels=%d", mel.ErrInvalidParams, m.NumMFCC, m.NumMels)
	}

	power, err := m.Power(buf)
	if err != nil {
		return nil, err
	}
	PowerToDB(power, m.Amin, m.TopDB)

	var cep mat.Dense
	cep.Mul(power, m.dct().T())

	frames, _ := cep.Dims()
	out := make([][]float64, frames)
	for i := range out {
		out[i] = mat.Row(nil, i, &cep)
	}
	return out, nil
}

// PowerToDB converts a power spectrogram to decibels in place, relative to a reference of 1.
func PowerToDB(s *mat.Dense, amin, topDB float64) {
	s.Apply(func(_, _ int, v float64) float64 {
		return 10 * math.Log10(math.Max(amin, v))
	}, s)
	if topDB < 0 {
		return
	}
	floor := mat.Max(s) - topDB
	s.Apply(func(_, _ int, v float64) float64 {
		return math.Max(v, floor)
	}, s)
}

func (m *MFCC) dct() *mat.Dense {
	p := [2]int{m.NumMFCC, m.NumMels}
	if m.basis == nil || m.basisFor != p {
		m.basis = DCTBasis(m.NumMFCC, m.NumMels)
		m.basisFor = p
	}
	return m.basis
}

// DCTBasis returns the first k rows of the orthonormal DCT-II matrix of size n.
func DCTBasis(k, n int) *mat.Dense {
	b := mat.NewDense(k, n, nil)
	for i := 0; i < k; i++ {
		scale := math.Sqrt(2 / float64(n))
		if i == 0 {
			scale = math.Sqrt(1 / float64(n))
		}
		for j := 0; j < n; j++ {
			b.Set(i, j, scale*math.Cos(math.Pi*float64(i)*(2*float64(j)+1)/(2*float64(n))))
		}
	}
	return b
}
