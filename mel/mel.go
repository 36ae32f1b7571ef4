package mel

import (
	"errors"
	"math"

	"github.com/r9y9/gossp/stft"
	"gonum.org/v1/gonum/mat"
)

// Mel represents the configuration for generating power mel spectrograms.
type Mel struct {
	SampleRate int
	NFFT       int
	HopLength  int
	NumMels    int
	MelFmin    float64
	// MelFmax of zero means SampleRate/2
	MelFmax float64

	bank    *mat.Dense
	bankFor bankParams
}

type bankParams struct {
	sr, nfft, mels int
	fmin, fmax     float64
}

// NewMel creates a new Mel instance with default values.
func NewMel() *Mel {
	return &Mel{
		SampleRate: 22050,
		NFFT:       2048,
		HopLength:  512,
		NumMels:    128,
		MelFmin:    0,
		MelFmax:    0,
	}
}

var ErrInvalidParams = errors.New("mel: invalid parameters")

func (m *Mel) validate() error {
	if m.SampleRate <= 0 || m.NFFT <= 0 || m.HopLength <= 0 || m.NumMels <= 0 {
		return ErrInvalidParams
	}
	if m.MelFmin < 0 || m.fmax() <= m.MelFmin {
		return ErrInvalidParams
	}
	return nil
}

func (m *Mel) fmax() float64 {
	if m.MelFmax == 0 {
		return float64(m.SampleRate) / 2
	}
	return m.MelFmax
}

// NumFrames returns the number of STFT frames produced for n samples.
func (m *Mel) NumFrames(n int) int {
	if m.HopLength <= 0 {
		return 0
	}
	return 1 + n/m.HopLength
}

// Power computes the power mel spectrogram of buf as a frames x NumMels matrix.
func (m *Mel) Power(buf []float64) (*mat.Dense, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	spectrum := m.powerSpectrum(buf)

	var out mat.Dense
	out.Mul(spectrum, m.filterbank().T())
	return &out, nil
}

// Spectrogram computes the power mel spectrogram of buf, one row per frame.
func (m *Mel) Spectrogram(buf []float64) ([][]float64, error) {
	power, err := m.Power(buf)
	if err != nil {
		return nil, err
	}
	rows, _ := power.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = mat.Row(nil, i, power)
	}
	return out, nil
}

// powerSpectrum returns |STFT|^2 of the centered signal as frames x (NFFT/2+1).
func (m *Mel) powerSpectrum(buf []float64) *mat.Dense {
	s := stft.New(m.HopLength, m.NFFT)
	s.Window = periodicHann(m.NFFT)

	spectrogram := s.STFT(pad(buf, m.NFFT))

	bins := m.NFFT/2 + 1
	data := make([]float64, len(spectrogram)*bins)
	for i, spectrum := range spectrogram {
		row := data[i*bins : (i+1)*bins]
		for k := range row {
			v := spectrum[k]
			row[k] = real(v)*real(v) + imag(v)*imag(v)
		}
	}
	return mat.NewDense(len(spectrogram), bins, data)
}

func (m *Mel) filterbank() *mat.Dense {
	p := bankParams{m.SampleRate, m.NFFT, m.NumMels, m.MelFmin, m.fmax()}
	if m.bank == nil || m.bankFor != p {
		m.bank = Filterbank(p.sr, p.nfft, p.mels, p.fmin, p.fmax)
		m.bankFor = p
	}
	return m.bank
}

// periodicHann is the DFT-even Hann window of length n.
func periodicHann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// pad centers buf with nfft/2 zeros on each side, never returning less than nfft samples.
func pad(buf []float64, nfft int) []float64 {
	half := nfft / 2
	n := len(buf) + 2*half
	if n < nfft {
		n = nfft
	}
	out := make([]float64, n)
	copy(out[half:], buf)
	return out
}
