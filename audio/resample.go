package audio

import (
	"fmt"

	"github.com/faiface/beep"
	resampling "github.com/tphakala/go-audio-resampling"
)

// DefaultBeepQuality is the interpolation quality used by beep.Resample.
const DefaultBeepQuality = 4

// Resampler converts mono samples between sample rates.
type Resampler interface {
	Resample(samples []float64, from, to int) ([]float64, error)
}

// BeepResampler uses beep's windowed interpolation.
type BeepResampler struct {
	Quality int
}

func (r BeepResampler) Resample(samples []float64, from, to int) ([]float64, error) {
	if from <= 0 || to <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if r.Quality < 1 || r.Quality > 64 {
		return nil, ErrInvalidQualityBeep
	}
	if from == to {
		return samples, nil
	}
	res := beep.Resample(r.Quality, beep.SampleRate(from), beep.SampleRate(to), &monoStreamer{buf: samples})
	return drain(res)
}

// HQResampler uses the pure Go soxr-style polyphase resampler at its high quality preset.
type HQResampler struct{}

func (HQResampler) Resample(samples []float64, from, to int) ([]float64, error) {
	if from <= 0 || to <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if from == to {
		return samples, nil
	}
	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("create resampler: %w", err)
	}
	out, err := rs.Process(samples)
	if err != nil {
		return nil, err
	}
	tail, err := rs.Flush()
	if err != nil {
		return nil, fmt.Errorf("flush resampler: %w", err)
	}
	return fitLength(append(out, tail...), resampledLength(len(samples), from, to)), nil
}

// resampledLength is round(n*to/from).
func resampledLength(n, from, to int) int {
	return int((int64(n)*int64(to) + int64(from)/2) / int64(from))
}

// fitLength trims buf to n samples or pads it with zeros.
func fitLength(buf []float64, n int) []float64 {
	if len(buf) >= n {
		return buf[:n]
	}
	return append(buf, make([]float64, n-len(buf))...)
}

// NewResampler returns the resampler registered under name ("beep" or "hq").
func NewResampler(name string, quality int) (Resampler, error) {
	switch name {
	case "", "beep":
		if quality == 0 {
			quality = DefaultBeepQuality
		}
		if quality < 1 || quality > 64 {
			return nil, ErrInvalidQualityBeep
		}
		return BeepResampler{Quality: quality}, nil
	case "hq":
		return HQResampler{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownResampler, name)
}
