package audio

import (
	"errors"
	"fmt"
	"os"
)

var (
	ErrFileNotLoaded      = errors.New("audio: file not loaded")
	ErrUnsupportedFormat  = errors.New("audio: unsupported format")
	ErrUnknownResampler   = errors.New("audio: unknown resampler")
	ErrInvalidSampleRate  = errors.New("audio: invalid sample rate")
	ErrInvalidQualityBeep = errors.New("audio: beep resample quality must be within [1, 64]")
)

// Loader decodes recordings and brings them to a target sample rate.
type Loader struct {
	Resampler Resampler
}

// NewLoader creates a Loader using the given resampler, or beep's default one when r is nil.
func NewLoader(r Resampler) *Loader {
	if r == nil {
		r = BeepResampler{Quality: DefaultBeepQuality}
	}
	return &Loader{Resampler: r}
}

// Load reads a recording as mono samples in [-1, 1] at sampleRate.
func (l *Loader) Load(path string, sampleRate int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, rate, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(samples) == 0 || rate <= 0 {
		return nil, ErrFileNotLoaded
	}

	if rate == sampleRate {
		return samples, nil
	}
	out, err := l.Resampler.Resample(samples, rate, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("resample %s from %d Hz: %w", path, rate, err)
	}
	return out, nil
}

// Load reads a recording as mono samples at sampleRate using the default resampler.
func Load(path string, sampleRate int) ([]float64, error) {
	return NewLoader(nil).Load(path, sampleRate)
}
