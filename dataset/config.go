package dataset

import (
	"errors"
	"fmt"

	"github.com/ivsvarma/music-genre-classification/audio"
)

var ErrInvalidConfig = errors.New("dataset: invalid config")

// Config holds the extraction parameters.
type Config struct {
	SampleRate    int `mapstructure:"sample_rate" yaml:"sample_rate"`
	TrackDuration int `mapstructure:"track_duration" yaml:"track_duration"` // seconds
	NumMFCC       int `mapstructure:"num_mfcc" yaml:"num_mfcc"`
	NFFT          int `mapstructure:"n_fft" yaml:"n_fft"`
	HopLength     int `mapstructure:"hop_length" yaml:"hop_length"`
	NumSegments   int `mapstructure:"num_segments" yaml:"num_segments"`
	NumMels       int `mapstructure:"num_mels" yaml:"num_mels"`

	// LegacyLabelOffset labels every segment with its class index minus one.
	LegacyLabelOffset bool `mapstructure:"legacy_label_offset" yaml:"legacy_label_offset"`

	Resampler       string `mapstructure:"resampler" yaml:"resampler"`
	ResampleQuality int    `mapstructure:"resample_quality" yaml:"resample_quality"`

	// HalfPrecision rounds every stored coefficient to IEEE 754 binary16.
	HalfPrecision bool `mapstructure:"half_precision" yaml:"half_precision"`
}

// DefaultConfig returns the default extraction parameters.
func DefaultConfig() Config {
	return Config{
		SampleRate:      22050,
		TrackDuration:   30,
		NumMFCC:         13,
		NFFT:            2048,
		HopLength:       512,
		NumSegments:     5,
		NumMels:         128,
		Resampler:       "beep",
		ResampleQuality: audio.DefaultBeepQuality,
	}
}

// Validate rejects non-positive sizes, more coefficients than mel bands and unknown resamplers.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate must be positive", ErrInvalidConfig)
	case c.TrackDuration <= 0:
		return fmt.Errorf("%w: track_duration must be positive", ErrInvalidConfig)
	case c.NumMFCC <= 0:
		return fmt.Errorf("%w: num_mfcc must be positive", ErrInvalidConfig)
	case c.NFFT <= 0:
		return fmt.Errorf("%w: n_fft must be positive", ErrInvalidConfig)
	case c.HopLength <= 0:
		return fmt.Errorf("%w: hop_length must be positive", ErrInvalidConfig)
	case c.NumSegments <= 0:
		return fmt.Errorf("%w: num_segments must be positive", ErrInvalidConfig)
	case c.NumMels <= 0:
		return fmt.Errorf("%w: num_mels must be positive", ErrInvalidConfig)
	case c.NumMFCC > c.NumMels:
		return fmt.Errorf("%w: num_mfcc (%d) exceeds num_mels (%d)", ErrInvalidConfig, c.NumMFCC, c.NumMels)
	case c.NumSegments > c.SamplesPerTrack():
		return fmt.Errorf("%w: num_segments (%d) exceeds samples per track", ErrInvalidConfig, c.NumSegments)
	}
	if _, err := audio.NewResampler(c.Resampler, c.ResampleQuality); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SamplesPerTrack is the nominal track length in samples.
func (c Config) SamplesPerTrack() int {
	return c.SampleRate * c.TrackDuration
}

// SamplesPerSegment is the segment length in samples, rounded down.
func (c Config) SamplesPerSegment() int {
	return c.SamplesPerTrack() / c.NumSegments
}

// ExpectedFrames is the number of MFCC frames a kept segment must have.
//
// The analysis itself yields 1 + SamplesPerSegment/HopLength frames, so when
// SamplesPerSegment is an exact multiple of HopLength no segment is ever kept.
func (c Config) ExpectedFrames() int {
	sps := c.SamplesPerSegment()
	return (sps + c.HopLength - 1) / c.HopLength
}

// Fingerprint identifies every parameter that changes the computed features.
func (c Config) Fingerprint() string {
	return fmt.Sprintf("sr=%d dur=%d mfcc=%d nfft=%d hop=%d seg=%d mels=%d rs=%s q=%d",
		c.SampleRate, c.TrackDuration, c.NumMFCC, c.NFFT, c.HopLength,
		c.NumSegments, c.NumMels, c.Resampler, c.ResampleQuality)
}

func (c Config) label(class int) int {
	if c.LegacyLabelOffset {
		return class - 1
	}
	return class
}
