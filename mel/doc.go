// Package mel provides power mel spectrogram generation.
//
// This package implements the time-frequency front-end shared by mel-based audio features,
// following the conventions of common music information retrieval tooling. It supports:
//   - Centered STFT framing with zero padding and a periodic Hann window
//   - Power spectra projected through a slaney-scale, area-normalized mel filterbank
//   - Configurable FFT size, hop length, number of mel bands and frequency range
package mel
