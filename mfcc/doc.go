// Package mfcc computes Mel-Frequency Cepstral Coefficients from audio samples.
//
// Coefficients are the orthonormal DCT-II of the decibel-scaled power mel spectrogram,
// truncated to the first NumMFCC terms. Results are time-major: one row per analysis
// frame, one column per coefficient.
package mfcc
