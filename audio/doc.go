// Package audio loads audio recordings into mono sample vectors.
//
// This package decodes a recording, downmixes it to a single channel and resamples it
// to the rate requested by the caller. It supports:
//   - WAV, FLAC, Ogg Vorbis and MP3 input, detected from the file header
//   - Downmixing of multi-channel audio by averaging channels
//   - Resampling with beep's interpolating resampler or a high-quality polyphase resampler
//   - Writing mono WAV files from sample vectors
package audio
