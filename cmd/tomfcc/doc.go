// Command tomfcc builds an MFCC training set from a directory of labeled recordings.
//
// Every subdirectory of the dataset root is a class. Each recording is cut into
// equal segments and every segment with the expected number of frames becomes
// one MFCC matrix in the output.
//
// Usage:
//
//	tomfcc extract --dataset <dir> --output <file|s3://bucket/key> [flags]
//	tomfcc inspect <dataset file>
//	tomfcc features <audio file>
//
// Settings can also come from a YAML file (--config) or TOMFCC_* environment
// variables, e.g. TOMFCC_EXTRACTION_NUM_SEGMENTS=10. S3 credentials are read from
// the AWS_* variables, optionally loaded from a .env file.
//
// Supported input formats: .wav, .flac, .mp3, .ogg
package main
