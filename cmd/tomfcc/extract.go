package main

import (
	"errors"
	"io/fs"

	"github.com/google/uuid"
	"github.com/ivsvarma/music-genre-classification/cache"
	"github.com/ivsvarma/music-genre-classification/config"
	"github.com/ivsvarma/music-genre-classification/dataset"
	"github.com/ivsvarma/music-genre-classification/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newExtractCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract MFCC segments from a dataset directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, v)
		},
	}

	d := dataset.DefaultConfig()
	f := cmd.Flags()
	f.String("dataset", "", "dataset root, one subdirectory per class")
	f.String("output", "", "output file or s3://bucket/key")
	f.String("format", "", "output format: json, yaml or msgpack (default from output extension)")
	f.Int("sample-rate", d.SampleRate, "target sample rate in Hz")
	f.Int("track-duration", d.TrackDuration, "nominal track duration in seconds")
	f.Int("num-mfcc", d.NumMFCC, "number of cepstral coefficients")
	f.Int("n-fft", d.NFFT, "FFT window size in samples")
	f.Int("hop-length", d.HopLength, "hop between frames in samples")
	f.Int("num-segments", config.DefaultNumSegments, "segments per track")
	f.Int("num-mels", d.NumMels, "mel bands")
	f.Bool("legacy-label-offset", false, "label segments with class index minus one")
	f.String("resampler", d.Resampler, "resampler: beep or hq")
	f.Int("resample-quality", d.ResampleQuality, "beep resample quality (1-64)")
	f.Bool("half-precision", false, "round coefficients to binary16")
	f.String("cache-dir", "", "directory of the feature cache (disabled when empty)")
	f.Bool("progress", false, "show a progress bar on stderr")
	f.String("s3-region", "", "S3 region")
	f.String("s3-endpoint", "", "S3 endpoint URL for S3-compatible stores")
	f.Bool("s3-path-style", false, "use path-style S3 addressing")

	for flag, key := range map[string]string{
		"dataset":             "dataset",
		"output":              "output",
		"format":              "format",
		"cache-dir":           "cache_dir",
		"progress":            "progress",
		"s3-region":           "s3.region",
		"s3-endpoint":         "s3.endpoint",
		"s3-path-style":       "s3.path_style",
		"sample-rate":         "extraction.sample_rate",
		"track-duration":      "extraction.track_duration",
		"num-mfcc":            "extraction.num_mfcc",
		"n-fft":               "extraction.n_fft",
		"hop-length":          "extraction.hop_length",
		"num-segments":        "extraction.num_segments",
		"num-mels":            "extraction.num_mels",
		"legacy-label-offset": "extraction.legacy_label_offset",
		"resampler":           "extraction.resampler",
		"resample-quality":    "extraction.resample_quality",
		"half-precision":      "extraction.half_precision",
	} {
		v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}

func runExtract(cmd *cobra.Command, v *viper.Viper) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.OutOrStdout(), v)
	if err != nil {
		return err
	}
	log := logger.WithField("run", uuid.NewString())

	opts := []dataset.Option{dataset.WithLogger(log)}
	if cfg.CacheDir != "" {
		store, err := cache.NewBadger(cache.BadgerOptions{Dir: cfg.CacheDir, Logger: log})
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, dataset.WithCache(store))
	}
	if cfg.Progress {
		opts = append(opts, dataset.WithProgress(cmd.ErrOrStderr()))
	}

	e, err := dataset.NewExtractor(cfg.Extraction, opts...)
	if err != nil {
		return err
	}
	rec, err := e.Extract(cmd.Context(), cfg.Dataset)
	if err != nil {
		return err
	}

	sink := storage.Router{Local: storage.Local{}}
	if storage.IsS3(cfg.Output) {
		sink.S3 = storage.NewS3(storage.NewS3Client(storage.S3Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		}))
	}
	if err := dataset.Save(cmd.Context(), sink, cfg.Output, rec, cfg.OutputFormat()); err != nil {
		return err
	}
	log.WithField("output", cfg.Output).Info("dataset written")
	return nil
}
