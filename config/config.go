// Package config resolves the tomfcc settings from defaults, a YAML file,
// TOMFCC_* environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ivsvarma/music-genre-classification/dataset"
	"github.com/spf13/viper"
)

const EnvPrefix = "TOMFCC"

// DefaultNumSegments is the number of segments per track used by the CLI.
const DefaultNumSegments = 10

var (
	ErrNoDataset = errors.New("config: dataset path is required")
	ErrNoOutput  = errors.New("config: output path is required")
)

type S3 struct {
	Region    string `mapstructure:"region" yaml:"region"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	PathStyle bool   `mapstructure:"path_style" yaml:"path_style"`
}

type Root struct {
	Dataset  string `mapstructure:"dataset" yaml:"dataset"`
	Output   string `mapstructure:"output" yaml:"output"`
	Format   string `mapstructure:"format" yaml:"format"`
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
	Progress bool   `mapstructure:"progress" yaml:"progress"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	S3         S3             `mapstructure:"s3" yaml:"s3"`
	Extraction dataset.Config `mapstructure:"extraction" yaml:"extraction"`
}

// New returns a viper instance with every key defaulted and environment lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func SetDefaults(v *viper.Viper) {
	d := dataset.DefaultConfig()
	d.NumSegments = DefaultNumSegments

	v.SetDefault("dataset", "")
	v.SetDefault("output", "")
	v.SetDefault("format", "")
	v.SetDefault("cache_dir", "")
	v.SetDefault("progress", false)
	v.SetDefault("log_level", "info")

	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.path_style", false)

	v.SetDefault("extraction.sample_rate", d.SampleRate)
	v.SetDefault("extraction.track_duration", d.TrackDuration)
	v.SetDefault("extraction.num_mfcc", d.NumMFCC)
	v.SetDefault("extraction.n_fft", d.NFFT)
	v.SetDefault("extraction.hop_length", d.HopLength)
	v.SetDefault("extraction.num_segments", d.NumSegments)
	v.SetDefault("extraction.num_mels", d.NumMels)
	v.SetDefault("extraction.legacy_label_offset", d.LegacyLabelOffset)
	v.SetDefault("extraction.resampler", d.Resampler)
	v.SetDefault("extraction.resample_quality", d.ResampleQuality)
	v.SetDefault("extraction.half_precision", d.HalfPrecision)
}

// ReadFile merges a YAML config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load decodes v into a Root and validates it.
func Load(v *viper.Viper) (*Root, error) {
	var r Root
	if err := v.Unmarshal(&r); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Root) Validate() error {
	if r.Dataset == "" {
		return ErrNoDataset
	}
	if r.Output == "" {
		return ErrNoOutput
	}
	if _, err := dataset.ParseFormat(r.Format); err != nil {
		return err
	}
	return r.Extraction.Validate()
}

// OutputFormat is the explicit format, or the one implied by the output extension.
func (r *Root) OutputFormat() dataset.Format {
	if r.Format != "" {
		f, err := dataset.ParseFormat(r.Format)
		if err == nil {
			return f
		}
	}
	return dataset.FormatFromPath(r.Output)
}
