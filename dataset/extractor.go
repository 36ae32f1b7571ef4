package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ivsvarma/music-genre-classification/audio"
	"github.com/ivsvarma/music-genre-classification/cache"
	"github.com/ivsvarma/music-genre-classification/mfcc"
	"github.com/sirupsen/logrus"
)

// Stats counts what happened during the last extraction.
type Stats struct {
	Classes         int
	Files           int
	FailedFiles     int
	Segments        int
	DroppedSegments int
	CacheHits       int
}

// Extractor computes the MFCC segments of a dataset directory.
type Extractor struct {
	cfg      Config
	log      logrus.FieldLogger
	cache    cache.Store
	progress io.Writer
	loader   *audio.Loader
	mfcc     *mfcc.MFCC
	stats    Stats
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger for status and error lines. The default is logrus' standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Extractor) { e.log = l }
}

// WithCache reuses segments of recordings that were already processed with the same config.
func WithCache(s cache.Store) Option {
	return func(e *Extractor) { e.cache = s }
}

// WithProgress draws a progress bar over the file count on w.
func WithProgress(w io.Writer) Option {
	return func(e *Extractor) { e.progress = w }
}

// WithLoader replaces the loader built from the config's resampler settings.
func WithLoader(l *audio.Loader) Option {
	return func(e *Extractor) { e.loader = l }
}

// NewExtractor validates cfg and builds an Extractor.
func NewExtractor(cfg Config, opts ...Option) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Extractor{cfg: cfg, log: logrus.StandardLogger()}
	for _, o := range opts {
		o(e)
	}
	if e.loader == nil {
		rs, err := audio.NewResampler(cfg.Resampler, cfg.ResampleQuality)
		if err != nil {
			return nil, err
		}
		e.loader = audio.NewLoader(rs)
	}

	m := mfcc.NewMFCC()
	m.SampleRate = cfg.SampleRate
	m.NFFT = cfg.NFFT
	m.HopLength = cfg.HopLength
	m.NumMels = cfg.NumMels
	m.NumMFCC = cfg.NumMFCC
	e.mfcc = m
	return e, nil
}

// Config returns the extraction parameters.
func (e *Extractor) Config() Config { return e.cfg }

// Stats returns the counters of the last Extract call.
func (e *Extractor) Stats() Stats { return e.stats }

// Extract processes every class directory under root and returns the collected record.
// Failing recordings are logged and skipped; only an unreadable root or a cancelled
// context stops the run.
func (e *Extractor) Extract(ctx context.Context, root string) (*Record, error) {
	e.stats = Stats{}

	classes, err := e.plan(root)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, c := range classes {
		total += len(c.files)
	}
	bar := newProgress(e.progress, total)

	rec := NewRecord()
	for i, c := range classes {
		rec.Mapping = append(rec.Mapping, c.name)
		label := e.cfg.label(i)
		e.log.WithField("class", c.name).Info("processing class")

		for _, file := range c.files {
			if err := ctx.Err(); err != nil {
				bar.done(true)
				return nil, err
			}
			e.stats.Files++

			segments, err := e.file(file)
			for _, s := range segments {
				frames := s.Frames
				if e.cfg.HalfPrecision {
					frames = toHalf(frames)
				}
				rec.append(label, frames)
				e.stats.Segments++
				e.log.WithFields(logrus.Fields{
					"file":    file,
					"segment": s.Index + 1,
				}).Info("segment extracted")
			}
			if err != nil {
				e.stats.FailedFiles++
				e.log.WithError(err).WithField("file", file).Error("processing file failed")
			}
			bar.increment()
		}
	}
	bar.done(false)

	e.stats.Classes = len(classes)
	e.log.WithFields(logrus.Fields{
		"classes":  e.stats.Classes,
		"files":    e.stats.Files,
		"failed":   e.stats.FailedFiles,
		"segments": e.stats.Segments,
		"dropped":  e.stats.DroppedSegments,
		"cached":   e.stats.CacheHits,
	}).Info("extraction finished")
	return rec, nil
}

// file returns the kept segments of one recording, from the cache when possible.
// Segments kept before an error are returned along with it.
func (e *Extractor) file(path string) ([]cache.Segment, error) {
	key := e.cacheKey(path)
	if key != "" {
		segments, ok, err := e.cache.Get(key)
		if err != nil {
			e.log.WithError(err).WithField("file", path).Warn("cache lookup failed")
		} else if ok {
			e.stats.CacheHits++
			return segments, nil
		}
	}

	segments, err := e.compute(path)
	if err != nil {
		return segments, err
	}
	if key != "" {
		if err := e.cache.Put(key, segments); err != nil {
			e.log.WithError(err).WithField("file", path).Warn("cache store failed")
		}
	}
	return segments, nil
}

func (e *Extractor) compute(path string) ([]cache.Segment, error) {
	signal, err := e.loader.Load(path, e.cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	sps := e.cfg.SamplesPerSegment()
	want := e.cfg.ExpectedFrames()
	segments := []cache.Segment{}
	for d := 0; d < e.cfg.NumSegments; d++ {
		start := sps * d
		finish := start + sps
		frames, err := e.mfcc.Compute(clip(signal, start, finish))
		if err != nil {
			return segments, fmt.Errorf("segment %d: %w", d+1, err)
		}
		if len(frames) != want {
			e.stats.DroppedSegments++
			continue
		}
		segments = append(segments, cache.Segment{Index: d, Frames: frames})
	}
	return segments, nil
}

func (e *Extractor) cacheKey(path string) string {
	if e.cache == nil {
		return ""
	}
	fi, err := os.Stat(path)
	if err != nil {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return cache.Key(abs, fi.Size(), fi.ModTime(), e.cfg.Fingerprint())
}

// clip returns buf[start:finish] limited to the length of buf.
func clip(buf []float64, start, finish int) []float64 {
	if start > len(buf) {
		start = len(buf)
	}
	if finish > len(buf) {
		finish = len(buf)
	}
	return buf[start:finish]
}
