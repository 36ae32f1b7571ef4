package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ivsvarma/music-genre-classification/storage"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format selects the serialization of a Record.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

var ErrUnknownFormat = errors.New("dataset: unknown format")

// ParseFormat accepts a format name; the empty string means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from the extension of dest, defaulting to JSON.
func FormatFromPath(dest string) Format {
	switch strings.ToLower(path.Ext(dest)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".msgpack", ".mp":
		return FormatMsgpack
	}
	return FormatJSON
}

// Encode writes r to w. JSON output is indented by four spaces.
func Encode(w io.Writer, r *Record, f Format) error {
	r.normalize()
	switch f {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(r)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Decode reads a Record from r.
func Decode(r io.Reader, f Format) (*Record, error) {
	rec := &Record{}
	var err error
	switch f {
	case FormatJSON, "":
		err = json.NewDecoder(r).Decode(rec)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(rec)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(rec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	rec.normalize()
	return rec, nil
}

// Save writes the whole record to dest in one go.
func Save(ctx context.Context, sink storage.Sink, dest string, r *Record, f Format) error {
	w, err := sink.Create(ctx, dest)
	if err != nil {
		return fmt.Errorf("open output %s: %w", dest, err)
	}
	if err := Encode(w, r, f); err != nil {
		w.Close()
		return fmt.Errorf("write output %s: %w", dest, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", dest, err)
	}
	return nil
}
