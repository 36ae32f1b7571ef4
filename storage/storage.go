// Package storage opens output destinations for writing.
//
// A destination is either a local file path or an object URL of the form
// s3://bucket/key. The whole document is written through one io.WriteCloser;
// closing it completes the write.
package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
)

// ErrNoS3 is returned when an s3:// destination is used without an S3 sink.
var ErrNoS3 = errors.New("storage: no S3 sink configured")

// Sink opens destinations for writing.
type Sink interface {
	// Create opens dest for writing, truncating any existing content.
	// The caller must close the returned WriteCloser to complete the write.
	Create(ctx context.Context, dest string) (io.WriteCloser, error)
}

// Local writes to the local filesystem. Parent directories must already exist.
type Local struct{}

func (Local) Create(_ context.Context, dest string) (io.WriteCloser, error) {
	return os.Create(dest)
}

// Router sends s3:// destinations to S3 and everything else to Local.
type Router struct {
	Local Sink
	S3    Sink
}

func (r Router) Create(ctx context.Context, dest string) (io.WriteCloser, error) {
	if IsS3(dest) {
		if r.S3 == nil {
			return nil, ErrNoS3
		}
		return r.S3.Create(ctx, dest)
	}
	if r.Local == nil {
		return Local{}.Create(ctx, dest)
	}
	return r.Local.Create(ctx, dest)
}

// IsS3 reports whether dest is an s3:// URL.
func IsS3(dest string) bool {
	return strings.HasPrefix(dest, "s3://")
}

var (
	_ Sink = Local{}
	_ Sink = Router{}
)
