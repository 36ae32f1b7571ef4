package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Client abstracts the S3 API operations used by [S3].
// The [s3.Client] type satisfies this interface.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the client built by NewS3Client.
type S3Options struct {
	Region    string
	Endpoint  string
	PathStyle bool
}

// NewS3Client builds an S3 client that reads static credentials from the
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN variables.
func NewS3Client(opts S3Options) *s3.Client {
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	o := s3.Options{
		Region:       region,
		UsePathStyle: opts.PathStyle,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
				SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
				Source:          "environment",
			}, nil
		}),
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return s3.New(o)
}

// S3 writes destinations of the form s3://bucket/key.
type S3 struct {
	client S3Client
}

// NewS3 creates an S3 sink. Any type satisfying [S3Client] is accepted.
func NewS3(client S3Client) *S3 {
	return &S3{client: client}
}

// ParseS3URL splits s3://bucket/key into bucket and key.
func ParseS3URL(dest string) (bucket, key string, err error) {
	if !IsS3(dest) {
		return "", "", fmt.Errorf("storage: not an s3 url: %s", dest)
	}
	rest := strings.TrimPrefix(dest, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("storage: s3 url needs bucket and key: %s", dest)
	}
	return bucket, key, nil
}

// Create buffers the document in memory; Close uploads it with a single PutObject.
func (s *S3) Create(ctx context.Context, dest string) (io.WriteCloser, error) {
	bucket, key, err := ParseS3URL(dest)
	if err != nil {
		return nil, err
	}
	return &s3Writer{ctx: ctx, client: s.client, bucket: bucket, key: key}, nil
}

type s3Writer struct {
	ctx    context.Context
	client S3Client
	bucket string
	key    string

	buf    bytes.Buffer
	closed bool
}

func (w *s3Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *s3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket:        aws.String(w.bucket),
		Key:           aws.String(w.key),
		Body:          bytes.NewReader(w.buf.Bytes()),
		ContentLength: aws.Int64(int64(w.buf.Len())),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("storage: put s3://%s/%s: %s: %w", w.bucket, w.key, apiErr.ErrorCode(), err)
		}
		return fmt.Errorf("storage: put s3://%s/%s: %w", w.bucket, w.key, err)
	}
	return nil
}

var _ Sink = (*S3)(nil)
