// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/apex/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	awsx "github.com/staranto/dsvcut/internal/aws"
)

// ErrIsDir is reported when a source path names a directory.
var ErrIsDir = errors.New("is a directory")

// OpenError is returned for any source that cannot be opened. Its message
// names the path and a short reason a person can act on.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open %s: %s", e.Path, e.Reason())
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Reason condenses Err into "file not found", "permission denied" and the
// like. Anything unrecognized falls back to the underlying message.
func (e *OpenError) Reason() string {
	switch {
	case errors.Is(e.Err, fs.ErrNotExist):
		return "file not found"
	case errors.Is(e.Err, fs.ErrPermission):
		return "permission denied"
	case errors.Is(e.Err, ErrIsDir):
		return "is a directory"
	}
	return e.Err.Error()
}

// ObjectGetter is the slice of the S3 client used to stream objects.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// NewObjectGetter builds the S3 client used for s3:// paths. Tests swap it.
var NewObjectGetter = func(ctx context.Context) (ObjectGetter, error) {
	cfg, err := awsx.LoadAWSConfig(ctx, awsx.FromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return awsx.NewS3(cfg), nil
}

// Open opens path for reading. s3://bucket/key paths are streamed from S3,
// everything else comes from the local filesystem. Compressed sources are
// decoded transparently based on their extension.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, key, isS3, err := awsx.ParseURL(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	var raw io.ReadCloser
	if isS3 {
		raw, err = openS3(ctx, bucket, key)
	} else {
		raw, err = openFile(path)
	}
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	rc, err := decompress(path, raw)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return rc, nil
}

func openFile(path string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrIsDir
	}
	return os.Open(path)
}

func openS3(ctx context.Context, bucket string, key string) (io.ReadCloser, error) {
	client, err := NewObjectGetter(ctx)
	if err != nil {
		return nil, err
	}

	log.Debugf("fetching s3://%s/%s", bucket, key)
	out, err := client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nsb *types.NoSuchBucket
		if errors.As(err, &nsk) || errors.As(err, &nsb) {
			return nil, errors.Join(fs.ErrNotExist, err)
		}
		return nil, err
	}
	return out.Body, nil
}

// decompress wraps raw with a decoder chosen by the extension of path. The
// returned closer releases the decoder and then raw.
func decompress(path string, raw io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gr, err := gzip.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &rc{Reader: gr, Closers: []io.Closer{gr, raw}}, nil
	case ".zst":
		zr, err := zstd.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &rc{Reader: zr, Closers: []io.Closer{closerFunc(zr.Close), raw}}, nil
	case ".s2", ".sz":
		return &rc{Reader: s2.NewReader(raw), Closers: []io.Closer{raw}}, nil
	case ".lz4":
		return &rc{Reader: lz4.NewReader(raw), Closers: []io.Closer{raw}}, nil
	}
	return raw, nil
}

type rc struct {
	io.Reader
	Closers []io.Closer
}

func (r *rc) Close() error {
	var err error
	for i := range r.Closers {
		if e := r.Closers[i].Close(); err == nil && e != nil {
			err = e
		}
	}
	return err
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}
