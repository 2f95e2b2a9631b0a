// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source opens the files the tools read and write. Paths of
// the form gs://bucket/object name Cloud Storage objects; all other
// paths are local files.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

const gcsScheme = "gs://"

// SplitGCS splits a gs://bucket/object path. ok is false if path is
// not a Cloud Storage path.
func SplitGCS(path string) (bucket, object string, ok bool, err error) {
	rest, found := strings.CutPrefix(path, gcsScheme)
	if !found {
		return "", "", false, nil
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return "", "", true, fmt.Errorf("%s: want gs://bucket/object", path)
	}
	return bucket, object, true, nil
}

// Open opens path for reading.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, object, ok, err := SplitGCS(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return os.Open(path)
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &gcsReader{r, client}, nil
}

// Create creates or truncates path for writing. For Cloud Storage,
// the object is only written when the returned writer is closed.
func Create(ctx context.Context, path string) (io.WriteCloser, error) {
	bucket, object, ok, err := SplitGCS(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return os.Create(path)
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}
	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = "text/plain"
	return &gcsWriter{w, client}, nil
}

// ReadFile reads all of path.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	r, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// WriteFile writes data to path in a single write.
func WriteFile(ctx context.Context, path string, data []byte) error {
	w, err := Create(ctx, path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *gcsReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

type gcsWriter struct {
	*storage.Writer
	client *storage.Client
}

func (w *gcsWriter) Close() error {
	err := w.Writer.Close()
	if cerr := w.client.Close(); err == nil {
		err = cerr
	}
	return err
}
