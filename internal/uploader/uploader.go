package uploader

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hillalee/s3-lister/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Store is the write side of an object store
type Store interface {
	Bucket() string
	PutObject(ctx context.Context, key string, data []byte) error
}

// Options controls one upload batch
type Options struct {
	// Source is a file or a directory; directories are uploaded
	// non-recursively. Empty means DefaultSource.
	Source string

	// Prefix is prepended to every key as "<prefix>/<name>"
	Prefix string

	// Concurrency bounds the number of files in flight. Values below 1
	// upload one file at a time.
	Concurrency int
}

const DefaultSource = "sample_files"

// Upload is one file written to the store
type Upload struct {
	Path string
	Key  string
	Size int
}

type Uploader struct {
	store Store
}

func New(store Store) *Uploader {
	return &Uploader{store: store}
}

// Upload copies the files named by opts into the store. The first failure
// cancels the batch: files not yet started are skipped and the failure is
// returned as an *UploadError. Completed uploads are returned in file order.
func (u *Uploader) Upload(ctx context.Context, opts Options) ([]Upload, error) {
	source := opts.Source
	if source == "" {
		source = DefaultSource
	}

	files, err := collectFiles(source)
	if err != nil {
		logger.Errorf("[Uploader] Error collecting files from %s: %v", source, err)
		return nil, &UploadError{Path: source, Err: err}
	}

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	logger.Debugf("[Uploader] Uploading %d file(s) from %s to %s (concurrency %d)", len(files), source, u.store.Bucket(), limit)

	done := make([]*Upload, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range files {
		// Stop scheduling once a previous upload failed
		if gctx.Err() != nil {
			break
		}

		i, file := i, file // per-iteration copy: go.mod targets go1.21 (pre-1.22 loopvar semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			key := objectKey(file, opts.Prefix)
			data, err := os.ReadFile(file)
			if err != nil {
				return &UploadError{Path: file, Key: key, Err: err}
			}

			if err := u.store.PutObject(gctx, key, data); err != nil {
				return &UploadError{Path: file, Key: key, Err: err}
			}

			logger.Infof("[Uploader] Uploaded %s to %s/%s", file, u.store.Bucket(), key)
			done[i] = &Upload{Path: file, Key: key, Size: len(data)}
			return nil
		})
	}

	err = g.Wait()

	uploaded := make([]Upload, 0, len(files))
	for _, up := range done {
		if up != nil {
			uploaded = append(uploaded, *up)
		}
	}

	if err != nil {
		logger.Errorf("[Uploader] Error uploading files: %v", err)
		return uploaded, err
	}

	return uploaded, nil
}

// collectFiles returns source itself when it is a file, otherwise the
// regular files directly inside it sorted by name
func collectFiles(source string) ([]string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%s is not a regular file", source)
		}
		return []string{source}, nil
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(source, entry.Name()))
		}
	}
	sort.Strings(files)

	return files, nil
}

// objectKey is the base name of file, under prefix when one is given
func objectKey(file, prefix string) string {
	name := filepath.Base(file)

	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
