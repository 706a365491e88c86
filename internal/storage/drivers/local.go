package drivers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hillalee/s3-lister/internal/logger"
)

// ErrBucketNotFound is returned when the bucket directory does not exist
var ErrBucketNotFound = errors.New("bucket not found")

// LocalStorage keeps each bucket as a directory under basePath. Object keys
// are slash-separated paths relative to the bucket directory.
type LocalStorage struct {
	basePath string
	bucket   string
}

func NewLocalStorage(basePath, bucket string) (*LocalStorage, error) {
	logger.Infof("[Local storage] Initializing local storage with base path: %s", basePath)

	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return nil, fmt.Errorf("invalid bucket name: %q", bucket)
	}

	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: absBasePath,
		bucket:   bucket,
	}, nil
}

func (l *LocalStorage) Bucket() string {
	return l.bucket
}

func (l *LocalStorage) bucketPath() string {
	return filepath.Join(l.basePath, l.bucket)
}

func (l *LocalStorage) ListKeys(ctx context.Context) ([]string, error) {
	root := l.bucketPath()

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, l.bucket)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied for bucket: %s", l.bucket)
		}
		return nil, fmt.Errorf("failed to access bucket %s: %w", l.bucket, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrBucketNotFound, l.bucket)
	}

	keys := []string{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		logger.Errorf("[LocalStorage] failed to list bucket %s: %v", l.bucket, err)
		return nil, fmt.Errorf("failed to list bucket %s: %w", l.bucket, err)
	}

	return keys, nil
}

func (l *LocalStorage) PutObject(ctx context.Context, key string, data []byte) error {
	fullPath, err := l.resolveKey(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for key %s: %w", key, err)
	}

	tmpPath := fullPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		logger.Errorf("[LocalStorage] failed to write file %s: %v", tmpPath, err)
		return fmt.Errorf("failed to write object: %s", key)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename object %s: %w", key, err)
	}

	logger.Debugf("[LocalStorage] wrote %d bytes to %s", len(data), fullPath)
	return nil
}

// resolveKey maps key to a path inside the bucket directory, rejecting
// absolute paths and parent references
func (l *LocalStorage) resolveKey(key string) (string, error) {
	cleanPath := filepath.Clean(filepath.FromSlash(key))

	if key == "" || cleanPath == "." || filepath.IsAbs(cleanPath) || cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid key %q: absolute paths and parent references not allowed", key)
	}

	root := l.bucketPath()
	fullPath := filepath.Join(root, cleanPath)
	if !strings.HasPrefix(fullPath, root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid key %q: directory traversal detected", key)
	}

	return fullPath, nil
}
