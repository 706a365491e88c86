package storage

import (
	"fmt"
	"strings"

	"github.com/hillalee/s3-lister/internal/logger"
	"github.com/hillalee/s3-lister/internal/storage/drivers"
)

// NewStorage creates the storage driver described by cfg
func NewStorage(cfg StorageItem) (Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}

	store, err := createBaseStorage(cfg)
	if err != nil {
		return nil, err
	}

	logParts := []string{fmt.Sprintf("driver: %s", cfg.Driver)}
	switch cfg.Driver {
	case DriverS3:
		logParts = append(logParts, fmt.Sprintf("region: %s", cfg.Region))
		if cfg.BaseURL != "" {
			logParts = append(logParts, fmt.Sprintf("endpoint: %s", cfg.BaseURL))
		}
	case DriverLocal:
		logParts = append(logParts, fmt.Sprintf("root: %s", cfg.Root))
	}

	logger.Infof("[Storage:%s] Initialized (%s)", cfg.Bucket, strings.Join(logParts, ", "))
	return store, nil
}

// createBaseStorage creates the underlying storage driver (S3 or local)
func createBaseStorage(cfg StorageItem) (Storage, error) {
	switch cfg.Driver {
	case DriverS3:
		if cfg.Region == "" {
			cfg.Region = "us-east-1" // default region
		}
		// Require credentials when using custom base_url (S3-compatible storage)
		if cfg.BaseURL != "" && (cfg.AccessKey == "" || cfg.SecretKey == "") {
			return nil, fmt.Errorf("storage '%s': access key and secret key are required when using a custom endpoint", cfg.Bucket)
		}
		return drivers.NewS3Client(drivers.S3Options{
			Region:     cfg.Region,
			AccessKey:  cfg.AccessKey,
			SecretKey:  cfg.SecretKey,
			Bucket:     cfg.Bucket,
			BaseURL:    cfg.BaseURL,
			PageSize:   cfg.PageSize,
			HTTPConfig: cfg.S3HTTPConfig,
		})

	case DriverLocal:
		if cfg.Root == "" {
			return nil, fmt.Errorf("storage '%s': root is required for local driver", cfg.Bucket)
		}
		return drivers.NewLocalStorage(cfg.Root, cfg.Bucket)

	default:
		return nil, fmt.Errorf("storage '%s': unknown driver '%s'", cfg.Bucket, cfg.Driver)
	}
}
