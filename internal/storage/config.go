package storage

import (
	"github.com/hillalee/s3-lister/internal/config"
	"github.com/hillalee/s3-lister/internal/storage/drivers"
)

type StorageDriver string

const (
	DriverS3    StorageDriver = "s3"
	DriverLocal StorageDriver = "local"
)

type S3HTTPConfig = drivers.S3HTTPConfig

type StorageItem struct {
	Driver StorageDriver
	Bucket string

	// S3 specific fields
	Region    string
	AccessKey string
	SecretKey string
	BaseURL   string // Custom endpoint for S3-compatible storage
	PageSize  int

	S3HTTPConfig *S3HTTPConfig

	// Local specific fields
	Root string
}

// ItemFromConfig builds the storage settings for bucket out of the process config
func ItemFromConfig(cfg *config.Config, bucket string) StorageItem {
	return StorageItem{
		Driver:    StorageDriver(cfg.StorageDriver),
		Bucket:    bucket,
		Region:    cfg.Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		BaseURL:   cfg.S3Endpoint,
		PageSize:  cfg.ListPageSize,
		S3HTTPConfig: &S3HTTPConfig{
			MaxIdleConns:          cfg.S3MaxIdleConns,
			ConnectTimeout:        int(cfg.S3ConnectTimeout.Seconds()),
			RequestTimeout:        int(cfg.S3RequestTimeout.Seconds()),
			ResponseHeaderTimeout: int(cfg.S3ResponseHeaderTimeout.Seconds()),
		},
		Root: cfg.StorageRoot,
	}
}
