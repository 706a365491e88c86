package storage

import (
	"testing"
	"time"

	"github.com/hillalee/s3-lister/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageLocal(t *testing.T) {
	store, err := NewStorage(StorageItem{Driver: DriverLocal, Bucket: "photos", Root: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "photos", store.Bucket())
}

func TestNewStorageValidation(t *testing.T) {
	cases := map[string]StorageItem{
		"missing bucket":        {Driver: DriverLocal, Root: "/tmp"},
		"missing root":          {Driver: DriverLocal, Bucket: "photos"},
		"unknown driver":        {Driver: "ftp", Bucket: "photos"},
		"endpoint without keys": {Driver: DriverS3, Bucket: "photos", BaseURL: "http://localhost:9000"},
	}

	for name, item := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewStorage(item)
			assert.Error(t, err)
		})
	}
}

func TestNewStorageS3CompatibleEndpoint(t *testing.T) {
	store, err := NewStorage(StorageItem{
		Driver:    DriverS3,
		Bucket:    "photos",
		Region:    "us-east-1",
		BaseURL:   "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "photos", store.Bucket())
}

func TestItemFromConfig(t *testing.T) {
	cfg := &config.Config{
		StorageDriver:    "local",
		StorageRoot:      "/srv/data",
		Region:           "eu-central-1",
		ListPageSize:     250,
		S3RequestTimeout: 45 * time.Second,
	}

	item := ItemFromConfig(cfg, "photos")

	assert.Equal(t, DriverLocal, item.Driver)
	assert.Equal(t, "photos", item.Bucket)
	assert.Equal(t, "/srv/data", item.Root)
	assert.Equal(t, 250, item.PageSize)
	assert.Equal(t, 45, item.S3HTTPConfig.RequestTimeout)
}
