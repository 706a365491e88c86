package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultRegion        = "us-east-1"
	DefaultStorageDriver = "s3"
	DefaultStorageRoot   = "./data"
	DefaultTopicDriver   = "sns"
	DefaultTopicOutbox   = "./outbox.jsonl"
	DefaultListPageSize  = 1000
)

type Config struct {
	// Identifiers injected by the deployment
	BucketName string
	TopicARN   string

	Region string

	StorageDriver string
	StorageRoot   string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	ListPageSize  int

	S3MaxIdleConns          int
	S3ConnectTimeout        time.Duration
	S3RequestTimeout        time.Duration
	S3ResponseHeaderTimeout time.Duration

	TopicDriver string
	TopicOutbox string
	SNSEndpoint string
}

// ConfigurationError reports a required setting that is missing or invalid
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func Load() *Config {
	return &Config{
		BucketName:              getEnv("BUCKET_NAME", ""),
		TopicARN:                getEnv("TOPIC_ARN", ""),
		Region:                  getEnv("AWS_REGION", DefaultRegion),
		StorageDriver:           strings.ToLower(getEnv("STORAGE_DRIVER", DefaultStorageDriver)),
		StorageRoot:             getEnv("STORAGE_ROOT", DefaultStorageRoot),
		S3Endpoint:              getEnv("S3_ENDPOINT", ""),
		S3AccessKey:             getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:             getEnv("S3_SECRET_KEY", ""),
		ListPageSize:            getEnvInt("LIST_PAGE_SIZE", DefaultListPageSize),
		S3MaxIdleConns:          getEnvInt("S3_MAX_IDLE_CONNS", 100),
		S3ConnectTimeout:        getEnvDurationSeconds("S3_CONNECT_TIMEOUT_SECONDS", 10),
		S3RequestTimeout:        getEnvDurationSeconds("S3_REQUEST_TIMEOUT_SECONDS", 30),
		S3ResponseHeaderTimeout: getEnvDurationSeconds("S3_RESPONSE_HEADER_TIMEOUT_SECONDS", 10),
		TopicDriver:             strings.ToLower(getEnv("TOPIC_DRIVER", DefaultTopicDriver)),
		TopicOutbox:             getEnv("TOPIC_OUTBOX", DefaultTopicOutbox),
		SNSEndpoint:             getEnv("SNS_ENDPOINT", ""),
	}
}

// Validate checks the settings the notifier cannot run without
func (c *Config) Validate() error {
	if c.BucketName == "" {
		return &ConfigurationError{Field: "BUCKET_NAME", Reason: "is required"}
	}
	if c.TopicARN == "" {
		return &ConfigurationError{Field: "TOPIC_ARN", Reason: "is required"}
	}
	return c.validateDrivers()
}

func (c *Config) validateDrivers() error {
	switch c.StorageDriver {
	case "s3", "local":
	default:
		return &ConfigurationError{Field: "STORAGE_DRIVER", Reason: fmt.Sprintf("must be s3 or local, got %q", c.StorageDriver)}
	}

	switch c.TopicDriver {
	case "sns", "local":
	default:
		return &ConfigurationError{Field: "TOPIC_DRIVER", Reason: fmt.Sprintf("must be sns or local, got %q", c.TopicDriver)}
	}

	if c.S3Endpoint != "" && (c.S3AccessKey == "" || c.S3SecretKey == "") {
		return &ConfigurationError{Field: "S3_ACCESS_KEY/S3_SECRET_KEY", Reason: "are required when S3_ENDPOINT is set"}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}

	return parsed
}

func getEnvDurationSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds)) * time.Second
}
