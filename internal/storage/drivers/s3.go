package drivers

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hillalee/s3-lister/internal/logger"
	"golang.org/x/net/http2"
)

// S3HTTPConfig contains HTTP client configuration for S3 connections
type S3HTTPConfig struct {
	MaxIdleConns          int // Max idle connections across all hosts (default: 100)
	MaxIdleConnsPerHost   int // Max idle connections per host (default: 100)
	MaxConnsPerHost       int // Max total connections per host (default: 0 = unlimited)
	IdleConnTimeout       int // Idle connection timeout in seconds (default: 90)
	ConnectTimeout        int // Connection timeout in seconds (default: 10)
	RequestTimeout        int // Full request timeout in seconds (default: 30)
	ResponseHeaderTimeout int // Response header timeout in seconds (default: 10)
}

// S3API is the subset of the S3 client used by the driver
type S3API interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

// S3Options describes how to reach a bucket
type S3Options struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Bucket     string
	BaseURL    string
	PageSize   int
	HTTPConfig *S3HTTPConfig
}

type S3Client struct {
	client   S3API
	bucket   string
	pageSize int32
}

// createOptimizedHTTPClient creates an HTTP client with connection pooling and timeouts
func createOptimizedHTTPClient(httpConfig *S3HTTPConfig) *http.Client {
	maxIdleConns := 100
	maxIdleConnsPerHost := 100
	maxConnsPerHost := 0 // 0 = unlimited
	idleConnTimeout := 90
	connectTimeout := 10
	requestTimeout := 30
	responseHeaderTimeout := 10

	if httpConfig != nil {
		if httpConfig.MaxIdleConns > 0 {
			maxIdleConns = httpConfig.MaxIdleConns
		}
		if httpConfig.MaxIdleConnsPerHost > 0 {
			maxIdleConnsPerHost = httpConfig.MaxIdleConnsPerHost
		}
		if httpConfig.MaxConnsPerHost > 0 {
			maxConnsPerHost = httpConfig.MaxConnsPerHost
		}
		if httpConfig.IdleConnTimeout > 0 {
			idleConnTimeout = httpConfig.IdleConnTimeout
		}
		if httpConfig.ConnectTimeout > 0 {
			connectTimeout = httpConfig.ConnectTimeout
		}
		if httpConfig.RequestTimeout > 0 {
			requestTimeout = httpConfig.RequestTimeout
		}
		if httpConfig.ResponseHeaderTimeout > 0 {
			responseHeaderTimeout = httpConfig.ResponseHeaderTimeout
		}
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   time.Duration(connectTimeout) * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          maxIdleConns,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		MaxConnsPerHost:       maxConnsPerHost,
		IdleConnTimeout:       time.Duration(idleConnTimeout) * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: time.Duration(responseHeaderTimeout) * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	if err := http2.ConfigureTransport(transport); err != nil {
		logger.Warnf("[S3 Storage] Failed to configure HTTP/2: %v", err)
	}

	logger.Debugf("[S3 Storage] HTTP client configured: MaxIdleConns=%d, MaxIdleConnsPerHost=%d, MaxConnsPerHost=%d, ConnectTimeout=%ds, RequestTimeout=%ds",
		maxIdleConns, maxIdleConnsPerHost, maxConnsPerHost, connectTimeout, requestTimeout)

	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(requestTimeout) * time.Second,
	}
}

func NewS3Client(opts S3Options) (*S3Client, error) {
	var s3Client *s3.Client

	httpClient := createOptimizedHTTPClient(opts.HTTPConfig)

	if opts.BaseURL != "" {
		logger.Infof("[S3 Storage] Initializing S3-compatible storage: endpoint=%s, bucket=%s, region=%s", opts.BaseURL, opts.Bucket, opts.Region)
		// S3-compatible storage (MinIO, etc.) skips the AWS credential chain
		s3Client = s3.New(s3.Options{
			Region:       opts.Region,
			Credentials:  credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
			BaseEndpoint: aws.String(opts.BaseURL),
			UsePathStyle: true,
			HTTPClient:   httpClient,
		})
	} else {
		logger.Infof("[S3 Storage] Initializing AWS S3 storage: bucket=%s, region=%s", opts.Bucket, opts.Region)
		configOpts := []func(*config.LoadOptions) error{
			config.WithRegion(opts.Region),
			config.WithHTTPClient(httpClient),
		}

		if opts.AccessKey != "" && opts.SecretKey != "" {
			configOpts = append(configOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
			))
		}

		cfg, err := config.LoadDefaultConfig(context.TODO(), configOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		s3Client = s3.NewFromConfig(cfg)
	}

	return NewS3ClientWithAPI(s3Client, opts.Bucket, opts.PageSize), nil
}

// NewS3ClientWithAPI binds an existing S3 API implementation to bucket
func NewS3ClientWithAPI(api S3API, bucket string, pageSize int) *S3Client {
	if pageSize <= 0 || pageSize > math.MaxInt32 {
		pageSize = 1000
	}

	return &S3Client{
		client:   api,
		bucket:   bucket,
		pageSize: int32(pageSize),
	}
}

func (s *S3Client) Bucket() string {
	return s.bucket
}

func (s *S3Client) ListKeys(ctx context.Context) ([]string, error) {
	logger.Debugf("[S3 Storage] Listing objects: bucket=%s, pageSize=%d", s.bucket, s.pageSize)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		MaxKeys: aws.Int32(s.pageSize),
	})

	keys := []string{}
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logger.Errorf("[S3 Storage] Error listing objects: bucket=%s, page=%d, error=%v", s.bucket, pages+1, err)
			return nil, err
		}
		pages++

		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	logger.Debugf("[S3 Storage] Listed %d object(s) in %d page(s): bucket=%s", len(keys), pages, s.bucket)
	return keys, nil
}

func (s *S3Client) PutObject(ctx context.Context, key string, data []byte) error {
	logger.Debugf("[S3 Storage] Writing object: bucket=%s, key=%s, size=%d bytes", s.bucket, key, len(data))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		logger.Errorf("[S3 Storage] Error writing object: bucket=%s, key=%s, error=%v", s.bucket, key, err)
		return err
	}

	return nil
}
