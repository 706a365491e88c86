package config

import (
	"bytes"
	"flag"
	"fmt"
	"strings"
)

const DefaultUploadSource = "sample_files"

// UploadConfig holds the settings of the upload command
type UploadConfig struct {
	*Config

	Source      string
	Prefix      string
	Concurrency int
	IsDebug     bool
}

// InvokeConfig holds the settings of the invoke command
type InvokeConfig struct {
	Region       string
	Endpoint     string
	FunctionName string
	Payload      map[string]string
	IsDebug      bool
}

// FromUploadFlags parses `upload [flags] <bucket> [path] [prefix]` on top of
// the environment defaults in base. The returned string holds any usage
// output written by the flag set.
func FromUploadFlags(base *Config, name string, args []string) (*UploadConfig, string, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)

	var buf bytes.Buffer
	flags.SetOutput(&buf)
	flags.Usage = func() {
		fmt.Fprintf(&buf, "Usage: %s [flags] <bucket> [path] [prefix]\n", name)
		flags.PrintDefaults()
	}

	env := *base
	cfg := UploadConfig{Config: &env}
	flags.StringVar(&cfg.StorageDriver, "driver", base.StorageDriver, "Storage driver (s3 or local)")
	flags.StringVar(&cfg.StorageRoot, "root", base.StorageRoot, "Root directory for the local driver")
	flags.StringVar(&cfg.Region, "region", base.Region, "AWS region")
	flags.StringVar(&cfg.S3Endpoint, "endpoint", base.S3Endpoint, "Endpoint URL for S3-compatible storage")
	flags.IntVar(&cfg.Concurrency, "concurrency", 1, "Number of files uploaded in parallel")
	flags.BoolVar(&cfg.IsDebug, "debug", false, "Enable debug logging")

	if err := flags.Parse(args); err != nil {
		return nil, buf.String(), err
	}

	rest := flags.Args()
	if len(rest) < 1 || len(rest) > 3 {
		flags.Usage()
		return nil, buf.String(), &ConfigurationError{Field: "bucket", Reason: "is required"}
	}

	cfg.BucketName = rest[0]
	cfg.Source = DefaultUploadSource
	if len(rest) > 1 {
		cfg.Source = rest[1]
	}
	if len(rest) > 2 {
		cfg.Prefix = rest[2]
	}

	if cfg.Concurrency < 1 {
		return nil, buf.String(), &ConfigurationError{Field: "concurrency", Reason: "must be at least 1"}
	}
	if err := cfg.validateDrivers(); err != nil {
		return nil, buf.String(), err
	}

	return &cfg, buf.String(), nil
}

// FromInvokeFlags parses `invoke [flags] <function-name> [key=value ...]`
func FromInvokeFlags(base *Config, name string, args []string) (*InvokeConfig, string, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)

	var buf bytes.Buffer
	flags.SetOutput(&buf)
	flags.Usage = func() {
		fmt.Fprintf(&buf, "Usage: %s [flags] <function-name> [key=value ...]\n", name)
		flags.PrintDefaults()
	}

	var cfg InvokeConfig
	flags.StringVar(&cfg.Region, "region", base.Region, "AWS region")
	flags.StringVar(&cfg.Endpoint, "endpoint", "", "Endpoint URL for the lambda service")
	flags.BoolVar(&cfg.IsDebug, "debug", false, "Enable debug logging")

	if err := flags.Parse(args); err != nil {
		return nil, buf.String(), err
	}

	rest := flags.Args()
	if len(rest) < 1 {
		flags.Usage()
		return nil, buf.String(), &ConfigurationError{Field: "function-name", Reason: "is required"}
	}

	cfg.FunctionName = rest[0]
	if len(rest) > 1 {
		cfg.Payload = make(map[string]string, len(rest)-1)
		for _, pair := range rest[1:] {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				return nil, buf.String(), &ConfigurationError{Field: "payload", Reason: fmt.Sprintf("expected key=value, got %q", pair)}
			}
			cfg.Payload[key] = value
		}
	}

	return &cfg, buf.String(), nil
}
