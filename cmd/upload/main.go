package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/hillalee/s3-lister/internal/config"
	"github.com/hillalee/s3-lister/internal/logger"
	"github.com/hillalee/s3-lister/internal/storage"
	"github.com/hillalee/s3-lister/internal/uploader"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger.InitFromEnv()
	logger.SetFormat(logger.FormatConsole)

	cfg, output, err := config.FromUploadFlags(config.Load(), os.Args[0], os.Args[1:])
	if err == flag.ErrHelp {
		fmt.Println(output)
		os.Exit(2)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if output != "" {
			fmt.Fprint(os.Stderr, output)
		}
		os.Exit(1)
	}

	if cfg.IsDebug {
		logger.SetLevelFromString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Errorf("[Upload] %v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(ctx context.Context, cfg *config.UploadConfig) error {
	store, err := storage.NewStorage(storage.ItemFromConfig(cfg.Config, cfg.BucketName))
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	uploaded, err := uploader.New(store).Upload(ctx, uploader.Options{
		Source:      cfg.Source,
		Prefix:      cfg.Prefix,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return err
	}

	logger.Infof("[Upload] Uploaded %d file(s) to %s", len(uploaded), store.Bucket())
	return nil
}
