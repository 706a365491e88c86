package main

import (
	"errors"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/hillalee/s3-lister/internal/config"
	"github.com/hillalee/s3-lister/internal/handler"
	"github.com/hillalee/s3-lister/internal/logger"
	"github.com/hillalee/s3-lister/internal/notifier"
	"github.com/hillalee/s3-lister/internal/storage"
	"github.com/hillalee/s3-lister/internal/topic"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	logger.InitFromEnv()
	defer logger.Sync()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			logger.Errorf("[Notifier] Refusing to start: %v", cfgErr)
		} else {
			logger.Errorf("[Notifier] Invalid configuration: %v", err)
		}
		logger.Sync()
		os.Exit(1)
	}

	logger.Infof("[Notifier] Starting bucket inventory notifier: bucket=%s, topic=%s", cfg.BucketName, cfg.TopicARN)

	store, err := storage.NewStorage(storage.ItemFromConfig(cfg, cfg.BucketName))
	if err != nil {
		logger.Fatalf("[Notifier] Failed to initialize storage: %v", err)
	}

	publisher, err := topic.NewPublisher(topic.ItemFromConfig(cfg))
	if err != nil {
		logger.Fatalf("[Notifier] Failed to initialize topic: %v", err)
	}

	n, err := notifier.New(notifier.Config{StoreID: store.Bucket(), TopicID: publisher.Topic()}, store, publisher)
	if err != nil {
		logger.Fatalf("[Notifier] Failed to initialize notifier: %v", err)
	}

	h := handler.NewInventoryHandler(n)
	lambda.Start(h.Handle)
}
