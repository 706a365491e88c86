package topic

import (
	"fmt"

	"github.com/hillalee/s3-lister/internal/logger"
	"github.com/hillalee/s3-lister/internal/topic/drivers"
)

// NewPublisher creates the topic driver described by cfg
func NewPublisher(cfg TopicItem) (Publisher, error) {
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic: identifier is required")
	}

	var (
		pub Publisher
		err error
	)

	switch cfg.Driver {
	case DriverSNS:
		if cfg.Region == "" {
			cfg.Region = "us-east-1" // default region
		}
		pub, err = drivers.NewSNSClient(cfg.Region, cfg.Topic, cfg.BaseURL)

	case DriverLocal:
		if cfg.Outbox == "" {
			return nil, fmt.Errorf("topic '%s': outbox is required for local driver", cfg.Topic)
		}
		pub, err = drivers.NewLocalOutbox(cfg.Outbox, cfg.Topic)

	default:
		return nil, fmt.Errorf("topic '%s': unknown driver '%s'", cfg.Topic, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("topic '%s': %w", cfg.Topic, err)
	}

	logger.Infof("[Topic:%s] Initialized (driver: %s)", cfg.Topic, cfg.Driver)
	return pub, nil
}
