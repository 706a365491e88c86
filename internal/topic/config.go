package topic

import (
	"github.com/hillalee/s3-lister/internal/config"
)

type TopicDriver string

const (
	DriverSNS   TopicDriver = "sns"
	DriverLocal TopicDriver = "local"
)

type TopicItem struct {
	Driver TopicDriver
	Topic  string

	// SNS specific fields
	Region  string
	BaseURL string

	// Local specific fields
	Outbox string
}

// ItemFromConfig builds the topic settings out of the process config
func ItemFromConfig(cfg *config.Config) TopicItem {
	return TopicItem{
		Driver:  TopicDriver(cfg.TopicDriver),
		Topic:   cfg.TopicARN,
		Region:  cfg.Region,
		BaseURL: cfg.SNSEndpoint,
		Outbox:  cfg.TopicOutbox,
	}
}
