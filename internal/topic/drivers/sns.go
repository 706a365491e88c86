package drivers

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/hillalee/s3-lister/internal/logger"
)

// MaxSubjectLength is the longest subject SNS accepts for email endpoints
const MaxSubjectLength = 100

// SNSAPI is the subset of the SNS client used by the driver
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var _ SNSAPI = (*sns.Client)(nil)

type SNSClient struct {
	client   SNSAPI
	topicARN string
}

func NewSNSClient(region, topicARN, baseURL string) (*SNSClient, error) {
	logger.Infof("[SNS Topic] Initializing SNS publisher: topic=%s, region=%s", topicARN, region)

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sns.NewFromConfig(cfg, func(o *sns.Options) {
		if baseURL != "" {
			o.BaseEndpoint = aws.String(baseURL)
		}
	})

	return NewSNSClientWithAPI(client, topicARN), nil
}

// NewSNSClientWithAPI binds an existing SNS API implementation to topicARN
func NewSNSClientWithAPI(api SNSAPI, topicARN string) *SNSClient {
	return &SNSClient{
		client:   api,
		topicARN: topicARN,
	}
}

func (c *SNSClient) Topic() string {
	return c.topicARN
}

func (c *SNSClient) Publish(ctx context.Context, subject, body string) (string, error) {
	subject = truncateSubject(subject)

	logger.Debugf("[SNS Topic] Publishing message: topic=%s, subject=%q, size=%d bytes", c.topicARN, subject, len(body))
	out, err := c.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(body),
	})
	if err != nil {
		logger.Errorf("[SNS Topic] Error publishing message: topic=%s, error=%v", c.topicARN, err)
		return "", err
	}

	messageID := aws.ToString(out.MessageId)
	logger.Debugf("[SNS Topic] Published message: topic=%s, messageId=%s", c.topicARN, messageID)
	return messageID, nil
}

// truncateSubject cuts subject to MaxSubjectLength bytes without splitting a rune
func truncateSubject(subject string) string {
	if len(subject) <= MaxSubjectLength {
		return subject
	}

	cut := MaxSubjectLength
	for cut > 0 && !utf8.RuneStart(subject[cut]) {
		cut--
	}
	return subject[:cut]
}
