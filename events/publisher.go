package events

import (
	"context"
	"encoding/json"

	"checkout-service/kafka"
	"checkout-service/models"
	awspkg "checkout-service/pkg/aws"

	"go.uber.org/zap"
)

// Publisher fans order lifecycle events out to Kafka and SNS. Publishing is
// best-effort: it runs only after the owning transaction committed, and a
// delivery failure is logged, never surfaced to the caller.
type Publisher struct {
	producer    kafka.ProducerAPI
	snsClient   awspkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func NewPublisher(producer kafka.ProducerAPI, snsClient awspkg.SNSPublisher, snsTopicArn string, logger *zap.Logger) *Publisher {
	return &Publisher{
		producer:    producer,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

func (p *Publisher) PublishOrderEvent(ctx context.Context, event models.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal order event", zap.Error(err))
		return
	}

	if p.producer != nil {
		if err := p.producer.Publish(ctx, event.OrderID, data); err != nil {
			p.logger.Error("Failed to publish order event to Kafka",
				zap.String("event_type", event.EventType),
				zap.String("order_id", event.OrderID),
				zap.Error(err),
			)
		}
	}

	if p.snsClient != nil && p.snsTopicArn != "" {
		if err := p.snsClient.Publish(ctx, p.snsTopicArn, data); err != nil {
			p.logger.Error("Failed to publish order event to SNS",
				zap.String("event_type", event.EventType),
				zap.String("order_id", event.OrderID),
				zap.Error(err),
			)
		}
	}
}
