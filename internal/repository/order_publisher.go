package repository

import (
	"context"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	pkgkafka "github.com/yongkyu4803/2510-MCdata/pkg/kafka"
)

// KafkaOrderPublisher emits computed orders to a Kafka topic, keyed by song
// name so one song's orders land on one partition in order. Implements
// repository.Publisher.
type KafkaOrderPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaOrderPublisher(producer *pkgkafka.Producer, topic string) *KafkaOrderPublisher {
	if topic == "" {
		topic = "market-orders"
	}
	return &KafkaOrderPublisher{producer: producer, topic: topic}
}

// PublishBatch sends the batch in one writer call.
func (p *KafkaOrderPublisher) PublishBatch(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	msgs := make([]pkgkafka.Message, 0, len(orders))
	for i := range orders {
		msgs = append(msgs, pkgkafka.Message{
			Key:   []byte(orders[i].SongName),
			Value: orders[i],
		})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaOrderPublisher) Close() error {
	return p.producer.Close()
}
