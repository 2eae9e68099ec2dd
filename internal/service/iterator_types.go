package service

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageIterator is a source of Kafka messages with manual offset commits.
// *kafkaclient.KafkaConsumer implements it.
type MessageIterator interface {
	// Messages is closed when the consumer stops.
	Messages() <-chan kafka.Message
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// ReloadFunc reloads the services dataset.
type ReloadFunc func(ctx context.Context)

// ObjectRef names one object touched by a storage event.
type ObjectRef struct {
	EventName string
	Bucket    string
	Key       string
}
