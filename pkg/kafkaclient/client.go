package kafkaclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaReader is the subset of *kafka.Reader the consumer needs.
type KafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config selects the topic and consumer group to read.
type Config struct {
	Broker  string
	Topic   string
	GroupID string
}

// KafkaConsumer pumps messages from a reader into a channel. Offsets are
// committed explicitly through CommitOffset.
type KafkaConsumer struct {
	reader  KafkaReader
	log     *slog.Logger
	backoff time.Duration

	wg          sync.WaitGroup
	stopOnce    sync.Once
	cancel      context.CancelFunc
	messageChan chan kafka.Message
}

// NewKafkaConsumer creates a consumer for cfg. Auto-commit is disabled.
func NewKafkaConsumer(cfg Config, log *slog.Logger) (*KafkaConsumer, error) {
	if cfg.Broker == "" || cfg.Topic == "" || cfg.GroupID == "" {
		return nil, errors.New("kafka broker, topic and group id are required")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.Broker},
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		CommitInterval: 0,
		MinBytes:       1,
		MaxBytes:       10e6,
	})
	return newConsumer(reader, log), nil
}

func newConsumer(reader KafkaReader, log *slog.Logger) *KafkaConsumer {
	if log == nil {
		log = slog.Default()
	}
	return &KafkaConsumer{
		reader:      reader,
		log:         log.With(slog.String("component", "kafka_consumer")),
		backoff:     time.Second,
		messageChan: make(chan kafka.Message),
	}
}

// Messages is closed once the consumer loop exits.
func (kc *KafkaConsumer) Messages() <-chan kafka.Message {
	return kc.messageChan
}

// CommitOffset acknowledges msg.
func (kc *KafkaConsumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	kc.log.Debug("commit_offset",
		slog.String("topic", msg.Topic),
		slog.Int("partition", msg.Partition),
		slog.Int64("offset", msg.Offset),
	)
	return kc.reader.CommitMessages(ctx, msg)
}

// StartConsuming runs the read loop until ctx is done, Stop is called or the
// reader is closed.
func (kc *KafkaConsumer) StartConsuming(ctx context.Context) {
	ctx, kc.cancel = context.WithCancel(ctx)

	kc.wg.Add(1)
	go func() {
		defer kc.wg.Done()
		defer close(kc.messageChan)

		kc.log.Info("consumer_started")
		for {
			msg, err := kc.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					kc.log.Info("consumer_stopped")
					return
				}
				kc.log.Warn("read_failed", slog.String("error", err.Error()))
				select {
				case <-time.After(kc.backoff):
					continue
				case <-ctx.Done():
					return
				}
			}

			select {
			case kc.messageChan <- msg:
				kc.log.Debug("message_received",
					slog.String("topic", msg.Topic),
					slog.Int("partition", msg.Partition),
					slog.Int64("offset", msg.Offset),
				)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the read loop and closes the reader. It is safe to call more than once.
func (kc *KafkaConsumer) Stop() {
	kc.stopOnce.Do(func() {
		if kc.cancel != nil {
			kc.cancel()
		}
		kc.wg.Wait()
		if err := kc.reader.Close(); err != nil {
			kc.log.Warn("close_failed", slog.String("error", err.Error()))
		}
		kc.log.Info("consumer_closed")
	})
}
