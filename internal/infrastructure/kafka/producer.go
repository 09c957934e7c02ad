package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DRSN-tech/go-recommender/internal/cfg"
	"github.com/DRSN-tech/go-recommender/internal/usecase"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

const headerEventType = "event_type"

// Producer публикует события корзины в Kafka. Запись асинхронная: ошибки доставки только логируются.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %d cart events lost: %s", len(messages), err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

// PublishCartEvent ставит событие в очередь на отправку. Ключ сообщения — идентификатор сессии,
// поэтому события одной корзины попадают в одну партицию и сохраняют порядок.
func (p *Producer) PublishCartEvent(ctx context.Context, event *usecase.CartEvent) error {
	msg, err := NewCartEventMessage(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// NewCartEventMessage сериализует событие в JSON-сообщение Kafka.
func NewCartEventMessage(event *usecase.CartEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(event.SessionID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(event.Type)},
		},
	}, nil
}

func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

// Close дожидается отправки буферизованных сообщений.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда брокеры не настроены.
type NopPublisher struct{}

func (NopPublisher) PublishCartEvent(context.Context, *usecase.CartEvent) error {
	return nil
}
