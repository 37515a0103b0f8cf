package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

// ErrNoBrokers возвращается, если список брокеров пуст.
var ErrNoBrokers = errors.New("kafka: no brokers configured")

// ProducerConfig задаёт подключение producer'а.
type ProducerConfig struct {
	Brokers []string
	// ClientID попадает в метаданные запросов к брокерам ([A-Za-z0-9._-]).
	ClientID string
}

func (c ProducerConfig) sarama() *sarama.Config {
	config := sarama.NewConfig()
	if id := strings.TrimSpace(c.ClientID); id != "" {
		config.ClientID = id
	}
	// Idempotent требует WaitForAll и MaxOpenRequests=1.
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	return config
}

// Message — JSON-сообщение для отправки.
type Message struct {
	Topic   string
	Key     string
	Payload any
	Headers map[string]string
}

// Producer отправляет JSON-сообщения через синхронный sarama producer.
type Producer struct {
	producer sarama.SyncProducer
	// client — nil для producer'ов, созданных поверх готового SyncProducer.
	client sarama.Client
	logger *log.Entry
}

// NewProducer подключается к брокерам.
func NewProducer(cfg ProducerConfig, logger *log.Entry) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	client, err := sarama.NewClient(cfg.Brokers, cfg.sarama())
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	producer, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	p := newProducer(producer, logger)
	p.client = client
	return p, nil
}

func newProducer(producer sarama.SyncProducer, logger *log.Entry) *Producer {
	if logger == nil {
		logger = log.New().WithField("component", "kafka-producer")
	}
	return &Producer{producer: producer, logger: logger}
}

// Send сериализует Payload и дожидается подтверждения брокера.
func (p *Producer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send to %s: %w", msg.Topic, err)
	}

	value, err := json.Marshal(msg.Payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", msg.Topic, err)
	}

	out := &sarama.ProducerMessage{
		Topic:     msg.Topic,
		Key:       sarama.StringEncoder(msg.Key),
		Value:     sarama.ByteEncoder(value),
		Timestamp: time.Now().UTC(),
	}
	for name, v := range msg.Headers {
		out.Headers = append(out.Headers, sarama.RecordHeader{Key: []byte(name), Value: []byte(v)})
	}

	entry := p.logger.WithFields(log.Fields{"topic": msg.Topic, "key": msg.Key})
	partition, offset, err := p.producer.SendMessage(out)
	if err != nil {
		entry.WithError(err).Error("kafka send failed")
		return fmt.Errorf("send to %s: %w", msg.Topic, err)
	}

	entry.WithFields(log.Fields{"partition": partition, "offset": offset}).Debug("kafka message sent")
	return nil
}

// Ping проверяет, что клиент открыт и хотя бы один брокер доступен.
func (p *Producer) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.client == nil {
		return nil
	}
	if p.client.Closed() {
		return errors.New("kafka client is closed")
	}
	if err := p.client.RefreshMetadata(); err != nil {
		return fmt.Errorf("refresh kafka metadata: %w", err)
	}
	return nil
}

// Close закрывает producer и его клиент.
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}
	if p.client != nil && !p.client.Closed() {
		if err := p.client.Close(); err != nil {
			return fmt.Errorf("close kafka client: %w", err)
		}
	}
	return nil
}
