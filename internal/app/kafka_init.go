package app

import (
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/checkout/internal/health"
	"github.com/vladislavdragonenkov/checkout/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/checkout/internal/version"
)

// eventPipeline — Kafka producer и издатель событий чекаута поверх него.
type eventPipeline struct {
	producer  *kafka.Producer
	publisher *kafka.CheckoutPublisher
}

// initEventPipeline подключается к Kafka, если брокеры заданы.
// Пустой список — nil, nil: сервис работает без публикации событий.
func initEventPipeline(cfg Config, logger *log.Entry) (*eventPipeline, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:  cfg.KafkaBrokers,
		ClientID: "checkout-service-" + version.GetVersion(),
	}, logger.WithField("component", "kafka"))
	if err != nil {
		logger.WithError(err).Warn("kafka unavailable, checkout events will not be published")
		return nil, err
	}

	pipeline := &eventPipeline{
		producer:  producer,
		publisher: kafka.NewCheckoutPublisher(producer, cfg.KafkaTopic),
	}
	logger.WithFields(log.Fields{
		"brokers": cfg.KafkaBrokers,
		"topic":   pipeline.publisher.Topic(),
	}).Info("checkout events will be published to kafka")
	return pipeline, nil
}

// checker — необязательная health-проверка Kafka.
func (p *eventPipeline) checker() healthcheck.Checker {
	return healthcheck.NewPingChecker("kafka", p.producer)
}

// close закрывает producer. Безопасен для nil.
func (p *eventPipeline) close(logger *log.Entry) {
	if p == nil || p.producer == nil {
		return
	}

	if err := p.producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
