package kafka

import (
	"context"
	"strconv"
	"strings"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// messageSender — часть Producer, нужная издателю.
type messageSender interface {
	Send(ctx context.Context, msg Message) error
}

// CheckoutPublisher публикует domain.CheckoutEvent в Kafka с ключом по корзине,
// чтобы события одной корзины попадали в одну партицию.
type CheckoutPublisher struct {
	sender messageSender
	topic  string
}

// NewCheckoutPublisher создаёт издателя. Пустой topic заменяется на TopicCheckoutEvents.
func NewCheckoutPublisher(producer *Producer, topic string) *CheckoutPublisher {
	return newCheckoutPublisher(producer, topic)
}

func newCheckoutPublisher(sender messageSender, topic string) *CheckoutPublisher {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = TopicCheckoutEvents
	}
	return &CheckoutPublisher{sender: sender, topic: topic}
}

// Topic возвращает topic публикации.
func (p *CheckoutPublisher) Topic() string {
	return p.topic
}

// Publish реализует domain.EventPublisher.
func (p *CheckoutPublisher) Publish(ctx context.Context, event domain.CheckoutEvent) error {
	return p.sender.Send(ctx, Message{
		Topic:   p.topic,
		Key:     strconv.FormatInt(event.CartID, 10),
		Payload: event,
		Headers: map[string]string{
			HeaderEventType: string(event.Type),
			HeaderAttemptID: event.AttemptID,
			HeaderSource:    sourceName,
		},
	})
}

var _ domain.EventPublisher = (*CheckoutPublisher)(nil)
