package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cardpay/internal/config"
	"cardpay/internal/domain/entities"
	"cardpay/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
)

const (
	EventPaymentProcessed = "payment.processed"
	writeTimeout          = 10 * time.Second
)

// PaymentProcessedEvent is the message value published after a successful
// charge. It carries the stored projection only, never card data.
type PaymentProcessedEvent struct {
	Type      string    `json:"type"`
	PaymentID string    `json:"payment_id"`
	Processor string    `json:"processor"`
	Price     string    `json:"price"`
	Currency  string    `json:"currency"`
	Name      string    `json:"name"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPaymentProcessedEvent(p entities.PaymentRecord) PaymentProcessedEvent {
	return PaymentProcessedEvent{
		Type:      EventPaymentProcessed,
		PaymentID: p.ID,
		Processor: p.Result.Processor,
		Price:     p.Order.Price,
		Currency:  p.Order.Currency,
		Name:      p.Order.Name,
		Response:  p.Result.Response,
		CreatedAt: p.CreatedAt,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPaymentPublisher writes payment events keyed by payment ID, so every
// event of one payment lands on the same partition.
type KafkaPaymentPublisher struct {
	writer messageWriter
	topic  string
}

var _ interfaces.IPaymentEventPublisher = (*KafkaPaymentPublisher)(nil)

func NewKafkaPaymentPublisher(cfg config.KafkaConfig) *KafkaPaymentPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.PaymentsTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("[payment][kafka] "+msg, args...)
		}),
	}
	log.Printf("[payment][kafka] publisher initialized brokers=%v topic=%s", cfg.Brokers, cfg.PaymentsTopic)
	return &KafkaPaymentPublisher{writer: writer, topic: cfg.PaymentsTopic}
}

func (p *KafkaPaymentPublisher) PublishPaymentProcessed(ctx context.Context, rec entities.PaymentRecord) error {
	value, err := json.Marshal(NewPaymentProcessedEvent(rec))
	if err != nil {
		return fmt.Errorf("failed to encode payment event: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(rec.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(EventPaymentProcessed)},
		},
	}); err != nil {
		log.Printf("[payment][kafka] publish failed topic=%s payment_id=%s err=%v", p.topic, rec.ID, err)
		return fmt.Errorf("failed to produce message to Kafka: %w", err)
	}
	log.Printf("[payment][kafka] published topic=%s payment_id=%s", p.topic, rec.ID)
	return nil
}

func (p *KafkaPaymentPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	log.Printf("[payment][kafka] publisher closed")
	return nil
}
