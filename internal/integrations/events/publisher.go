package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// channel часть *amqp.Channel, которую использует Publisher
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует события бронирований в topic exchange RabbitMQ
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// NewPublisher подключается к RabbitMQ и объявляет durable topic exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial rabbitmq: %w", ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %w", ErrConnect, err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange: %w", ErrConnect, err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// PublishReservationCreated публикует reservation.created
func (p *Publisher) PublishReservationCreated(ctx context.Context, r *domain.Reservation) error {
	return p.publishJSON(ctx, RoutingKeyReservationCreated, newReservationEvent(r, time.Now()))
}

// PublishReservationCancelled публикует reservation.cancelled
func (p *Publisher) PublishReservationCancelled(ctx context.Context, r *domain.Reservation) error {
	return p.publishJSON(ctx, RoutingKeyReservationCancelled, newReservationEvent(r, time.Now()))
}

func (p *Publisher) publishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, key, err)
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, key, err)
	}
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher используется, когда публикация событий выключена в конфиге
type NopPublisher struct{}

func (NopPublisher) PublishReservationCreated(context.Context, *domain.Reservation) error {
	return nil
}

func (NopPublisher) PublishReservationCancelled(context.Context, *domain.Reservation) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
