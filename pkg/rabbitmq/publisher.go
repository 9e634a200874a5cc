package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// publishChannel is the part of *amqp.Channel the publisher uses.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type connectFunc func() (*amqp.Connection, publishChannel, error)

// Publisher redials lazily: a publish after the broker dropped the
// connection opens a new one instead of failing until restart.
type Publisher struct {
	connect connectFunc
	log     *zap.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel publishChannel
}

func NewPublisher(url, queue string, log *zap.Logger) (*Publisher, error) {
	p := newPublisher(func() (*amqp.Connection, publishChannel, error) {
		conn, ch, err := dial(url, queue)
		if err != nil {
			return nil, nil, err
		}
		return conn, ch, nil
	}, log)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.channelLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func newPublisher(connect connectFunc, log *zap.Logger) *Publisher {
	return &Publisher{connect: connect, log: log.With(zap.String("component", "rabbitmq.publisher"))}
}

// Publish sends payload as a persistent JSON message and returns its message
// id, which serves as the delivery token.
func (p *Publisher) Publish(ctx context.Context, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := ch.PublishWithContext(
		ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    token,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		if errors.Is(err, amqp.ErrClosed) {
			p.resetLocked()
		}
		return "", fmt.Errorf("publish message: %w", err)
	}

	p.log.Debug("published", zap.String("exchange", ExchangeName), zap.String("routing_key", RoutingKey), zap.String("message_id", token))
	return token, nil
}

// channelLocked returns the open channel, dialing a new one if the previous
// connection is gone. p.mu must be held.
func (p *Publisher) channelLocked() (publishChannel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}
	if p.channel != nil {
		p.log.Info("rabbitmq channel closed, redialing")
	}
	p.resetLocked()

	conn, ch, err := p.connect()
	if err != nil {
		return nil, err
	}
	p.conn, p.channel = conn, ch
	if conn != nil {
		p.watch(conn)
	}
	return ch, nil
}

func (p *Publisher) watch(conn *amqp.Connection) {
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		if err, ok := <-closed; ok && err != nil {
			p.log.Warn("rabbitmq connection lost, will redial on next publish", zap.Error(err))
		}
	}()
}

func (p *Publisher) resetLocked() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}
