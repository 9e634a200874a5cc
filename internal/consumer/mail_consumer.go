package consumer

import (
	"context"
	"encoding/json"

	"github.com/Eursukkul/doctor-booking/internal/email"
	"github.com/Eursukkul/doctor-booking/internal/notification"
	"github.com/Eursukkul/doctor-booking/pkg/metrics"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// MailConsumer delivers queued booking confirmations by mail.
type MailConsumer struct {
	sender  email.Sender
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewMailConsumer(sender email.Sender, m *metrics.Metrics, log *zap.Logger) *MailConsumer {
	return &MailConsumer{sender: sender, metrics: m, log: log.With(zap.String("component", "mail.consumer"))}
}

// Start handles deliveries until msgs is closed. The returned channel is
// closed once the loop exits.
func (mc *MailConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			mc.handleMessage(ctx, msg)
		}
		mc.log.Info("delivery channel closed, stopping consumer")
	}()
	return done
}

func (mc *MailConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var m notification.Message
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		mc.log.Error("failed to unmarshal confirmation", zap.String("message_id", msg.MessageId), zap.Error(err))
		mc.metrics.ObserveMail("malformed")
		_ = msg.Nack(false, false)
		return
	}

	// Placeholder profiles carry no address; there is nobody to mail.
	if m.Recipient == "" {
		mc.log.Warn("confirmation has no recipient, dropping", zap.String("message_id", msg.MessageId))
		mc.metrics.ObserveMail("no_recipient")
		_ = msg.Ack(false)
		return
	}

	if ctx.Err() != nil {
		mc.handBack(msg, ctx.Err())
		return
	}

	if err := mc.sender.Send(ctx, m.Recipient, m.Subject, m.Body); err != nil {
		// A send cut short by shutdown does not use up the message's retry.
		if ctx.Err() != nil {
			mc.handBack(msg, err)
			return
		}
		requeue := !msg.Redelivered
		mc.log.Error("failed to send confirmation",
			zap.String("message_id", msg.MessageId),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		if requeue {
			mc.metrics.ObserveMail("retry")
		} else {
			mc.metrics.ObserveMail("dropped")
		}
		_ = msg.Nack(false, requeue)
		return
	}

	mc.metrics.ObserveMail("sent")
	mc.log.Info("confirmation sent", zap.String("message_id", msg.MessageId))
	_ = msg.Ack(false)
}

// handBack returns an unsent message to the queue without counting it as a
// failed delivery.
func (mc *MailConsumer) handBack(msg amqp.Delivery, cause error) {
	mc.log.Info("shutting down, returning confirmation to queue",
		zap.String("message_id", msg.MessageId),
		zap.NamedError("cause", cause),
	)
	mc.metrics.ObserveMail("requeued_on_shutdown")
	_ = msg.Nack(false, true)
}
