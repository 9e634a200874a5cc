package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Eursukkul/doctor-booking/internal/email"
	"github.com/Eursukkul/doctor-booking/internal/notification"
	"github.com/Eursukkul/doctor-booking/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Fake Acknowledger ---

type ackRecord struct {
	acked   bool
	nacked  bool
	requeue bool
}

type fakeAcknowledger struct {
	rec *ackRecord
}

func (f fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.rec.acked = true
	return nil
}
func (f fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.rec.nacked = true
	f.rec.requeue = requeue
	return nil
}
func (f fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

// --- Mock Sender ---

type sentMail struct{ to, subject, body string }

type mockSender struct {
	sent []sentMail
	err  error
}

func (m *mockSender) Send(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func delivery(t *testing.T, body []byte, redelivered bool) (amqp.Delivery, *ackRecord) {
	t.Helper()
	rec := &ackRecord{}
	return amqp.Delivery{
		Acknowledger: fakeAcknowledger{rec: rec},
		MessageId:    "msg-1",
		Body:         body,
		Redelivered:  redelivered,
	}, rec
}

func confirmation(t *testing.T, recipient string) []byte {
	t.Helper()
	b, err := json.Marshal(notification.Message{
		Recipient: recipient,
		Subject:   notification.ConfirmationSubject,
		Body:      "Congratulations, Alice!",
	})
	require.NoError(t, err)
	return b
}

func TestHandleMessage_Sends(t *testing.T) {
	sender := &mockSender{}
	m := metrics.New("test")
	mc := NewMailConsumer(sender, m, zap.NewNop())
	msg, rec := delivery(t, confirmation(t, "alice@example.com"), false)

	mc.handleMessage(context.Background(), msg)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "alice@example.com", sender.sent[0].to)
	assert.Equal(t, notification.ConfirmationSubject, sender.sent[0].subject)
	assert.True(t, rec.acked)
	assert.False(t, rec.nacked)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MailDeliveries.WithLabelValues("sent")))
}

func TestHandleMessage_MalformedIsDropped(t *testing.T) {
	sender := &mockSender{}
	mc := NewMailConsumer(sender, nil, zap.NewNop())
	msg, rec := delivery(t, []byte("{not json"), false)

	mc.handleMessage(context.Background(), msg)

	assert.Empty(t, sender.sent)
	assert.True(t, rec.nacked)
	assert.False(t, rec.requeue)
}

func TestHandleMessage_NoRecipientIsAcked(t *testing.T) {
	sender := &mockSender{}
	mc := NewMailConsumer(sender, nil, zap.NewNop())
	msg, rec := delivery(t, confirmation(t, ""), false)

	mc.handleMessage(context.Background(), msg)

	assert.Empty(t, sender.sent)
	assert.True(t, rec.acked)
}

func TestHandleMessage_SendFailureRequeuesOnce(t *testing.T) {
	sender := &mockSender{err: errors.New("smtp unavailable")}
	m := metrics.New("test")
	mc := NewMailConsumer(sender, m, zap.NewNop())

	first, rec := delivery(t, confirmation(t, "alice@example.com"), false)
	mc.handleMessage(context.Background(), first)
	assert.True(t, rec.nacked)
	assert.True(t, rec.requeue)

	second, rec := delivery(t, confirmation(t, "alice@example.com"), true)
	mc.handleMessage(context.Background(), second)
	assert.True(t, rec.nacked)
	assert.False(t, rec.requeue)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MailDeliveries.WithLabelValues("retry")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MailDeliveries.WithLabelValues("dropped")))
}

func TestHandleMessage_CancelledContextRequeuesWithoutSending(t *testing.T) {
	sender := &mockSender{}
	m := metrics.New("test")
	mc := NewMailConsumer(sender, m, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msg, rec := delivery(t, confirmation(t, "alice@example.com"), true)

	mc.handleMessage(ctx, msg)

	assert.Empty(t, sender.sent)
	assert.True(t, rec.nacked)
	assert.True(t, rec.requeue)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.MailDeliveries.WithLabelValues("dropped")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.MailDeliveries.WithLabelValues("retry")))
}

// The real SMTP sender refuses to dial once the context is done; the
// redelivered message must still go back to the queue.
func TestHandleMessage_SMTPSenderShutdownKeepsRedelivered(t *testing.T) {
	sender := email.NewSMTPSender(email.SMTPConfig{Host: "127.0.0.1", Port: 1, From: "noreply@practo.test"})
	mc := NewMailConsumer(sender, nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msg, rec := delivery(t, confirmation(t, "alice@example.com"), true)

	mc.handleMessage(ctx, msg)

	assert.True(t, rec.nacked)
	assert.True(t, rec.requeue)
	assert.False(t, rec.acked)
}

type cancellingSender struct {
	cancel context.CancelFunc
}

func (s cancellingSender) Send(ctx context.Context, to, subject, body string) error {
	s.cancel()
	return ctx.Err()
}

func TestHandleMessage_ShutdownDuringSendRequeues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mc := NewMailConsumer(cancellingSender{cancel: cancel}, nil, zap.NewNop())
	msg, rec := delivery(t, confirmation(t, "alice@example.com"), true)

	mc.handleMessage(ctx, msg)

	assert.True(t, rec.nacked)
	assert.True(t, rec.requeue)
}

func TestStart_StopsWhenChannelCloses(t *testing.T) {
	sender := &mockSender{}
	mc := NewMailConsumer(sender, nil, zap.NewNop())
	msgs := make(chan amqp.Delivery, 2)
	a, recA := delivery(t, confirmation(t, "a@example.com"), false)
	b, recB := delivery(t, confirmation(t, "b@example.com"), false)
	msgs <- a
	msgs <- b
	close(msgs)

	<-mc.Start(context.Background(), msgs)

	assert.Len(t, sender.sent, 2)
	assert.True(t, recA.acked)
	assert.True(t, recB.acked)
}
