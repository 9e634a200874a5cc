package notification

import (
	"context"
	"fmt"

	"github.com/Eursukkul/doctor-booking/internal/models"
	"github.com/Eursukkul/doctor-booking/pkg/metrics"
	"go.uber.org/zap"
)

const ConfirmationSubject = "Congratulations! Your Doctor Appointment Has Been Booked..."

// Message is the payload placed on the notification channel.
type Message struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Publisher hands a payload to the asynchronous message channel and returns
// a delivery token.
type Publisher interface {
	Publish(ctx context.Context, payload any) (string, error)
}

type Dispatcher interface {
	NotifyBookingConfirmed(ctx context.Context, user models.User, booking models.Booking, doctor models.Doctor) error
}

type dispatcher struct {
	publisher Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewDispatcher(publisher Publisher, m *metrics.Metrics, log *zap.Logger) Dispatcher {
	return &dispatcher{publisher: publisher, metrics: m, log: log.With(zap.String("component", "notification"))}
}

// NotifyBookingConfirmed enqueues the confirmation mail. Delivery and retries
// are owned by the channel; a publish error is returned unchanged in meaning.
func (d *dispatcher) NotifyBookingConfirmed(ctx context.Context, user models.User, booking models.Booking, doctor models.Doctor) error {
	msg := ComposeConfirmation(user, booking, doctor)

	token, err := d.publisher.Publish(ctx, msg)
	if err != nil {
		d.metrics.ObserveNotification("error")
		return fmt.Errorf("publish booking confirmation: %w", err)
	}

	d.metrics.ObserveNotification("ok")
	d.log.Info("booking confirmation queued",
		zap.String("booking_id", booking.ID.String()),
		zap.String("delivery_token", token),
		zap.Bool("has_recipient", msg.Recipient != ""),
	)
	return nil
}

func ComposeConfirmation(user models.User, booking models.Booking, doctor models.Doctor) Message {
	body := "Congratulations, " + user.Firstname + "! Your appointment has been booked successfully!\n" +
		"\n" +
		"We are pleased to confirm your Doctor reservation. Below are the details of your booking:\n" +
		"\n" +
		"- **Doctor Name:** " + doctor.Name + "\n" +
		"- **Patient Name(s):** " + user.Firstname + " " + user.Lastname + "\n" +
		"- **Booking Reference:** " + booking.ID.String() + "\n" +
		"\n" +
		"You will receive a confirmation email shortly with all the details regarding your appointment. Please check your inbox, and remember to check your spam or junk folder if you do not see the email.\n" +
		"\n" +
		"\n\n" +
		"\n" +
		"If you have any questions or need assistance, feel free to contact our customer support team at +353 899 999 999.\n" +
		"\n" +
		"Thank you for choosing Practo! We look forward to serving you.\n" +
		"\n" +
		"Best regards,  \n" +
		"- Team Practo\n"

	return Message{
		Recipient: user.Email,
		Subject:   ConfirmationSubject,
		Body:      body,
	}
}
