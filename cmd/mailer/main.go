package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/doctor-booking/config"
	"github.com/Eursukkul/doctor-booking/internal/consumer"
	"github.com/Eursukkul/doctor-booking/internal/email"
	"github.com/Eursukkul/doctor-booking/pkg/logger"
	"github.com/Eursukkul/doctor-booking/pkg/metrics"
	"github.com/Eursukkul/doctor-booking/pkg/rabbitmq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New("doctor-booking-mailer", cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	m := metrics.New("doctor_booking")

	mq, err := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.NotificationQueue, cfg.MailerPrefetch, zl)
	if err != nil {
		zl.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}

	msgs, err := mq.Consume()
	if err != nil {
		zl.Fatal("failed to start consuming", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
	// Sends run on their own context so a signal stops deliveries first and
	// only aborts in-flight SMTP once the drain deadline passes.
	workCtx, cancelWork := context.WithCancel(context.Background())
	defer cancelWork()
	done := consumer.NewMailConsumer(sender, m, zl).Start(workCtx, msgs)

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: ":" + cfg.MailerMetricsPort, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("metrics server stopped", zap.Error(err))
		}
	}()

	zl.Info("mailer started", zap.String("queue", cfg.NotificationQueue))
	select {
	case <-ctx.Done():
	case <-done:
		zl.Warn("delivery channel closed by broker")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	// Closing the channel ends the delivery loop; unacked messages return to the queue.
	mq.Close()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		cancelWork()
		<-done
	}
	zl.Info("mailer stopped")
}
