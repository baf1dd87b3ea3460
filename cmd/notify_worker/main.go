package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/code2day/recipe-api/config"
	"github.com/code2day/recipe-api/pkg/helpers"
	"github.com/code2day/recipe-api/pkg/notify"
)

type codeSender interface {
	SendCode(ctx context.Context, job notify.Job) error
}

// The worker drains the notification queue and delivers verification codes
// over the channel each job names: Mailgun for email, Twilio for SMS.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger("notify-worker", cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		logger.WithError(err).Fatal("could not connect to rabbitmq")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("could not open channel")
	}
	defer func() { _ = ch.Close() }()

	q, err := ch.QueueDeclare(cfg.NotifyQueue, true, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("could not declare queue")
	}
	if err := ch.Qos(8, 0, false); err != nil {
		logger.WithError(err).Fatal("could not set qos")
	}

	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("could not start consumer")
	}

	senders := map[notify.Channel]codeSender{
		notify.ChannelEmail: notify.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		notify.ChannelSMS:   notify.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom),
	}

	logger.WithField("queue", q.Name).Info("worker consuming")

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			handle(ctx, d, senders, logger)
		}
	}
}

func handle(ctx context.Context, d amqp.Delivery, senders map[notify.Channel]codeSender, logger *logrus.Logger) {
	var job notify.Job
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.WithError(err).Error("malformed job dropped")
		_ = d.Nack(false, false)
		return
	}

	sender, ok := senders[job.Channel]
	if !ok {
		logger.WithField("channel", string(job.Channel)).Error("unknown channel, job dropped")
		_ = d.Nack(false, false)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := sender.SendCode(sendCtx, job); err != nil {
		requeue := !d.Redelivered
		logger.WithError(err).WithFields(logrus.Fields{
			"channel": string(job.Channel),
			"requeue": requeue,
		}).Error("delivery failed")
		_ = d.Nack(false, requeue)
		return
	}

	logger.WithField("channel", string(job.Channel)).Info("code delivered")
	_ = d.Ack(false)
}
