package application

import (
	"context"

	"github.com/code2day/recipe-api/pkg/helpers"
	"github.com/code2day/recipe-api/pkg/notify"
)

// Notifier dispatches a verification code to a contact point out of band.
// The call is awaited: a dispatch failure fails the registration step that
// triggered it instead of being swallowed.
type Notifier interface {
	SendCode(ctx context.Context, job notify.Job) error
}

// QueueNotifier hands the job to the notify worker via RabbitMQ. A publish
// failure propagates to the caller; actual delivery failures are retried by
// the worker (nack with requeue).
type QueueNotifier struct {
	Pub *helpers.RabbitPublisher
}

func NewQueueNotifier(pub *helpers.RabbitPublisher) *QueueNotifier {
	return &QueueNotifier{Pub: pub}
}

func (n *QueueNotifier) SendCode(ctx context.Context, job notify.Job) error {
	return n.Pub.PublishJSON(ctx, job)
}
