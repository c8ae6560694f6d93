package rabbitmq

import (
	"context"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"

	anoncredsamqp "github.com/scoir/anoncreds/pkg/amqp"
	"github.com/scoir/anoncreds/pkg/framework"
)

// Listener consumes claim requests from the configured queue.
type Listener struct {
	*connection
}

func NewListener(conf *framework.AMQPConfig) (*Listener, error) {
	c, err := dial(conf)
	if err != nil {
		return nil, err
	}

	return &Listener{connection: c}, nil
}

// Listen decodes deliveries until ctx is done or the channel closes.
// Decoded messages are acked, undecodable ones rejected without requeue.
func (r *Listener) Listen(ctx context.Context) (<-chan anoncredsamqp.Delivery, error) {
	msgs, err := r.ch.Consume(
		r.queue, // queue
		"",      // consumer
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to consume %s", r.queue)
	}

	out := make(chan anoncredsamqp.Delivery)
	go relay(ctx, msgs, out)

	return out, nil
}

func relay(ctx context.Context, msgs <-chan amqp.Delivery, out chan<- anoncredsamqp.Delivery) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-msgs:
			if !ok {
				return
			}

			req, err := anoncredsamqp.DecodeClaimRequest(m)
			if err != nil {
				_ = m.Reject(false)
			} else {
				_ = m.Ack(false)
			}

			select {
			case out <- anoncredsamqp.Delivery{MessageID: m.MessageId, Request: req, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}
}
