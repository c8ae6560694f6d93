package rabbitmq

import (
	"context"

	"github.com/pkg/errors"

	anoncredsamqp "github.com/scoir/anoncreds/pkg/amqp"
	"github.com/scoir/anoncreds/pkg/framework"
	"github.com/scoir/anoncreds/pkg/schema"
)

// Publisher sends claim requests to the configured queue.
type Publisher struct {
	*connection
}

func NewPublisher(conf *framework.AMQPConfig) (*Publisher, error) {
	c, err := dial(conf)
	if err != nil {
		return nil, err
	}

	return &Publisher{connection: c}, nil
}

func (r *Publisher) Publish(ctx context.Context, req *schema.ClaimRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := anoncredsamqp.EncodeClaimRequest(req)
	if err != nil {
		return err
	}

	err = r.ch.Publish(
		"",      // exchange
		r.queue, // routing key
		false,   // mandatory
		false,   // immediate
		msg)

	return errors.Wrapf(err, "unable to publish claim request to %s", r.queue)
}
