package rabbitmq

import (
	"github.com/pkg/errors"
	"github.com/streadway/amqp"

	"github.com/scoir/anoncreds/pkg/framework"
)

// DefaultQueue carries claim requests when the configuration names none.
const DefaultQueue = "claim-requests"

type connection struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func dial(conf *framework.AMQPConfig) (*connection, error) {
	if conf == nil {
		return nil, errors.New("amqp configuration is required")
	}

	queue := conf.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(conf.Endpoint())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to dial AMQP at %s:%d", conf.Host, conf.Port)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "unable to create an AMQP channel")
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "unable to declare claim request queue %s", queue)
	}

	return &connection{conn: conn, ch: ch, queue: queue}, nil
}

// Queue names the queue the connection serves.
func (r *connection) Queue() string {
	return r.queue
}

func (r *connection) Close() error {
	return r.conn.Close()
}
