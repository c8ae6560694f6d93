package amqp

import (
	"context"

	"github.com/scoir/anoncreds/pkg/schema"
)

// Delivery is one message taken off the claim request queue. Err is set,
// and the message already rejected, when the body did not decode.
type Delivery struct {
	MessageID string
	Request   *schema.ClaimRequest
	Err       error
}

//go:generate mockery -name=Listener
type Listener interface {
	Listen(ctx context.Context) (<-chan Delivery, error)
	Close() error
}
