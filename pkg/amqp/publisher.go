package amqp

import (
	"context"

	"github.com/scoir/anoncreds/pkg/schema"
)

// Publisher hands claim requests to the issuer's queue.
//go:generate mockery -name=Publisher
type Publisher interface {
	Publish(ctx context.Context, req *schema.ClaimRequest) error
	Close() error
}
