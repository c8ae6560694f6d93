package amqp

import (
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/schema"
)

const (
	ContentTypeJSON = "application/json"
	MessageType     = "anoncreds/claim_request"
)

// EncodeClaimRequest builds the persistent message carrying req.
func EncodeClaimRequest(req *schema.ClaimRequest) (amqp.Publishing, error) {
	d, err := req.Serialize()
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  ContentTypeJSON,
		Type:         MessageType,
		MessageId:    uuid.New().String(),
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         []byte(d),
	}, nil
}

// DecodeClaimRequest parses a delivery produced from EncodeClaimRequest.
func DecodeClaimRequest(d amqp.Delivery) (*schema.ClaimRequest, error) {
	if d.ContentType != "" && d.ContentType != ContentTypeJSON {
		return nil, failure.Structural(failure.MalformedInput, "unexpected content type %q", d.ContentType)
	}

	if d.Type != "" && d.Type != MessageType {
		return nil, failure.Structural(failure.MalformedInput, "unexpected message type %q", d.Type)
	}

	return schema.ParseClaimRequest(d.Body)
}
