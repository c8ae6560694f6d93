package amqp_test

import (
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/require"

	anoncredsamqp "github.com/scoir/anoncreds/pkg/amqp"
	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/internal/testutil"
	"github.com/scoir/anoncreds/pkg/schema"
)

func claimRequest() *schema.ClaimRequest {
	return &schema.ClaimRequest{
		ProverDID: testutil.ProverDID,
		IssuerDID: testutil.IssuerDID,
		SchemaKey: testutil.GVTSchemaKey(1),
		BlindedMS: schema.BlindedMasterSecret{U: "12345"},
		BlindedMSCorrectnessProof: schema.BlindedMasterSecretCorrectnessProof{
			C: "1", VDashCap: "2", MsCap: "3",
		},
		Nonce: "42",
	}
}

func TestEncodeClaimRequest(t *testing.T) {
	msg, err := anoncredsamqp.EncodeClaimRequest(claimRequest())
	require.NoError(t, err)
	require.Equal(t, anoncredsamqp.ContentTypeJSON, msg.ContentType)
	require.Equal(t, anoncredsamqp.MessageType, msg.Type)
	require.Equal(t, amqp.Persistent, msg.DeliveryMode)
	require.NotEmpty(t, msg.MessageId)

	other, err := anoncredsamqp.EncodeClaimRequest(claimRequest())
	require.NoError(t, err)
	require.NotEqual(t, msg.MessageId, other.MessageId)

	got, err := anoncredsamqp.DecodeClaimRequest(amqp.Delivery{ContentType: msg.ContentType, Type: msg.Type, Body: msg.Body})
	require.NoError(t, err)
	require.Equal(t, claimRequest(), got)
}

func TestDecodeClaimRequest(t *testing.T) {
	tests := []struct {
		name     string
		delivery amqp.Delivery
		reason   failure.Reason
	}{
		{name: "content type", delivery: amqp.Delivery{ContentType: "text/plain", Body: []byte("{}")}, reason: failure.MalformedInput},
		{name: "message type", delivery: amqp.Delivery{Type: "credential", Body: []byte("{}")}, reason: failure.MalformedInput},
		{name: "body", delivery: amqp.Delivery{Body: []byte(`{"prover_did":1}`)}, reason: failure.MalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := anoncredsamqp.DecodeClaimRequest(tt.delivery)
			require.True(t, failure.Is(err, failure.StructuralInvalid))
			require.Equal(t, tt.reason, failure.ReasonOf(err))
		})
	}
}
