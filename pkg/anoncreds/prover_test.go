package anoncreds

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scoir/anoncreds/pkg/cl"
	clmocks "github.com/scoir/anoncreds/pkg/cl/mocks"
	"github.com/scoir/anoncreds/pkg/datastore"
	"github.com/scoir/anoncreds/pkg/datastore/mem"
	"github.com/scoir/anoncreds/pkg/datastore/mocks"
	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/internal/testutil"
	"github.com/scoir/anoncreds/pkg/registry"
	"github.com/scoir/anoncreds/pkg/schema"
)

func newProver(t *testing.T, opts ...Option) *Prover {
	p, err := New(NewProvider(), opts...)
	require.NoError(t, err)
	require.NoError(t, p.Vault().Create(context.Background(), testutil.MasterSecretName))
	return p
}

func TestCreateClaimRequest(t *testing.T) {
	ctx := context.Background()
	defJSON := testutil.ClaimDefinitionJSON(testutil.IssuerDID, 1)

	t.Run("matching offer and definition", func(t *testing.T) {
		p := newProver(t)

		res, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.NoError(t, err)
		require.Equal(t, testutil.ProverDID, res.Request.ProverDID)
		require.Equal(t, testutil.IssuerDID, res.Request.IssuerDID)
		require.Equal(t, testutil.GVTSchemaKey(1), res.Request.SchemaKey)
		require.Empty(t, res.Request.BlindedMS.Ur)

		require.Equal(t, testutil.MasterSecretName, res.Metadata.MasterSecretName)
		require.Equal(t, res.Request.Nonce, res.Metadata.Nonce)
		require.NotEmpty(t, res.Metadata.VPrime)
		require.Empty(t, res.Metadata.VrPrime)

		req, err := schema.ParseClaimRequest([]byte(res.JSON))
		require.NoError(t, err)
		require.NoError(t, cl.VerifyClaimRequest(testutil.ClaimDefinition(testutil.IssuerDID, 1), req))
	})

	t.Run("structural failures", func(t *testing.T) {
		tests := []struct {
			name   string
			offer  string
			def    string
			reason failure.Reason
		}{
			{
				name:   "offer from another issuer",
				offer:  testutil.ClaimOffer(testutil.OtherIssuerDID, 1),
				def:    defJSON,
				reason: failure.IssuerMismatch,
			},
			{
				name:   "offer for another schema version",
				offer:  testutil.ClaimOffer(testutil.IssuerDID, 2),
				def:    defJSON,
				reason: failure.SchemaMismatch,
			},
			{
				name:   "offer without schema key",
				offer:  fmt.Sprintf(`{"issuer_did":"%s"}`, testutil.IssuerDID),
				def:    defJSON,
				reason: failure.MissingField,
			},
			{
				name:   "offer with unknown field",
				offer:  fmt.Sprintf(`{"issuer_did":"%s","schema_key":{"name":"gvt","version":"1.0","did":"%s"},"extra":1}`, testutil.IssuerDID, testutil.IssuerDID),
				def:    defJSON,
				reason: failure.MalformedInput,
			},
			{
				name:   "offer is not json",
				offer:  "{",
				def:    defJSON,
				reason: failure.MalformedInput,
			},
			{
				name:   "definition with another signature type",
				offer:  testutil.ClaimOffer(testutil.IssuerDID, 1),
				def:    strings.Replace(defJSON, `"signature_type":"CL"`, `"signature_type":"BBS"`, 1),
				reason: failure.UnsupportedSignature,
			},
			{
				name:   "definition without data",
				offer:  testutil.ClaimOffer(testutil.IssuerDID, 1),
				def:    fmt.Sprintf(`{"issuer_did":"%s","schema_key":{"name":"gvt","version":"1.0","did":"%s"},"signature_type":"CL"}`, testutil.IssuerDID, testutil.IssuerDID),
				reason: failure.MissingField,
			},
			{
				name:   "issuer is not base58",
				offer:  testutil.ClaimOffer("0OIl", 1),
				def:    defJSON,
				reason: failure.MalformedInput,
			},
		}

		p := newProver(t)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res, err := p.CreateClaimRequest(ctx, testutil.ProverDID, tt.offer, tt.def, testutil.MasterSecretName)
				require.Nil(t, res)
				require.True(t, failure.Is(err, failure.StructuralInvalid), "got %v", err)
				require.Equal(t, tt.reason, failure.ReasonOf(err))
			})
		}
	})

	t.Run("invalid prover did", func(t *testing.T) {
		p := newProver(t)
		_, err := p.CreateClaimRequest(ctx, "", testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.True(t, failure.Is(err, failure.StructuralInvalid))
	})

	t.Run("unknown master secret", func(t *testing.T) {
		p := newProver(t)
		_, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, "other_master_secret")
		require.True(t, failure.Is(err, failure.NotFound))
	})

	t.Run("validation runs before the vault", func(t *testing.T) {
		p := newProver(t)
		_, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.OtherIssuerDID, 1), defJSON, "other_master_secret")
		require.True(t, failure.Is(err, failure.StructuralInvalid))
	})

	t.Run("every request is freshly blinded", func(t *testing.T) {
		p := newProver(t)
		def := testutil.ClaimDefinition(testutil.IssuerDID, 1)

		first, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.NoError(t, err)
		second, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.NoError(t, err)

		require.NotEqual(t, first.Request.BlindedMS.U, second.Request.BlindedMS.U)
		require.NoError(t, cl.VerifyClaimRequest(def, first.Request))
		require.NoError(t, cl.VerifyClaimRequest(def, second.Request))
	})

	t.Run("serialized request round trips", func(t *testing.T) {
		p := newProver(t)

		res, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.NoError(t, err)

		parsed, err := schema.ParseClaimRequest([]byte(res.JSON))
		require.NoError(t, err)
		require.Equal(t, res.Request, parsed)

		again, err := parsed.Serialize()
		require.NoError(t, err)
		require.JSONEq(t, res.JSON, again)
	})

	t.Run("offer nonce is used", func(t *testing.T) {
		p := newProver(t)
		offer := fmt.Sprintf(`{"issuer_did":"%s","schema_key":{"name":"gvt","version":"1.0","did":"%s"},"nonce":"123456789"}`,
			testutil.IssuerDID, testutil.IssuerDID)

		res, err := p.CreateClaimRequest(ctx, testutil.ProverDID, offer, defJSON, testutil.MasterSecretName)
		require.NoError(t, err)
		require.Equal(t, "123456789", res.Request.Nonce)
	})

	t.Run("oracle failures", func(t *testing.T) {
		prov := NewProvider()
		prov.oracle = &oracleMock{err: errors.New("no entropy")}
		p, err := New(prov)
		require.NoError(t, err)
		require.NoError(t, p.Vault().Create(ctx, testutil.MasterSecretName))

		_, err = p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.True(t, failure.Is(err, failure.CryptoInvalid))

		prov.oracle = &oracleMock{nonce: "not a nonce"}
		p, err = New(prov)
		require.NoError(t, err)
		_, err = p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.True(t, failure.Is(err, failure.StructuralInvalid))
	})

	t.Run("blinder failure", func(t *testing.T) {
		blinder := &clmocks.Blinder{}
		blinder.On("BlindMasterSecret", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, failure.New(failure.CryptoInvalid, "degenerate key"))
		p := newProver(t, WithBlinder(blinder))

		res, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.Nil(t, res)
		require.True(t, failure.Is(err, failure.CryptoInvalid))
		blinder.AssertExpectations(t)
	})

	t.Run("entropy failure is categorised", func(t *testing.T) {
		p := newProver(t, WithBlinder(cl.NewBlinderWithRand(emptyReader{})))

		res, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.Nil(t, res)
		require.True(t, failure.Is(err, failure.CryptoInvalid))
	})

	t.Run("degenerate key", func(t *testing.T) {
		p := newProver(t)
		def := testutil.ClaimDefinition(testutil.IssuerDID, 1)
		def.Data.Primary.S = "1"
		d, err := def.Serialize()
		require.NoError(t, err)

		_, err = p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), d, testutil.MasterSecretName)
		require.True(t, failure.Is(err, failure.CryptoInvalid))
	})

	t.Run("revocable definition", func(t *testing.T) {
		p := newProver(t)
		h2, err := cl.NewRevocationGenerator()
		require.NoError(t, err)

		def := testutil.ClaimDefinition(testutil.IssuerDID, 2)
		def.Data.Revocation = schema.RevocationPublicKey{"h2": h2}
		d, err := def.Serialize()
		require.NoError(t, err)

		res, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), d, testutil.MasterSecretName)
		require.NoError(t, err)
		require.NotEmpty(t, res.Request.BlindedMS.Ur)
		require.NotEmpty(t, res.Metadata.VrPrime)
		require.NoError(t, cl.VerifyClaimRequest(def, res.Request))
	})

	t.Run("logs without secrets", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		p := newProver(t, WithLogger(logger))

		res, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.NoError(t, err)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, "claim request created", entry.Message)
		require.Equal(t, testutil.IssuerDID, entry.Data["issuer_did"])
		for _, e := range hook.AllEntries() {
			s, err := e.String()
			require.NoError(t, err)
			require.NotContains(t, s, res.Metadata.VPrime)
		}
	})
}

func TestCreateClaimRequest_Registry(t *testing.T) {
	ctx := context.Background()
	defJSON := testutil.ClaimDefinitionJSON(testutil.IssuerDID, 1)

	prov := NewProvider()
	reg, err := registry.Open(prov.StorageProvider())
	require.NoError(t, err)

	p, err := New(prov, WithRegistry(reg))
	require.NoError(t, err)
	require.NoError(t, p.Vault().Create(ctx, testutil.MasterSecretName))

	t.Run("schema not registered", func(t *testing.T) {
		_, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.True(t, failure.Is(err, failure.NotFound))
	})

	t.Run("schema covered by definition", func(t *testing.T) {
		require.NoError(t, reg.Put(ctx, testutil.GVTSchema()))

		_, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.NoError(t, err)
	})

	t.Run("schema attribute without key", func(t *testing.T) {
		s := testutil.GVTSchema()
		s.AttrNames = append(s.AttrNames, "email")
		require.NoError(t, reg.Put(ctx, s))

		_, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.True(t, failure.Is(err, failure.StructuralInvalid))
		require.Equal(t, failure.AttributeMismatch, failure.ReasonOf(err))
	})
}

func TestCreateClaimRequestForOffer(t *testing.T) {
	ctx := context.Background()
	p := newProver(t)

	t.Run("definition not stored", func(t *testing.T) {
		_, err := p.CreateClaimRequestForOffer(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), testutil.MasterSecretName)
		require.True(t, failure.Is(err, failure.NotFound))
	})

	t.Run("stored definition", func(t *testing.T) {
		require.NoError(t, p.ClaimDefinitions().Put(ctx, testutil.ClaimDefinition(testutil.IssuerDID, 1)))

		res, err := p.CreateClaimRequestForOffer(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), testutil.MasterSecretName)
		require.NoError(t, err)
		require.NoError(t, cl.VerifyClaimRequest(testutil.ClaimDefinition(testutil.IssuerDID, 1), res.Request))
	})

	t.Run("qualified offer finds bare definition", func(t *testing.T) {
		offer := testutil.ClaimOffer("did:sov:"+testutil.IssuerDID, 1)

		res, err := p.CreateClaimRequestForOffer(ctx, testutil.ProverDID, offer, testutil.MasterSecretName)
		require.NoError(t, err)
		require.NoError(t, cl.VerifyClaimRequest(testutil.ClaimDefinition(testutil.IssuerDID, 1), res.Request))
	})

	t.Run("malformed offer", func(t *testing.T) {
		_, err := p.CreateClaimRequestForOffer(ctx, testutil.ProverDID, `{"issuer_did":1}`, testutil.MasterSecretName)
		require.True(t, failure.Is(err, failure.StructuralInvalid))
	})
}

func TestCreateAndStoreClaimRequest(t *testing.T) {
	ctx := context.Background()
	defJSON := testutil.ClaimDefinitionJSON(testutil.IssuerDID, 1)

	t.Run("metadata is kept in the wallet", func(t *testing.T) {
		p := newProver(t)

		_, err := p.ClaimRequestMetadata(ctx, testutil.IssuerDID, testutil.GVTSchemaKey(1))
		require.True(t, failure.Is(err, failure.NotFound))

		res, err := p.CreateAndStoreClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.NoError(t, err)

		md, err := p.ClaimRequestMetadata(ctx, testutil.IssuerDID, testutil.GVTSchemaKey(1))
		require.NoError(t, err)
		require.Equal(t, res.Metadata, md)
	})

	t.Run("plain creation stores nothing", func(t *testing.T) {
		p := newProver(t)

		_, err := p.CreateClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.NoError(t, err)

		_, err = p.ClaimRequestMetadata(ctx, testutil.IssuerDID, testutil.GVTSchemaKey(1))
		require.True(t, failure.Is(err, failure.NotFound))
	})

	t.Run("wallet failures", func(t *testing.T) {
		boom := errors.New("disk full")
		wallet := &mocks.Store{}
		wallet.On("Get", mock.Anything, "master_secret::"+testutil.MasterSecretName).Return([]byte(big.NewInt(99).String()), nil)
		wallet.On("Get", mock.Anything, mock.Anything).Return(nil, boom)
		wallet.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(boom)

		sp := &mocks.Provider{}
		sp.On("OpenStore", datastore.WalletC).Return(wallet, nil)
		sp.On("OpenStore", datastore.ClaimDefC).Return(mem.NewProvider().OpenStore(datastore.ClaimDefC))

		prov := NewProvider()
		prov.store = sp
		p, err := New(prov)
		require.NoError(t, err)

		_, err = p.CreateAndStoreClaimRequest(ctx, testutil.ProverDID, testutil.ClaimOffer(testutil.IssuerDID, 1), defJSON, testutil.MasterSecretName)
		require.True(t, failure.Is(err, failure.StorageError))

		_, err = p.ClaimRequestMetadata(ctx, testutil.IssuerDID, testutil.GVTSchemaKey(1))
		require.True(t, failure.Is(err, failure.StorageError))
	})

	t.Run("open failures", func(t *testing.T) {
		sp := &mocks.Provider{}
		sp.On("OpenStore", datastore.WalletC).Return(nil, errors.New("closed"))

		prov := NewProvider()
		prov.store = sp
		_, err := New(prov)
		require.Error(t, err)
	})
}

func TestClaimRequestID(t *testing.T) {
	require.Equal(t, "claim_request::NcYxiDXkpYi6ov5FcYDi1e:NcYxiDXkpYi6ov5FcYDi1e:2:gvt:1.0",
		ClaimRequestID(testutil.IssuerDID, testutil.GVTSchemaKey(1)))
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}
