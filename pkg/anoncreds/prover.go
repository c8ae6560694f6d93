/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package anoncreds

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/scoir/anoncreds/pkg/cl"
	"github.com/scoir/anoncreds/pkg/claimdef"
	"github.com/scoir/anoncreds/pkg/datastore"
	"github.com/scoir/anoncreds/pkg/did"
	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/registry"
	"github.com/scoir/anoncreds/pkg/schema"
	"github.com/scoir/anoncreds/pkg/vault"
)

const claimRequestPrefix = "claim_request::"

// ClaimRequestResult is the outcome of one claim request construction.
// Request and JSON go to the issuer, Metadata stays in the wallet.
type ClaimRequestResult struct {
	Request  *schema.ClaimRequest
	Metadata *schema.ClaimRequestMetadata
	JSON     string
}

type Prover struct {
	wallet   datastore.Store
	vault    *vault.Vault
	defs     *claimdef.Store
	resolver registry.SchemaResolver
	blinder  cl.Blinder
	oracle   Oracle
	log      logrus.FieldLogger
}

type Option func(p *Prover)

func WithBlinder(b cl.Blinder) Option {
	return func(p *Prover) {
		p.blinder = b
	}
}

// WithRegistry enables the schema attribute check against resolver.
func WithRegistry(resolver registry.SchemaResolver) Option {
	return func(p *Prover) {
		p.resolver = resolver
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Prover) {
		p.log = l
	}
}

func New(prov Provider, opts ...Option) (*Prover, error) {
	p := &Prover{
		blinder: cl.NewBlinder(),
		oracle:  prov.Oracle(),
		log:     logrus.StandardLogger(),
	}

	var err error
	sp := prov.StorageProvider()
	p.wallet, err = sp.OpenStore(datastore.WalletC)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open wallet store for prover")
	}

	p.vault = vault.New(p.wallet)

	p.defs, err = claimdef.Open(sp)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open claim definition store for prover")
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

func (r *Prover) Vault() *vault.Vault {
	return r.vault
}

func (r *Prover) ClaimDefinitions() *claimdef.Store {
	return r.defs
}

// CreateClaimRequest validates the offer against the claim definition,
// blinds the named master secret for the definition's key and returns the
// request. Nothing is persisted; the first failure is returned and no
// partial request escapes.
func (r *Prover) CreateClaimRequest(ctx context.Context, proverDID, offerJSON, claimDefJSON, msName string) (*ClaimRequestResult, error) {
	log := r.log.WithField("prover_did", proverDID)

	if _, err := did.Parse(proverDID); err != nil {
		return nil, failure.Structural(failure.MalformedInput, "prover_did: %v", err)
	}

	offer, def, err := ValidateClaimOffer(offerJSON, claimDefJSON)
	if err != nil {
		log.WithError(err).Debug("claim offer rejected")
		return nil, err
	}

	log = log.WithFields(logrus.Fields{"issuer_did": offer.IssuerDID, "schema": offer.SchemaKey.String()})

	if r.resolver != nil {
		if err = checkAttributes(ctx, r.resolver, offer.SchemaKey, def.Data.Primary); err != nil {
			log.WithError(err).Debug("claim definition does not cover schema")
			return nil, err
		}
	}

	ms, err := r.vault.Get(ctx, msName)
	if err != nil {
		return nil, err
	}

	nonce, err := r.nonce(offer)
	if err != nil {
		return nil, err
	}

	bs, err := r.blinder.BlindMasterSecret(def.Data.Primary, def.Data.Revocation, ms, nonce)
	if err != nil {
		log.WithError(err).Warn("unable to blind master secret")
		return nil, err
	}

	req, err := BuildClaimRequest(proverDID, offer, bs)
	if err != nil {
		return nil, err
	}

	d, err := req.Serialize()
	if err != nil {
		return nil, err
	}

	log.Info("claim request created")

	return &ClaimRequestResult{
		Request:  req,
		Metadata: buildMetadata(msName, offer, bs),
		JSON:     d,
	}, nil
}

// CreateClaimRequestForOffer is CreateClaimRequest with the claim
// definition looked up in the local store.
func (r *Prover) CreateClaimRequestForOffer(ctx context.Context, proverDID, offerJSON, msName string) (*ClaimRequestResult, error) {
	def, err := r.claimDefForOffer(ctx, offerJSON)
	if err != nil {
		return nil, err
	}

	return r.CreateClaimRequest(ctx, proverDID, offerJSON, def, msName)
}

func (r *Prover) claimDefForOffer(ctx context.Context, offerJSON string) (string, error) {
	offer, err := schema.ParseClaimOffer([]byte(offerJSON))
	if err != nil {
		return "", err
	}

	def, err := r.defs.GetJSON(ctx, offer.IssuerDID, offer.SchemaKey, schema.CLSignatureType)
	if err != nil {
		return "", err
	}

	return string(def), nil
}

// CreateAndStoreClaimRequest runs CreateClaimRequest and keeps the
// metadata in the wallet under ClaimRequestID.
func (r *Prover) CreateAndStoreClaimRequest(ctx context.Context, proverDID, offerJSON, claimDefJSON, msName string) (*ClaimRequestResult, error) {
	res, err := r.CreateClaimRequest(ctx, proverDID, offerJSON, claimDefJSON, msName)
	if err != nil {
		return nil, err
	}

	d, err := json.Marshal(res.Metadata)
	if err != nil {
		return nil, failure.Wrap(failure.StructuralInvalid, err, "unable to serialize claim request metadata")
	}

	id := ClaimRequestID(res.Request.IssuerDID, res.Request.SchemaKey)
	if err = r.wallet.Put(ctx, id, d); err != nil {
		return nil, failure.Wrapf(failure.StorageError, err, "unable to store claim request %s", id)
	}

	return res, nil
}

// ClaimRequestMetadata loads metadata saved by CreateAndStoreClaimRequest.
func (r *Prover) ClaimRequestMetadata(ctx context.Context, issuerDID string, key schema.SchemaKey) (*schema.ClaimRequestMetadata, error) {
	id := ClaimRequestID(issuerDID, key)
	d, err := r.wallet.Get(ctx, id)
	if datastore.IsNotFound(err) {
		return nil, failure.Wrapf(failure.NotFound, err, "claim request %s", id)
	}
	if err != nil {
		return nil, failure.Wrapf(failure.StorageError, err, "unable to read claim request %s", id)
	}

	md := &schema.ClaimRequestMetadata{}
	if err = json.Unmarshal(d, md); err != nil {
		return nil, failure.Wrapf(failure.StructuralInvalid, err, "stored claim request %s is malformed", id)
	}

	return md, nil
}

func ClaimRequestID(issuerDID string, key schema.SchemaKey) string {
	return claimRequestPrefix + did.Unqualified(issuerDID) + schema.DELIMITER + key.String()
}

func (r *Prover) nonce(offer *schema.ClaimOffer) (*big.Int, error) {
	v := offer.Nonce
	if v == "" {
		var err error
		if v, err = r.oracle.NewNonce(); err != nil {
			return nil, failure.Wrap(failure.CryptoInvalid, err, "unable to create nonce")
		}
	}

	n, ok := new(big.Int).SetString(v, 10)
	if !ok || n.Sign() < 0 || n.BitLen() > cl.LargeNonce {
		return nil, failure.Structural(failure.MalformedInput, "nonce must be a decimal of at most %d bits", cl.LargeNonce)
	}

	return n, nil
}
