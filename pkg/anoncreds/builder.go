/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package anoncreds

import (
	"github.com/scoir/anoncreds/pkg/cl"
	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/schema"
)

// BuildClaimRequest assembles the request sent to the issuer. It only
// checks that every part is present.
func BuildClaimRequest(proverDID string, offer *schema.ClaimOffer, bs *cl.BlindedSecrets) (*schema.ClaimRequest, error) {
	if proverDID == "" {
		return nil, failure.Structural(failure.MissingField, "prover DID is required")
	}

	if offer == nil {
		return nil, failure.Structural(failure.MissingField, "claim offer is required")
	}

	if bs == nil || bs.U == nil || bs.VPrime == nil || bs.Proof == nil || bs.Nonce == nil {
		return nil, failure.Structural(failure.MissingField, "blinded master secret, correctness proof and nonce are required")
	}

	return &schema.ClaimRequest{
		ProverDID:                 proverDID,
		IssuerDID:                 offer.IssuerDID,
		SchemaKey:                 offer.SchemaKey,
		BlindedMS:                 bs.BlindedMasterSecret(),
		BlindedMSCorrectnessProof: bs.Proof.ToSchema(),
		Nonce:                     bs.Nonce.String(),
	}, nil
}

func buildMetadata(msName string, offer *schema.ClaimOffer, bs *cl.BlindedSecrets) *schema.ClaimRequestMetadata {
	md := &schema.ClaimRequestMetadata{
		VPrime:           bs.VPrime.String(),
		MasterSecretName: msName,
		Nonce:            bs.Nonce.String(),
		IssuerDID:        offer.IssuerDID,
		SchemaKey:        offer.SchemaKey,
	}

	if bs.VrPrime != nil {
		md.VrPrime = bs.VrPrime.String()
	}

	return md
}
