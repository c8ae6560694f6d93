/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package anoncreds

import (
	"context"

	"github.com/scoir/anoncreds/pkg/cl"
	"github.com/scoir/anoncreds/pkg/did"
	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/registry"
	"github.com/scoir/anoncreds/pkg/schema"
)

// ValidateClaimOffer decodes an offer and a claim definition and checks
// that the definition was published by the offering issuer for the
// offered schema. Every failure is StructuralInvalid.
func ValidateClaimOffer(offerJSON, claimDefJSON string) (*schema.ClaimOffer, *schema.ClaimDefinition, error) {
	offer, err := schema.ParseClaimOffer([]byte(offerJSON))
	if err != nil {
		return nil, nil, err
	}

	def, err := schema.ParseClaimDefinition([]byte(claimDefJSON))
	if err != nil {
		return nil, nil, err
	}

	if err = MatchClaimOffer(offer, def); err != nil {
		return nil, nil, err
	}

	return offer, def, nil
}

// MatchClaimOffer is the structural check of ValidateClaimOffer on
// already decoded records.
func MatchClaimOffer(offer *schema.ClaimOffer, def *schema.ClaimDefinition) error {
	checks := []struct{ field, value string }{
		{"claim offer issuer_did", offer.IssuerDID},
		{"claim offer schema_key.did", offer.SchemaKey.DID},
		{"claim definition issuer_did", def.IssuerDID},
		{"claim definition schema_key.did", def.SchemaKey.DID},
	}

	for _, c := range checks {
		if _, err := did.Parse(c.value); err != nil {
			return failure.Structural(failure.MalformedInput, "%s: %v", c.field, err)
		}
	}

	if did.Unqualified(offer.IssuerDID) != did.Unqualified(def.IssuerDID) {
		return failure.Structural(failure.IssuerMismatch,
			"issuer_did %s in claim offer does not match claim definition issuer %s", offer.IssuerDID, def.IssuerDID)
	}

	if !offer.SchemaKey.Equal(def.SchemaKey) {
		return failure.Structural(failure.SchemaMismatch,
			"schema_key %s in claim offer does not match claim definition schema %s", offer.SchemaKey, def.SchemaKey)
	}

	if def.SignatureType != schema.CLSignatureType {
		return failure.Structural(failure.UnsupportedSignature, "signature type %q is not supported", def.SignatureType)
	}

	return nil
}

// checkAttributes requires an r generator for every attribute of the
// offered schema.
func checkAttributes(ctx context.Context, resolver registry.SchemaResolver, key schema.SchemaKey, pk *schema.PrimaryPublicKey) error {
	attrs, err := resolver.AttributeNames(ctx, key)
	if err != nil {
		return err
	}

	for _, attr := range attrs {
		if attr == cl.MasterSecretAttr {
			continue
		}
		if _, ok := pk.R[attr]; !ok {
			return failure.Structural(failure.AttributeMismatch,
				"claim definition has no public key for attribute %q of schema %s", attr, key)
		}
	}

	return nil
}
