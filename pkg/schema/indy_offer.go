/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"

	"github.com/scoir/anoncreds/pkg/failure"
)

const offerRecord = "claim offer"

// ClaimOffer is an issuer's proposal to issue a claim for a schema. Nonce
// is optional; when set the request's correctness proof is bound to it.
type ClaimOffer struct {
	IssuerDID string    `json:"issuer_did"`
	SchemaKey SchemaKey `json:"schema_key"`
	Nonce     string    `json:"nonce,omitempty"`
}

type rawClaimOffer struct {
	IssuerDID *string         `json:"issuer_did"`
	SchemaKey *rawSchemaKey   `json:"schema_key"`
	Nonce     json.RawMessage `json:"nonce"`
}

// ParseClaimOffer decodes a claim offer, failing with StructuralInvalid on
// unknown fields, wrong types or missing required fields.
func ParseClaimOffer(data []byte) (*ClaimOffer, error) {
	raw := &rawClaimOffer{}
	err := decodeStrict(data, raw, offerRecord)
	if err != nil {
		return nil, err
	}

	out := &ClaimOffer{}
	out.IssuerDID, err = required("issuer_did", offerRecord, raw.IssuerDID)
	if err != nil {
		return nil, err
	}

	if raw.SchemaKey == nil {
		return nil, failure.Structural(failure.MissingField, "%s: required field %q missing", offerRecord, "schema_key")
	}
	out.SchemaKey, err = raw.SchemaKey.build(offerRecord)
	if err != nil {
		return nil, err
	}

	if raw.Nonce != nil {
		if isNull(raw.Nonce) {
			return nil, failure.Structural(failure.MalformedInput, "%s: nonce must not be null", offerRecord)
		}
		if err = json.Unmarshal(raw.Nonce, &out.Nonce); err != nil {
			return nil, failure.Structural(failure.MalformedInput, "%s: nonce must be a string", offerRecord)
		}
		if !isDecimal(out.Nonce) {
			return nil, failure.Structural(failure.MalformedInput, "%s: nonce %q is not a decimal number", offerRecord, out.Nonce)
		}
	}

	return out, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
