/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"
	"strings"

	"github.com/scoir/anoncreds/pkg/did"
	"github.com/scoir/anoncreds/pkg/failure"
)

const (
	CLSignatureType = "CL"
	ClaimDefMarker  = "3"

	claimDefRecord = "claim definition"
)

// ClaimDefinition is an issuer's published CL public key for one schema.
type ClaimDefinition struct {
	IssuerDID     string       `json:"issuer_did"`
	SchemaKey     SchemaKey    `json:"schema_key"`
	SignatureType string       `json:"signature_type"`
	Data          ClaimDefData `json:"data"`
}

type ClaimDefData struct {
	Primary    *PrimaryPublicKey   `json:"primary"`
	Revocation RevocationPublicKey `json:"revocation,omitempty"`
}

// PrimaryPublicKey carries the CL primary key parameters as decimal strings.
type PrimaryPublicKey struct {
	N     string            `json:"n"`
	S     string            `json:"s"`
	Rms   string            `json:"rms"`
	R     map[string]string `json:"r"`
	Rctxt string            `json:"rctxt"`
	Z     string            `json:"z"`
}

// RevocationPublicKey is carried opaquely apart from h2, a hex encoded
// BN254 G1 point used to blind the revocation secret.
type RevocationPublicKey map[string]string

type rawClaimDef struct {
	IssuerDID     *string          `json:"issuer_did"`
	SchemaKey     *rawSchemaKey    `json:"schema_key"`
	SignatureType *string          `json:"signature_type"`
	Data          *rawClaimDefData `json:"data"`
}

type rawClaimDefData struct {
	Primary    *rawPrimaryPublicKey `json:"primary"`
	Revocation json.RawMessage      `json:"revocation"`
}

type rawPrimaryPublicKey struct {
	N     *string           `json:"n"`
	S     *string           `json:"s"`
	Rms   *string           `json:"rms"`
	R     map[string]string `json:"r"`
	Rctxt *string           `json:"rctxt"`
	Z     *string           `json:"z"`
}

// ID renders the ledger style claim definition id, did:3:CL:<schema id>.
func (r *ClaimDefinition) ID() string {
	return ClaimDefinitionID(r.IssuerDID, r.SchemaKey, r.SignatureType)
}

func ClaimDefinitionID(issuerDID string, key SchemaKey, signatureType string) string {
	return strings.Join([]string{did.Unqualified(issuerDID), ClaimDefMarker, signatureType, key.String()}, DELIMITER)
}

func (r *ClaimDefinition) Serialize() (string, error) {
	d, err := json.Marshal(r)
	if err != nil {
		return "", failure.Wrap(failure.StructuralInvalid, err, "unable to serialize claim definition")
	}
	return string(d), nil
}

// ParseClaimDefinition decodes a claim definition. Only structure is
// checked here; numeric ranges are the crypto layer's concern.
func ParseClaimDefinition(data []byte) (*ClaimDefinition, error) {
	raw := &rawClaimDef{}
	err := decodeStrict(data, raw, claimDefRecord)
	if err != nil {
		return nil, err
	}

	out := &ClaimDefinition{}
	if out.IssuerDID, err = required("issuer_did", claimDefRecord, raw.IssuerDID); err != nil {
		return nil, err
	}

	if raw.SchemaKey == nil {
		return nil, failure.Structural(failure.MissingField, "%s: required field %q missing", claimDefRecord, "schema_key")
	}
	if out.SchemaKey, err = raw.SchemaKey.build(claimDefRecord); err != nil {
		return nil, err
	}

	if out.SignatureType, err = required("signature_type", claimDefRecord, raw.SignatureType); err != nil {
		return nil, err
	}

	if raw.Data == nil {
		return nil, failure.Structural(failure.MissingField, "%s: required field %q missing", claimDefRecord, "data")
	}

	if raw.Data.Primary == nil {
		return nil, failure.Structural(failure.MissingField, "%s: required field %q missing", claimDefRecord, "data.primary")
	}
	out.Data.Primary, err = raw.Data.Primary.build()
	if err != nil {
		return nil, err
	}

	if raw.Data.Revocation != nil && !isNull(raw.Data.Revocation) {
		rk := RevocationPublicKey{}
		if err = decodeStrict(raw.Data.Revocation, &rk, "revocation public key"); err != nil {
			return nil, err
		}
		if rk["h2"] == "" {
			return nil, failure.Structural(failure.MissingField, "%s: required field %q missing", claimDefRecord, "data.revocation.h2")
		}
		out.Data.Revocation = rk
	}

	return out, nil
}

func (r *rawPrimaryPublicKey) build() (*PrimaryPublicKey, error) {
	var err error
	out := &PrimaryPublicKey{}

	fields := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"n", r.N, &out.N},
		{"s", r.S, &out.S},
		{"rms", r.Rms, &out.Rms},
		{"rctxt", r.Rctxt, &out.Rctxt},
		{"z", r.Z, &out.Z},
	}

	for _, f := range fields {
		if *f.dst, err = required("data.primary."+f.name, claimDefRecord, f.src); err != nil {
			return nil, err
		}
		if !isDecimal(*f.dst) {
			return nil, failure.Structural(failure.MalformedInput, "%s: data.primary.%s is not a decimal number", claimDefRecord, f.name)
		}
	}

	if r.R == nil {
		return nil, failure.Structural(failure.MissingField, "%s: required field %q missing", claimDefRecord, "data.primary.r")
	}

	out.R = make(map[string]string, len(r.R))
	for attr, v := range r.R {
		if !isDecimal(v) {
			return nil, failure.Structural(failure.MalformedInput, "%s: data.primary.r.%s is not a decimal number", claimDefRecord, attr)
		}
		out.R[attr] = v
	}

	return out, nil
}
