/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"

	"github.com/scoir/anoncreds/pkg/failure"
)

const claimRequestRecord = "claim request"

// ClaimRequest is sent to the issuer, who consumes it once to sign a claim.
type ClaimRequest struct {
	ProverDID                 string                              `json:"prover_did"`
	IssuerDID                 string                              `json:"issuer_did"`
	SchemaKey                 SchemaKey                           `json:"schema_key"`
	BlindedMS                 BlindedMasterSecret                 `json:"blinded_ms"`
	BlindedMSCorrectnessProof BlindedMasterSecretCorrectnessProof `json:"blinded_ms_correctness_proof"`
	Nonce                     string                              `json:"nonce"`
}

// BlindedMasterSecret holds U and, for revocable definitions, Ur.
type BlindedMasterSecret struct {
	U  string `json:"u"`
	Ur string `json:"ur,omitempty"`
}

type BlindedMasterSecretCorrectnessProof struct {
	C        string `json:"c"`
	VDashCap string `json:"v_dash_cap"`
	MsCap    string `json:"ms_cap"`
}

// ClaimRequestMetadata stays with the prover. It holds the blinding
// factors needed to unblind the issuer's signature.
type ClaimRequestMetadata struct {
	VPrime           string    `json:"v_prime"`
	VrPrime          string    `json:"vr_prime,omitempty"`
	MasterSecretName string    `json:"master_secret_name"`
	Nonce            string    `json:"nonce"`
	IssuerDID        string    `json:"issuer_did"`
	SchemaKey        SchemaKey `json:"schema_key"`
}

func (r *ClaimRequest) Serialize() (string, error) {
	d, err := json.Marshal(r)
	if err != nil {
		return "", failure.Wrap(failure.StructuralInvalid, err, "unable to serialize claim request")
	}
	return string(d), nil
}

// ParseClaimRequest is the issuer side decoder for a serialized request.
func ParseClaimRequest(data []byte) (*ClaimRequest, error) {
	out := &ClaimRequest{}
	err := decodeStrict(data, out, claimRequestRecord)
	if err != nil {
		return nil, err
	}

	checks := []struct {
		name string
		val  string
	}{
		{"prover_did", out.ProverDID},
		{"issuer_did", out.IssuerDID},
		{"schema_key.name", out.SchemaKey.Name},
		{"schema_key.version", out.SchemaKey.Version},
		{"schema_key.did", out.SchemaKey.DID},
		{"blinded_ms.u", out.BlindedMS.U},
		{"blinded_ms_correctness_proof.c", out.BlindedMSCorrectnessProof.C},
		{"blinded_ms_correctness_proof.v_dash_cap", out.BlindedMSCorrectnessProof.VDashCap},
		{"blinded_ms_correctness_proof.ms_cap", out.BlindedMSCorrectnessProof.MsCap},
		{"nonce", out.Nonce},
	}

	for _, c := range checks {
		if c.val == "" {
			return nil, failure.Structural(failure.MissingField, "%s: required field %q missing", claimRequestRecord, c.name)
		}
	}

	return out, nil
}
