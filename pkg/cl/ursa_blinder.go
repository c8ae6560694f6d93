//go:build ursa
// +build ursa

/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cl

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/hyperledger/ursa-wrapper-go/pkg/libursa/ursa"

	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/schema"
)

// ursaBlinder delegates blinding to libursa. Ursa insists on the issuer's
// key correctness proof, so one is bound at construction.
type ursaBlinder struct {
	keyCorrectnessProof []byte
}

func NewUrsaBlinder(keyCorrectnessProof []byte) Blinder {
	return &ursaBlinder{keyCorrectnessProof: keyCorrectnessProof}
}

type ursaPrimaryKey struct {
	N     string            `json:"n"`
	S     string            `json:"s"`
	R     map[string]string `json:"r"`
	Rctxt string            `json:"rctxt"`
	Z     string            `json:"z"`
}

type ursaBlindedSecrets struct {
	U string `json:"u"`
}

type ursaCorrectnessProof struct {
	C        string            `json:"c"`
	VDashCap string            `json:"v_dash_cap"`
	MCaps    map[string]string `json:"m_caps"`
}

type ursaBlindingFactors struct {
	VPrime string `json:"v_prime"`
}

func (r *ursaBlinder) BlindMasterSecret(spk *schema.PrimaryPublicKey, rk schema.RevocationPublicKey, ms, nonce *big.Int) (*BlindedSecrets, error) {
	if rk != nil {
		return nil, failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "ursa blinder does not accept BN254 revocation keys")
	}

	pk, err := PrimaryPublicKeyFromSchema(spk)
	if err != nil {
		return nil, err
	}

	if err = pk.Validate(); err != nil {
		return nil, err
	}

	if err = checkMasterSecret(ms); err != nil {
		return nil, err
	}

	pkey := ursaPrimaryKey{N: spk.N, S: spk.S, R: map[string]string{MasterSecretAttr: spk.Rms}, Rctxt: spk.Rctxt, Z: spk.Z}
	for k, v := range spk.R {
		pkey.R[k] = v
	}

	pkeyJSON, _ := json.Marshal(pkey)
	pubKey, err := ursa.CredentialPublicKeyFromJSON([]byte(fmt.Sprintf(`{"p_key": %s, "r_key": null}`, pkeyJSON)))
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "ursa rejected public key")
	}

	correctnessProof, err := ursa.CredentialKeyCorrectnessProofFromJSON(r.keyCorrectnessProof)
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "ursa rejected key correctness proof")
	}

	credNonce, err := ursa.NonceFromJSON(fmt.Sprintf("%q", nonce.String()))
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "ursa rejected nonce")
	}

	builder, err := ursa.NewValueBuilder()
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "unexpected error from ursa value builder")
	}

	err = builder.AddDecHidden(MasterSecretAttr, ms.String())
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "unable to add master secret to ursa value builder")
	}

	values, err := builder.Finalize()
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "unable to finalize ursa values")
	}
	defer func() { _ = values.Free() }()

	blinded, err := ursa.BlindCredentialSecrets(pubKey, correctnessProof, credNonce, values)
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "error from URSA blinding credential secrets")
	}

	return fromUrsa(blinded, nonce)
}

func fromUrsa(blinded *ursa.BlindedCredentialSecrets, nonce *big.Int) (*BlindedSecrets, error) {
	secretsJSON, err := blinded.Handle.ToJSON()
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "error from URSA creating blinded secrets json")
	}

	proofJSON, err := blinded.CorrectnessProof.ToJSON()
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "error from URSA creating proof json")
	}

	factorsJSON, err := blinded.BlindingFactor.ToJSON()
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "error from URSA creating blinding factors json")
	}

	bs, cp, bf := ursaBlindedSecrets{}, ursaCorrectnessProof{}, ursaBlindingFactors{}
	for _, p := range []struct {
		d []byte
		v interface{}
	}{{secretsJSON, &bs}, {proofJSON, &cp}, {factorsJSON, &bf}} {
		if err = json.Unmarshal(p.d, p.v); err != nil {
			return nil, failure.Wrap(failure.CryptoInvalid, err, "unexpected JSON from URSA")
		}
	}

	out := &BlindedSecrets{Nonce: new(big.Int).Set(nonce), Proof: &CorrectnessProof{}}
	if out.U, err = parseDec("u", bs.U); err != nil {
		return nil, err
	}
	if out.VPrime, err = parseDec("v_prime", bf.VPrime); err != nil {
		return nil, err
	}
	if out.Proof.C, err = parseDec("c", cp.C); err != nil {
		return nil, err
	}
	if out.Proof.VDashCap, err = parseDec("v_dash_cap", cp.VDashCap); err != nil {
		return nil, err
	}
	if out.Proof.MsCap, err = parseDec("ms_cap", cp.MCaps[MasterSecretAttr]); err != nil {
		return nil, err
	}

	return out, nil
}
