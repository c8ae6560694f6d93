/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cl

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/schema"
)

// VerifyBlindedSecrets is the issuer side check of a correctness proof: it
// recomputes U~ = U^-c * S^v^ * Rms^m^ mod n and compares the challenge.
func VerifyBlindedSecrets(spk *schema.PrimaryPublicKey, u *big.Int, proof *CorrectnessProof, nonce *big.Int) error {
	pk, err := PrimaryPublicKeyFromSchema(spk)
	if err != nil {
		return err
	}

	if err = pk.Validate(); err != nil {
		return err
	}

	if u == nil || proof == nil || nonce == nil {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "blinded secret, proof and nonce are required")
	}

	if nonce.Sign() < 0 || nonce.BitLen() > LargeNonce {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "nonce must be a %d bit non-negative integer", LargeNonce)
	}

	if err = pk.checkElement("u", u); err != nil {
		return err
	}

	if proof.MsCap.Sign() < 0 || proof.MsCap.BitLen() > LargeMTilde+1 {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "ms_cap out of range")
	}

	uInv := new(big.Int).ModInverse(u, pk.N)
	if uInv == nil {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "u is not invertible mod n")
	}

	uTilde := new(big.Int).Exp(uInv, proof.C, pk.N)
	uTilde.Mul(uTilde, pk.commit(proof.VDashCap, proof.MsCap))
	uTilde.Mod(uTilde, pk.N)

	if challenge(u, uTilde, nonce).Cmp(proof.C) != 0 {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "blinded master secret correctness proof does not verify")
	}

	return nil
}

// VerifyClaimRequest checks a decoded claim request against the definition
// it was built for.
func VerifyClaimRequest(def *schema.ClaimDefinition, req *schema.ClaimRequest) error {
	u, err := parseDec("u", req.BlindedMS.U)
	if err != nil {
		return err
	}

	nonce, err := parseDec("nonce", req.Nonce)
	if err != nil {
		return err
	}

	proof, err := CorrectnessProofFromSchema(req.BlindedMSCorrectnessProof)
	if err != nil {
		return err
	}

	return VerifyBlindedSecrets(def.Data.Primary, u, proof, nonce)
}

// challenge hashes each value length-prefixed so adjacent values cannot
// be re-split.
func challenge(values ...*big.Int) *big.Int {
	h := sha256.New()
	var l [4]byte
	for _, v := range values {
		b := v.Bytes()
		binary.BigEndian.PutUint32(l[:], uint32(len(b)))
		_, _ = h.Write(l[:])
		_, _ = h.Write(b)
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}
