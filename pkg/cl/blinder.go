/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cl

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"math/big"

	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/schema"
)

//go:generate mockery -name=Blinder
type Blinder interface {
	BlindMasterSecret(pk *schema.PrimaryPublicKey, rk schema.RevocationPublicKey, ms, nonce *big.Int) (*BlindedSecrets, error)
}

// BlindedSecrets is the output of blinding a master secret for one issuer
// key. U, Ur and Proof go to the issuer; VPrime and VrPrime stay with the
// prover.
type BlindedSecrets struct {
	U       *big.Int
	Ur      []byte
	VPrime  *big.Int
	VrPrime *big.Int
	Proof   *CorrectnessProof
	Nonce   *big.Int
}

// CorrectnessProof is a Fiat-Shamir proof of knowledge of (v', ms) such
// that U = S^v' * Rms^ms mod n.
type CorrectnessProof struct {
	C        *big.Int
	VDashCap *big.Int
	MsCap    *big.Int
}

func (r *BlindedSecrets) BlindedMasterSecret() schema.BlindedMasterSecret {
	out := schema.BlindedMasterSecret{U: r.U.String()}
	if len(r.Ur) > 0 {
		out.Ur = hex.EncodeToString(r.Ur)
	}
	return out
}

func (r *CorrectnessProof) ToSchema() schema.BlindedMasterSecretCorrectnessProof {
	return schema.BlindedMasterSecretCorrectnessProof{
		C:        r.C.String(),
		VDashCap: r.VDashCap.String(),
		MsCap:    r.MsCap.String(),
	}
}

// CorrectnessProofFromSchema parses the wire form of a correctness proof.
func CorrectnessProofFromSchema(p schema.BlindedMasterSecretCorrectnessProof) (*CorrectnessProof, error) {
	var err error
	out := &CorrectnessProof{}
	if out.C, err = parseDec("c", p.C); err != nil {
		return nil, err
	}
	if out.VDashCap, err = parseDec("v_dash_cap", p.VDashCap); err != nil {
		return nil, err
	}
	if out.MsCap, err = parseDec("ms_cap", p.MsCap); err != nil {
		return nil, err
	}
	return out, nil
}

type blinder struct {
	rand io.Reader
}

// NewBlinder returns the pure Go blinder drawing from crypto/rand.
func NewBlinder() Blinder {
	return &blinder{rand: rand.Reader}
}

// NewBlinderWithRand is NewBlinder with an explicit entropy source.
func NewBlinderWithRand(r io.Reader) Blinder {
	return &blinder{rand: r}
}

func (r *blinder) BlindMasterSecret(spk *schema.PrimaryPublicKey, rk schema.RevocationPublicKey, ms, nonce *big.Int) (*BlindedSecrets, error) {
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

	if nonce == nil || nonce.Sign() < 0 || nonce.BitLen() > LargeNonce {
		return nil, failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "nonce must be a %d bit non-negative integer", LargeNonce)
	}

	var h2 *revocationGenerator
	if rk != nil {
		if h2, err = parseRevocationKey(rk); err != nil {
			return nil, err
		}
	}

	vPrime, err := randomBits(r.rand, LargeVPrime)
	if err != nil {
		return nil, err
	}

	u := pk.commit(vPrime, ms)

	proof, err := r.proveCorrectness(pk, u, vPrime, ms, nonce)
	if err != nil {
		return nil, err
	}

	out := &BlindedSecrets{
		U:      u,
		VPrime: vPrime,
		Proof:  proof,
		Nonce:  new(big.Int).Set(nonce),
	}

	if h2 != nil {
		out.VrPrime, out.Ur, err = h2.blind(r.rand)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (r *blinder) proveCorrectness(pk *PrimaryPublicKey, u, vPrime, ms, nonce *big.Int) (*CorrectnessProof, error) {
	vTilde, err := randomBits(r.rand, LargeVPrimeTilde)
	if err != nil {
		return nil, err
	}

	mTilde, err := randomBits(r.rand, LargeMTilde)
	if err != nil {
		return nil, err
	}

	uTilde := pk.commit(vTilde, mTilde)
	c := challenge(u, uTilde, nonce)

	vCap := new(big.Int).Mul(c, vPrime)
	vCap.Add(vCap, vTilde)

	msCap := new(big.Int).Mul(c, ms)
	msCap.Add(msCap, mTilde)

	return &CorrectnessProof{C: c, VDashCap: vCap, MsCap: msCap}, nil
}

// commit computes S^v * Rms^m mod n.
func (r *PrimaryPublicKey) commit(v, m *big.Int) *big.Int {
	out := new(big.Int).Exp(r.S, v, r.N)
	out.Mul(out, new(big.Int).Exp(r.Rms, m, r.N))
	return out.Mod(out, r.N)
}

func checkMasterSecret(ms *big.Int) error {
	if ms == nil || ms.Sign() < 0 || ms.BitLen() > LargeMasterSecret {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter,
			"master secret must be a %d bit non-negative integer", LargeMasterSecret)
	}
	return nil
}

func randomBits(r io.Reader, bits int) (*big.Int, error) {
	max := new(big.Int).Lsh(one, uint(bits))
	n, err := rand.Int(r, max)
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "unable to read random bits")
	}
	return n, nil
}
