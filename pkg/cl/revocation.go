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

	bn256 "github.com/ethereum/go-ethereum/crypto/bn256/cloudflare"

	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/schema"
)

const g1PointSize = 64

type revocationGenerator struct {
	h2 *bn256.G1
}

func parseRevocationKey(rk schema.RevocationPublicKey) (*revocationGenerator, error) {
	raw, err := hex.DecodeString(rk["h2"])
	if err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "revocation key h2 is not hex")
	}

	if len(raw) != g1PointSize {
		return nil, failure.Structured(failure.CryptoInvalid, failure.InvalidParameter,
			"revocation key h2 must be %d bytes, got %d", g1PointSize, len(raw))
	}

	if isZero(raw) {
		return nil, failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "revocation key h2 is the identity")
	}

	h2 := new(bn256.G1)
	if _, err = h2.Unmarshal(raw); err != nil {
		return nil, failure.Wrap(failure.CryptoInvalid, err, "revocation key h2 is not a curve point")
	}

	return &revocationGenerator{h2: h2}, nil
}

// blind returns vr' and Ur = h2^vr'.
func (r *revocationGenerator) blind(rnd io.Reader) (*big.Int, []byte, error) {
	vr, err := randomScalar(rnd)
	if err != nil {
		return nil, nil, err
	}

	ur := new(bn256.G1).ScalarMult(r.h2, vr)
	return vr, ur.Marshal(), nil
}

// NewRevocationGenerator returns a random hex encoded G1 point suitable as
// h2 in a RevocationPublicKey.
func NewRevocationGenerator() (string, error) {
	_, p, err := bn256.RandomG1(rand.Reader)
	if err != nil {
		return "", failure.Wrap(failure.CryptoInvalid, err, "unable to generate G1 point")
	}
	return hex.EncodeToString(p.Marshal()), nil
}

func randomScalar(rnd io.Reader) (*big.Int, error) {
	for {
		k, err := rand.Int(rnd, bn256.Order)
		if err != nil {
			return nil, failure.Wrap(failure.CryptoInvalid, err, "unable to read random scalar")
		}
		if k.Sign() > 0 {
			return k, nil
		}
	}
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
