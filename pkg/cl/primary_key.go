/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cl

import (
	"math/big"

	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/schema"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// PrimaryPublicKey is the issuer's CL primary key over Z*_n.
type PrimaryPublicKey struct {
	N     *big.Int
	S     *big.Int
	Rms   *big.Int
	R     map[string]*big.Int
	Rctxt *big.Int
	Z     *big.Int
}

// PrimaryPublicKeyFromSchema parses the decimal wire form. Parsing does not
// range check; call Validate before use.
func PrimaryPublicKeyFromSchema(pk *schema.PrimaryPublicKey) (*PrimaryPublicKey, error) {
	if pk == nil {
		return nil, failure.New(failure.CryptoInvalid, "primary public key missing")
	}

	out := &PrimaryPublicKey{R: make(map[string]*big.Int, len(pk.R))}

	var err error
	fields := []struct {
		name string
		val  string
		dst  **big.Int
	}{
		{"n", pk.N, &out.N},
		{"s", pk.S, &out.S},
		{"rms", pk.Rms, &out.Rms},
		{"rctxt", pk.Rctxt, &out.Rctxt},
		{"z", pk.Z, &out.Z},
	}
	for _, f := range fields {
		if *f.dst, err = parseDec(f.name, f.val); err != nil {
			return nil, err
		}
	}

	for attr, v := range pk.R {
		if out.R[attr], err = parseDec("r."+attr, v); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (r *PrimaryPublicKey) ToSchema() *schema.PrimaryPublicKey {
	out := &schema.PrimaryPublicKey{
		N:     r.N.String(),
		S:     r.S.String(),
		Rms:   r.Rms.String(),
		R:     make(map[string]string, len(r.R)),
		Rctxt: r.Rctxt.String(),
		Z:     r.Z.String(),
	}

	for attr, v := range r.R {
		out.R[attr] = v.String()
	}

	return out
}

// Validate rejects degenerate parameters: a small or even modulus, and
// generators that are 0, ±1 or share a factor with n.
func (r *PrimaryPublicKey) Validate() error {
	if r.N == nil || r.N.Sign() <= 0 {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "modulus n missing")
	}

	if r.N.BitLen() < MinModulusBits {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter,
			"modulus n is %d bits, need at least %d", r.N.BitLen(), MinModulusBits)
	}

	if r.N.Bit(0) == 0 {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "modulus n is even")
	}

	gens := map[string]*big.Int{"s": r.S, "rms": r.Rms, "rctxt": r.Rctxt, "z": r.Z}
	for attr, v := range r.R {
		gens["r."+attr] = v
	}

	for name, g := range gens {
		if err := r.checkElement(name, g); err != nil {
			return err
		}
	}

	return nil
}

func (r *PrimaryPublicKey) checkElement(name string, g *big.Int) error {
	nMinusOne := new(big.Int).Sub(r.N, one)

	if g == nil || g.Cmp(one) <= 0 || g.Cmp(nMinusOne) >= 0 {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "%s is outside (1, n-1)", name)
	}

	if new(big.Int).GCD(nil, nil, g, r.N).Cmp(one) != 0 {
		return failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "%s is not a unit mod n", name)
	}

	return nil
}

func parseDec(name, v string) (*big.Int, error) {
	i, ok := new(big.Int).SetString(v, 10)
	if !ok {
		return nil, failure.Structured(failure.CryptoInvalid, failure.InvalidParameter, "%s is not a decimal integer", name)
	}
	return i, nil
}
