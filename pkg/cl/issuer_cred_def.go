/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cl

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// PrimaryPrivateKey holds the safe prime factors p = 2p'+1, q = 2q'+1.
type PrimaryPrivateKey struct {
	PPrime *big.Int `json:"p_prime"`
	QPrime *big.Int `json:"q_prime"`
}

type CredentialDefinition struct {
	fields     []string
	bits       int
	rand       io.Reader
	publicKey  *PrimaryPublicKey
	privateKey *PrimaryPrivateKey
}

func NewCredentialDefinition(bits int) *CredentialDefinition {
	return &CredentialDefinition{bits: bits, rand: rand.Reader}
}

func (r *CredentialDefinition) AddSchemaFields(f ...string) {
	r.fields = append(r.fields, f...)
}

func (r *CredentialDefinition) PublicKey() (*PrimaryPublicKey, error) {
	if r.publicKey == nil {
		return nil, errors.New("Finalize must be called after adding fields")
	}
	return r.publicKey, nil
}

func (r *CredentialDefinition) PrivateKey() (*PrimaryPrivateKey, error) {
	if r.privateKey == nil {
		return nil, errors.New("Finalize must be called after adding fields")
	}
	return r.privateKey, nil
}

// Finalize generates the key pair: n = pq over safe primes, s a random
// quadratic residue and every other generator a random power of s.
func (r *CredentialDefinition) Finalize() error {
	if r.bits < 64 || r.bits%2 != 0 {
		return errors.Errorf("invalid modulus size %d", r.bits)
	}

	p, pPrime, err := safePrime(r.rand, r.bits/2)
	if err != nil {
		return errors.Wrap(err, "unable to generate p")
	}

	var q, qPrime *big.Int
	for {
		q, qPrime, err = safePrime(r.rand, r.bits/2)
		if err != nil {
			return errors.Wrap(err, "unable to generate q")
		}
		if q.Cmp(p) != 0 {
			break
		}
	}

	n := new(big.Int).Mul(p, q)
	order := new(big.Int).Mul(pPrime, qPrime)

	x, err := rand.Int(r.rand, n)
	if err != nil {
		return errors.Wrap(err, "unable to generate s")
	}
	s := new(big.Int).Exp(x, two, n)

	gen := func() (*big.Int, error) {
		e, err := rand.Int(r.rand, new(big.Int).Sub(order, two))
		if err != nil {
			return nil, err
		}
		e.Add(e, two)
		return new(big.Int).Exp(s, e, n), nil
	}

	pk := &PrimaryPublicKey{N: n, S: s, R: map[string]*big.Int{}}
	for _, dst := range []**big.Int{&pk.Rms, &pk.Rctxt, &pk.Z} {
		if *dst, err = gen(); err != nil {
			return errors.Wrap(err, "unable to generate key element")
		}
	}

	for _, f := range r.fields {
		if pk.R[f], err = gen(); err != nil {
			return errors.Wrapf(err, "unable to generate key element for %s", f)
		}
	}

	r.publicKey = pk
	r.privateKey = &PrimaryPrivateKey{PPrime: pPrime, QPrime: qPrime}

	return nil
}

func safePrime(rnd io.Reader, bits int) (*big.Int, *big.Int, error) {
	for {
		pPrime, err := rand.Prime(rnd, bits-1)
		if err != nil {
			return nil, nil, err
		}

		p := new(big.Int).Lsh(pPrime, 1)
		p.Add(p, one)
		if p.ProbablyPrime(20) {
			return p, pPrime, nil
		}
	}
}
