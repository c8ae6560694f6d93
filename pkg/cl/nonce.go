/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cl

import (
	"crypto/rand"
	"math/big"
)

type CryptoOracle struct{}

func (r *CryptoOracle) NewNonce() (string, error) {
	n, err := NewNonce()
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// NewNonce returns a random LargeNonce bit value.
func NewNonce() (*big.Int, error) {
	return randomBits(rand.Reader, LargeNonce)
}

// NewMasterSecret returns a random LargeMasterSecret bit value.
func NewMasterSecret() (*big.Int, error) {
	return randomBits(rand.Reader, LargeMasterSecret)
}
