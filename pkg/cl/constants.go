/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cl

// Bit lengths of the random values used while blinding. The tilde values
// are sized |x| + hash bits + LargeStatistical so responses leak nothing
// about x.
const (
	LargeMasterSecret = 256
	LargeVPrime       = 2128
	LargeNonce        = 80
	LargeHash         = 256
	LargeStatistical  = 80

	LargeVPrimeTilde = LargeVPrime + LargeHash + LargeStatistical
	LargeMTilde      = LargeMasterSecret + LargeHash + LargeStatistical

	// MinModulusBits rejects issuer keys too small to be binding.
	MinModulusBits = 2048

	MasterSecretAttr = "master_secret"
)
