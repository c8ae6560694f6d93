/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package anoncreds

import (
	"github.com/scoir/anoncreds/pkg/datastore"
)

//go:generate mockery -inpkg -name=Provider
type Provider interface {
	StorageProvider() datastore.Provider
	Oracle() Oracle
}

//go:generate mockery -name=Oracle
type Oracle interface {
	NewNonce() (string, error)
}
