/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package datastore

import (
	"context"

	"github.com/pkg/errors"
)

// Namespaces opened by the prover.
const (
	WalletC   = "wallet"
	ClaimDefC = "claim_definitions"
	SchemaC   = "schemas"
)

// ErrDataNotFound is returned, possibly wrapped, when a key has no record.
var ErrDataNotFound = errors.New("data not found")

// Provider storage provider interface
type Provider interface {
	// OpenStore opens a store with given name space and returns the handle
	OpenStore(name string) (Store, error)

	// CloseStore closes store of given name space
	CloseStore(name string) error

	// Close closes all stores created under this store provider
	Close() error
}

//go:generate mockery -name=Store
//go:generate mockery -name=Provider
type Store interface {
	// Put stores the key and the record, replacing any previous value
	Put(ctx context.Context, k string, v []byte) error

	// Get fetches the record based on key
	Get(ctx context.Context, k string) ([]byte, error)

	// Delete will delete a record with k key
	Delete(ctx context.Context, k string) error
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrDataNotFound)
}
