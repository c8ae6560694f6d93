/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package vault keeps named master secrets in the wallet store namespace.
package vault

import (
	"context"
	"math/big"

	"github.com/scoir/anoncreds/pkg/cl"
	"github.com/scoir/anoncreds/pkg/datastore"
	"github.com/scoir/anoncreds/pkg/failure"
)

const keyPrefix = "master_secret::"

type Vault struct {
	store     datastore.Store
	newSecret func() (*big.Int, error)
}

type Option func(v *Vault)

// WithSecretSource replaces cl.NewMasterSecret as the generator used by Create.
func WithSecretSource(f func() (*big.Int, error)) Option {
	return func(v *Vault) {
		v.newSecret = f
	}
}

func New(store datastore.Store, opts ...Option) *Vault {
	v := &Vault{store: store, newSecret: cl.NewMasterSecret}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Open opens the wallet namespace of prov.
func Open(prov datastore.Provider, opts ...Option) (*Vault, error) {
	store, err := prov.OpenStore(datastore.WalletC)
	if err != nil {
		return nil, failure.Wrap(failure.StorageError, err, "unable to open wallet")
	}

	return New(store, opts...), nil
}

// Get returns the secret stored under name. It never creates one.
func (r *Vault) Get(ctx context.Context, name string) (*big.Int, error) {
	// Nothing is ever stored under an empty name.
	if name == "" {
		return nil, failure.New(failure.NotFound, "master secret name is empty")
	}

	d, err := r.store.Get(ctx, keyPrefix+name)
	if datastore.IsNotFound(err) {
		return nil, failure.Wrapf(failure.NotFound, err, "master secret %s", name)
	}
	if err != nil {
		return nil, failure.Wrapf(failure.StorageError, err, "unable to read master secret %s", name)
	}

	ms, ok := new(big.Int).SetString(string(d), 10)
	if !ok || ms.Sign() < 0 || ms.BitLen() > cl.LargeMasterSecret {
		return nil, failure.Structural(failure.MalformedInput, "stored master secret %s is malformed", name)
	}

	return ms, nil
}

// Create generates and stores a new secret. An existing name is an error.
func (r *Vault) Create(ctx context.Context, name string) error {
	if err := r.checkFree(ctx, name); err != nil {
		return err
	}

	ms, err := r.newSecret()
	if err != nil {
		return failure.Wrap(failure.CryptoInvalid, err, "unable to generate master secret")
	}

	return r.put(ctx, name, ms)
}

// Import stores a caller supplied secret under a new name.
func (r *Vault) Import(ctx context.Context, name string, ms *big.Int) error {
	if ms == nil || ms.Sign() < 0 || ms.BitLen() > cl.LargeMasterSecret {
		return failure.Structural(failure.InvalidParameter, "master secret must be a %d bit non-negative integer", cl.LargeMasterSecret)
	}

	if err := r.checkFree(ctx, name); err != nil {
		return err
	}

	return r.put(ctx, name, ms)
}

func (r *Vault) checkFree(ctx context.Context, name string) error {
	if name == "" {
		return failure.Structural(failure.MissingField, "master secret name is required")
	}

	_, err := r.Get(ctx, name)
	switch {
	case err == nil:
		return failure.Structural(failure.DuplicateName, "master secret %s already exists", name)
	case failure.Is(err, failure.NotFound):
		return nil
	}

	return err
}

func (r *Vault) put(ctx context.Context, name string, ms *big.Int) error {
	err := r.store.Put(ctx, keyPrefix+name, []byte(ms.String()))
	if err != nil {
		return failure.Wrapf(failure.StorageError, err, "unable to store master secret %s", name)
	}

	return nil
}
