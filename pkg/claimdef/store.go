/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package claimdef stores claim definitions keyed by issuer, schema key and
// signature type, with an in memory read cache in front of the datastore.
package claimdef

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/scoir/anoncreds/pkg/datastore"
	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/schema"
)

const (
	defaultTTL    = 60 * time.Minute
	cleanUpPeriod = 1 * time.Minute
)

type Store struct {
	store datastore.Store
	cache *cache.Cache
}

type Option func(s *Store)

// WithCacheTTL sets how long a definition stays cached. Zero disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl <= 0 {
			s.cache = nil
			return
		}
		s.cache = cache.New(ttl, cleanUpPeriod)
	}
}

func New(store datastore.Store, opts ...Option) *Store {
	s := &Store{
		store: store,
		cache: cache.New(defaultTTL, cleanUpPeriod),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open opens the claim definition namespace of prov.
func Open(prov datastore.Provider, opts ...Option) (*Store, error) {
	store, err := prov.OpenStore(datastore.ClaimDefC)
	if err != nil {
		return nil, failure.Wrap(failure.StorageError, err, "unable to open claim definition store")
	}

	return New(store, opts...), nil
}

// Put validates and stores def, replacing any definition with the same identity.
func (r *Store) Put(ctx context.Context, def *schema.ClaimDefinition) error {
	d, err := def.Serialize()
	if err != nil {
		return err
	}

	// Round trip so that only definitions the prover can later read get stored.
	if _, err = schema.ParseClaimDefinition([]byte(d)); err != nil {
		return err
	}

	id := def.ID()
	if err = r.store.Put(ctx, id, []byte(d)); err != nil {
		return failure.Wrapf(failure.StorageError, err, "unable to store claim definition %s", id)
	}

	if r.cache != nil {
		r.cache.Set(id, []byte(d), cache.DefaultExpiration)
	}

	return nil
}

// GetJSON returns the serialized definition. A miss is NotFound.
func (r *Store) GetJSON(ctx context.Context, issuerDID string, key schema.SchemaKey, signatureType string) ([]byte, error) {
	id := schema.ClaimDefinitionID(issuerDID, key, signatureType)

	if r.cache != nil {
		if v, ok := r.cache.Get(id); ok {
			return append([]byte(nil), v.([]byte)...), nil
		}
	}

	d, err := r.store.Get(ctx, id)
	if datastore.IsNotFound(err) {
		return nil, failure.Wrapf(failure.NotFound, err, "claim definition %s", id)
	}
	if err != nil {
		return nil, failure.Wrapf(failure.StorageError, err, "unable to read claim definition %s", id)
	}

	if r.cache != nil {
		r.cache.Set(id, append([]byte(nil), d...), cache.DefaultExpiration)
	}

	return d, nil
}

func (r *Store) Get(ctx context.Context, issuerDID string, key schema.SchemaKey, signatureType string) (*schema.ClaimDefinition, error) {
	d, err := r.GetJSON(ctx, issuerDID, key, signatureType)
	if err != nil {
		return nil, err
	}

	return schema.ParseClaimDefinition(d)
}

func (r *Store) Delete(ctx context.Context, issuerDID string, key schema.SchemaKey, signatureType string) error {
	id := schema.ClaimDefinitionID(issuerDID, key, signatureType)
	if r.cache != nil {
		r.cache.Delete(id)
	}

	if err := r.store.Delete(ctx, id); err != nil {
		return failure.Wrapf(failure.StorageError, err, "unable to delete claim definition %s", id)
	}

	return nil
}
