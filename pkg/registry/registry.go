/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package registry

import (
	"context"

	"github.com/scoir/anoncreds/pkg/datastore"
	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/schema"
)

//go:generate mockery -name=SchemaResolver
type SchemaResolver interface {
	AttributeNames(ctx context.Context, key schema.SchemaKey) ([]string, error)
}

// Registry resolves schema keys to published schemas.
type Registry struct {
	store datastore.Store
}

func New(store datastore.Store) *Registry {
	return &Registry{store: store}
}

// Open opens the schema namespace of prov.
func Open(prov datastore.Provider) (*Registry, error) {
	store, err := prov.OpenStore(datastore.SchemaC)
	if err != nil {
		return nil, failure.Wrap(failure.StorageError, err, "unable to open schema registry")
	}

	return New(store), nil
}

func (r *Registry) Put(ctx context.Context, s *schema.Schema) error {
	d, err := s.Serialize()
	if err != nil {
		return failure.Wrap(failure.StructuralInvalid, err, "unable to serialize schema")
	}

	if _, err = schema.ParseSchema(d); err != nil {
		return err
	}

	key := s.Key().String()
	if err = r.store.Put(ctx, key, d); err != nil {
		return failure.Wrapf(failure.StorageError, err, "unable to store schema %s", key)
	}

	return nil
}

func (r *Registry) Get(ctx context.Context, key schema.SchemaKey) (*schema.Schema, error) {
	d, err := r.store.Get(ctx, key.String())
	if datastore.IsNotFound(err) {
		return nil, failure.Wrapf(failure.NotFound, err, "schema %s", key)
	}
	if err != nil {
		return nil, failure.Wrapf(failure.StorageError, err, "unable to read schema %s", key)
	}

	return schema.ParseSchema(d)
}

func (r *Registry) AttributeNames(ctx context.Context, key schema.SchemaKey) ([]string, error) {
	s, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	return s.AttrNames, nil
}
