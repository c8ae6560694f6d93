/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mem

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/scoir/anoncreds/pkg/datastore"
)

// Provider is an in-process datastore.Provider. Stores survive CloseStore
// so a reopened namespace sees earlier writes until Close.
type Provider struct {
	stores map[string]*memStore
	sync.RWMutex
}

type memStore struct {
	db map[string][]byte
	sync.RWMutex
}

func NewProvider() *Provider {
	return &Provider{stores: map[string]*memStore{}}
}

func (p *Provider) OpenStore(name string) (datastore.Store, error) {
	p.Lock()
	defer p.Unlock()

	if name == "" {
		return nil, errors.New("store name is required")
	}

	store, ok := p.stores[name]
	if !ok {
		store = &memStore{db: map[string][]byte{}}
		p.stores[name] = store
	}

	return store, nil
}

func (p *Provider) CloseStore(string) error {
	return nil
}

func (p *Provider) Close() error {
	p.Lock()
	defer p.Unlock()

	p.stores = map[string]*memStore{}
	return nil
}

func (r *memStore) Put(_ context.Context, k string, v []byte) error {
	if k == "" {
		return errors.New("key is mandatory")
	}

	r.Lock()
	defer r.Unlock()

	r.db[k] = append([]byte(nil), v...)
	return nil
}

func (r *memStore) Get(_ context.Context, k string) ([]byte, error) {
	r.RLock()
	defer r.RUnlock()

	v, ok := r.db[k]
	if !ok {
		return nil, errors.Wrapf(datastore.ErrDataNotFound, "key %s", k)
	}

	return append([]byte(nil), v...), nil
}

func (r *memStore) Delete(_ context.Context, k string) error {
	r.Lock()
	defer r.Unlock()

	delete(r.db, k)
	return nil
}
