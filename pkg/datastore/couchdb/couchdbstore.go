/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package couchdbstore

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/go-kivik/couchdb/v3" // The CouchDB driver
	"github.com/go-kivik/kivik/v3"
	"github.com/pkg/errors"

	"github.com/scoir/anoncreds/pkg/datastore"
)

// Provider represents an CouchDB implementation of the datastore.Provider interface
type Provider struct {
	hostURL       string
	couchDBClient *kivik.Client
	dbs           map[string]*couchDBStore
	sync.RWMutex
}

const (
	blankHostErrMsg           = "hostURL for new CouchDB provider can't be blank"
	failToCloseProviderErrMsg = "failed to close provider"
)

type Config struct {
	URL string `mapstructure:"url"`
}

type document struct {
	ID    string `json:"_id"`
	Rev   string `json:"_rev,omitempty"`
	Value []byte `json:"value"`
}

// NewProvider instantiates Provider
func NewProvider(config *Config) (*Provider, error) {
	if config == nil || config.URL == "" {
		return nil, errors.New(blankHostErrMsg)
	}

	client, err := kivik.New("couch", config.URL)
	if err != nil {
		return nil, err
	}

	p := &Provider{hostURL: config.URL, couchDBClient: client, dbs: map[string]*couchDBStore{}}
	return p, nil
}

// OpenStore opens an existing store with the given name and returns it.
func (p *Provider) OpenStore(name string) (datastore.Store, error) {
	p.Lock()
	defer p.Unlock()

	// Check cache first
	cachedStore, existsInCache := p.dbs[name]
	if existsInCache {
		return cachedStore, nil
	}

	err := p.couchDBClient.CreateDB(context.Background(), name)
	if err != nil && kivik.StatusCode(err) != http.StatusPreconditionFailed {
		return nil, fmt.Errorf("failed to create db: %w", err)
	}

	db := p.couchDBClient.DB(context.Background(), name)

	if db.Err() != nil {
		return nil, db.Err()
	}

	store := &couchDBStore{db: db}

	p.dbs[name] = store

	return store, nil
}

// CloseStore closes a previously opened store.
func (p *Provider) CloseStore(name string) error {
	p.Lock()
	defer p.Unlock()

	store, exists := p.dbs[name]
	if !exists {
		return nil
	}

	delete(p.dbs, name)

	return store.db.Close(context.Background())
}

// Close closes the provider.
func (p *Provider) Close() error {
	p.Lock()
	defer p.Unlock()

	for _, store := range p.dbs {
		err := store.db.Close(context.Background())
		if err != nil {
			return fmt.Errorf(failToCloseProviderErrMsg+": %w", err)
		}
	}

	if err := p.couchDBClient.Close(context.Background()); err != nil {
		return err
	}

	p.dbs = make(map[string]*couchDBStore)

	return nil
}

type couchDBStore struct {
	db *kivik.DB
}

func (r *couchDBStore) Put(ctx context.Context, k string, v []byte) error {
	if k == "" {
		return errors.New("key is mandatory")
	}

	doc := &document{ID: k, Value: v}
	existing, err := r.get(ctx, k)
	switch {
	case err == nil:
		doc.Rev = existing.Rev
	case !errors.Is(err, datastore.ErrDataNotFound):
		return err
	}

	_, err = r.db.Put(ctx, k, doc)
	if err != nil {
		return errors.Wrapf(err, "unable to put %s", k)
	}

	return nil
}

func (r *couchDBStore) Get(ctx context.Context, k string) ([]byte, error) {
	doc, err := r.get(ctx, k)
	if err != nil {
		return nil, err
	}

	return doc.Value, nil
}

func (r *couchDBStore) Delete(ctx context.Context, k string) error {
	doc, err := r.get(ctx, k)
	if errors.Is(err, datastore.ErrDataNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = r.db.Delete(ctx, k, doc.Rev)
	if err != nil {
		return errors.Wrapf(err, "unable to delete %s", k)
	}

	return nil
}

func (r *couchDBStore) get(ctx context.Context, k string) (*document, error) {
	row := r.db.Get(ctx, k)

	doc := &document{}
	err := row.ScanDoc(doc)
	if kivik.StatusCode(err) == http.StatusNotFound {
		return nil, errors.Wrapf(datastore.ErrDataNotFound, "key %s", k)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get %s", k)
	}

	return doc, nil
}
