/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package postgres

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"

	"github.com/scoir/anoncreds/pkg/datastore"
)

const (
	tablePrefix = "t_"
)

// Provider represents a Postgres DB implementation of the datastore.Provider interface.
// Each store is a two column table in the configured database.
type Provider struct {
	pool *pgxpool.Pool
	dbs  map[string]*sqlDBStore
	sync.RWMutex
}

type sqlDBStore struct {
	pool      *pgxpool.Pool
	tableName string
}

// NewProvider instantiates Provider
func NewProvider(config *Config) (*Provider, error) {
	if config == nil {
		return nil, errors.New("info for new postgres DB provider can't be empty")
	}

	pool, err := pgxpool.Connect(context.Background(), config.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open connection")
	}

	p := &Provider{
		pool: pool,
		dbs:  map[string]*sqlDBStore{},
	}

	return p, nil
}

// OpenStore creates the backing table if needed and returns the store for given name space.
func (p *Provider) OpenStore(name string) (datastore.Store, error) {
	p.Lock()
	defer p.Unlock()

	if name == "" {
		return nil, errors.New("store name is required")
	}

	if store, ok := p.dbs[name]; ok {
		return store, nil
	}

	tableName := pgx.Identifier{tablePrefix + strings.ToLower(name)}.Sanitize()
	createTableStmt := `CREATE TABLE IF NOT EXISTS ` + tableName +
		` (key TEXT NOT NULL, data BYTEA NOT NULL, PRIMARY KEY (key));`

	_, err := p.pool.Exec(context.Background(), createTableStmt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create table %s", name)
	}

	store := &sqlDBStore{
		pool:      p.pool,
		tableName: tableName,
	}

	p.dbs[name] = store

	return store, nil
}

// Close closes the provider and its pool.
func (p *Provider) Close() error {
	p.Lock()
	defer p.Unlock()

	p.dbs = make(map[string]*sqlDBStore)
	p.pool.Close()

	return nil
}

// CloseStore forgets a previously opened store
func (p *Provider) CloseStore(name string) error {
	p.Lock()
	defer p.Unlock()

	delete(p.dbs, name)

	return nil
}

func (p *sqlDBStore) Put(ctx context.Context, k string, v []byte) error {
	if k == "" {
		return errors.New("key is mandatory")
	}

	_, err := p.pool.Exec(ctx, "INSERT INTO "+p.tableName+" (key, data) VALUES ($1, $2) "+
		"ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data", k, v)
	if err != nil {
		return errors.Wrapf(err, "unable to put %s", k)
	}

	return nil
}

func (p *sqlDBStore) Get(ctx context.Context, k string) ([]byte, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, "SELECT data FROM "+p.tableName+" WHERE key = $1", k).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(datastore.ErrDataNotFound, "key %s", k)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get %s", k)
	}

	return data, nil
}

func (p *sqlDBStore) Delete(ctx context.Context, k string) error {
	_, err := p.pool.Exec(ctx, "DELETE FROM "+p.tableName+" WHERE key = $1", k)
	if err != nil {
		return errors.Wrapf(err, "unable to delete %s", k)
	}

	return nil
}
