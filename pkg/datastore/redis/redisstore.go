/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package redis

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/scoir/anoncreds/pkg/datastore"
)

type Config struct {
	URL string        `mapstructure:"url"`
	// TTL expires records of every store but the wallet. Zero keeps them.
	TTL time.Duration `mapstructure:"ttl"`
}

// Provider is a redis backed datastore.Provider. Store names become key prefixes.
type Provider struct {
	client *redis.Client
	ttl    time.Duration
	stores map[string]*redisStore
	sync.RWMutex
}

type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewProvider parses the URL, pings the server and returns the provider
func NewProvider(config *Config) (*Provider, error) {
	if config == nil {
		return nil, errors.New("config missing")
	}

	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis url")
	}

	return NewProviderWithClient(context.Background(), redis.NewClient(opts), config.TTL)
}

// NewProviderWithClient wraps an existing client. A zero ttl keeps records forever.
func NewProviderWithClient(ctx context.Context, client *redis.Client, ttl time.Duration) (*Provider, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "unable to reach redis")
	}

	return &Provider{
		client: client,
		ttl:    ttl,
		stores: map[string]*redisStore{},
	}, nil
}

func (p *Provider) OpenStore(name string) (datastore.Store, error) {
	p.Lock()
	defer p.Unlock()

	if name == "" {
		return nil, errors.New("store name is required")
	}

	if store, ok := p.stores[name]; ok {
		return store, nil
	}

	// Wallet records hold master secrets and never expire.
	ttl := p.ttl
	if name == datastore.WalletC {
		ttl = 0
	}

	store := &redisStore{client: p.client, prefix: name + ":", ttl: ttl}
	p.stores[name] = store

	return store, nil
}

func (p *Provider) CloseStore(name string) error {
	p.Lock()
	defer p.Unlock()

	delete(p.stores, name)
	return nil
}

func (p *Provider) Close() error {
	p.Lock()
	defer p.Unlock()

	p.stores = map[string]*redisStore{}
	return p.client.Close()
}

func (r *redisStore) Put(ctx context.Context, k string, v []byte) error {
	if k == "" {
		return errors.New("key is mandatory")
	}

	if err := r.client.Set(ctx, r.prefix+k, v, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "unable to put %s", k)
	}

	return nil
}

func (r *redisStore) Get(ctx context.Context, k string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.prefix+k).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.Wrapf(datastore.ErrDataNotFound, "key %s", k)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get %s", k)
	}

	return v, nil
}

func (r *redisStore) Delete(ctx context.Context, k string) error {
	if err := r.client.Del(ctx, r.prefix+k).Err(); err != nil {
		return errors.Wrapf(err, "unable to delete %s", k)
	}

	return nil
}
