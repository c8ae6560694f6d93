/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mongodb

import (
	"context"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scoir/anoncreds/pkg/datastore"
)

type Config struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// Provider represents a Mongo DB implementation of the datastore.Provider interface
type Provider struct {
	client *mongo.Client
	db     *mongo.Database
	stores map[string]*mongoDBStore
	sync.RWMutex
}

type mongoDBStore struct {
	collection *mongo.Collection
}

type record struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// NewProvider instantiates Provider
func NewProvider(config *Config) (*Provider, error) {
	if config == nil {
		return nil, errors.New("config missing")
	}

	tM := reflect.TypeOf(bson.M{})
	reg := bson.NewRegistryBuilder().RegisterTypeMapEntry(bsontype.EmbeddedDocument, tM).Build()
	clientOpts := options.Client().SetRegistry(reg).ApplyURI(config.URL)

	mongoClient, err := mongo.NewClient(clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "error creating mongo client")
	}

	err = mongoClient.Connect(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to mongo")
	}

	p := &Provider{
		client: mongoClient,
		db:     mongoClient.Database(config.Database),
		stores: map[string]*mongoDBStore{}}

	return p, nil
}

// OpenStore opens and returns the collection for given name space.
func (p *Provider) OpenStore(name string) (datastore.Store, error) {
	p.Lock()
	defer p.Unlock()

	if name == "" {
		return nil, errors.New("store name is required")
	}

	if store, ok := p.stores[name]; ok {
		return store, nil
	}

	store := &mongoDBStore{
		collection: p.db.Collection(name),
	}

	p.stores[name] = store

	return store, nil
}

// Close closes the provider and disconnects the client.
func (p *Provider) Close() error {
	p.Lock()
	defer p.Unlock()

	p.stores = make(map[string]*mongoDBStore)

	return p.client.Disconnect(context.Background())
}

// CloseStore forgets a previously opened store. The shared client stays connected.
func (p *Provider) CloseStore(name string) error {
	p.Lock()
	defer p.Unlock()

	delete(p.stores, name)

	return nil
}

func (r *mongoDBStore) Put(ctx context.Context, k string, v []byte) error {
	if k == "" {
		return errors.New("key is mandatory")
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": k}, &record{Key: k, Value: v}, opts)
	if err != nil {
		return errors.Wrapf(err, "unable to put %s", k)
	}

	return nil
}

func (r *mongoDBStore) Get(ctx context.Context, k string) ([]byte, error) {
	rec := &record{}
	err := r.collection.FindOne(ctx, bson.M{"_id": k}).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrapf(datastore.ErrDataNotFound, "key %s", k)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get %s", k)
	}

	return rec.Value, nil
}

func (r *mongoDBStore) Delete(ctx context.Context, k string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": k})
	if err != nil {
		return errors.Wrapf(err, "unable to delete %s", k)
	}

	return nil
}
