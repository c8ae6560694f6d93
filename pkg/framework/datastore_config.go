/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package framework

import (
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"

	"github.com/scoir/anoncreds/pkg/datastore"
	couchdbstore "github.com/scoir/anoncreds/pkg/datastore/couchdb"
	"github.com/scoir/anoncreds/pkg/datastore/mem"
	"github.com/scoir/anoncreds/pkg/datastore/mongodb"
	"github.com/scoir/anoncreds/pkg/datastore/postgres"
	"github.com/scoir/anoncreds/pkg/datastore/redis"
	"github.com/scoir/anoncreds/pkg/util"
)

type DatastoreConfig struct {
	Database string               `mapstructure:"database"`
	Mongo    *mongodb.Config      `mapstructure:"mongo"`
	Postgres *postgres.Config     `mapstructure:"postgres"`
	Redis    *redis.Config        `mapstructure:"redis"`
	CouchDB  *couchdbstore.Config `mapstructure:"couchdb"`

	// ConnectTimeout bounds the retries made while the backing database comes up.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Name identifies the configured backend instance.
func (r *DatastoreConfig) Name() string {
	switch r.Database {
	case "mongo":
		if r.Mongo != nil {
			return r.Mongo.URL + "/" + r.Mongo.Database
		}
	case "postgres":
		if r.Postgres != nil {
			return r.Postgres.String()
		}
	case "redis":
		if r.Redis != nil {
			return r.Redis.URL
		}
	case "couchdb":
		if r.CouchDB != nil {
			return r.CouchDB.URL
		}
	}

	return r.Database
}

func (r *DatastoreConfig) StorageProvider() (datastore.Provider, error) {
	var dp datastore.Provider

	connect := func() error {
		var err error
		switch r.Database {
		case "mongo":
			dp, err = mongodb.NewProvider(r.Mongo)
		case "postgres":
			dp, err = postgres.NewProvider(r.Postgres)
		case "redis":
			dp, err = redis.NewProvider(r.Redis)
		case "couchdb":
			dp, err = couchdbstore.NewProvider(r.CouchDB)
		case "mem":
			dp = mem.NewProvider()
		default:
			return backoff.Permanent(errors.New("no datastore configuration was provided"))
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = r.ConnectTimeout
	if bo.MaxElapsedTime == 0 {
		bo.MaxElapsedTime = 30 * time.Second
	}

	err := backoff.RetryNotify(connect, bo, util.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create datastore based on config")
	}

	return dp, nil
}
