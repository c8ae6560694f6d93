package anoncreds

import (
	"github.com/scoir/anoncreds/pkg/cl"
	"github.com/scoir/anoncreds/pkg/datastore"
	"github.com/scoir/anoncreds/pkg/datastore/mem"
)

type providerMock struct {
	store  datastore.Provider
	oracle Oracle
}

func NewProvider() *providerMock {
	return &providerMock{
		store:  mem.NewProvider(),
		oracle: &cl.CryptoOracle{},
	}
}

func (r *providerMock) StorageProvider() datastore.Provider {
	return r.store
}

func (r *providerMock) Oracle() Oracle {
	return r.oracle
}

type oracleMock struct {
	nonce string
	err   error
}

func (r *oracleMock) NewNonce() (string, error) {
	return r.nonce, r.err
}
