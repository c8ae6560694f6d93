/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package postgres

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/require"

	"github.com/scoir/anoncreds/pkg/datastore"
)

var (
	psqlInfo = &Config{
		Host:     "127.0.0.1",
		Port:     5432,
		User:     "postgres",
		Password: "mysecretpassword",
		SSLMode:  "disable",
	}
)

// For these unit tests to run, you must ensure you have a Postgres DB instance running at the address in
// psqlInfo.
// To run the tests manually, start an instance by running the following command in the terminal
// docker run -p 5432:5432 --name PostgresStoreTest -e POSTGRES_PASSWORD=mysecretpassword -d postgres:11.8

func TestMain(m *testing.M) {
	err := waitForSQLDBToStart()
	if err != nil {
		fmt.Printf(err.Error() +
			". Make sure you start a sqlStoreDB instance using" +
			" 'docker run -p 5432:5432 postgres:11.8' before running the unit tests")
		os.Exit(0)
	}

	os.Exit(m.Run())
}

func waitForSQLDBToStart() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, psqlInfo.String())
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(context.Background()) }()

	return conn.Ping(ctx)
}

func TestSQLDBStore(t *testing.T) {
	ctx := context.Background()

	prov, err := NewProvider(psqlInfo)
	require.NoError(t, err)
	defer func() { require.NoError(t, prov.Close()) }()

	name := "test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	store, err := prov.OpenStore(name)
	require.NoError(t, err)

	t.Run("Test sql db store put and get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "ms", []byte("first")))
		require.NoError(t, store.Put(ctx, "ms", []byte("second")))

		v, err := store.Get(ctx, "ms")
		require.NoError(t, err)
		require.Equal(t, []byte("second"), v)
	})

	t.Run("Test sql db store missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		require.True(t, datastore.IsNotFound(err))
	})

	t.Run("Test sql db store delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "gone", []byte("x")))
		require.NoError(t, store.Delete(ctx, "gone"))

		_, err := store.Get(ctx, "gone")
		require.True(t, datastore.IsNotFound(err))
	})

	t.Run("Test sql db store reopen", func(t *testing.T) {
		require.NoError(t, prov.CloseStore(name))
		reopened, err := prov.OpenStore(name)
		require.NoError(t, err)

		v, err := reopened.Get(ctx, "ms")
		require.NoError(t, err)
		require.Equal(t, []byte("second"), v)
	})

	t.Run("Test sql db store errors", func(t *testing.T) {
		_, err := prov.OpenStore("")
		require.Error(t, err)
		require.Error(t, store.Put(ctx, "", []byte("x")))

		_, err = NewProvider(nil)
		require.Error(t, err)
	})
}
