package manager

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scoir/anoncreds/pkg/framework"
)

func TestDataProviderManager(t *testing.T) {
	t.Run("providers are cached per backend", func(t *testing.T) {
		mgr := NewDataProviderManager(&framework.DatastoreConfig{Database: "mem"})

		first, err := mgr.DefaultStoreProvider()
		require.NoError(t, err)
		second, err := mgr.DefaultStoreProvider()
		require.NoError(t, err)
		require.Same(t, first, second)
		require.Equal(t, "mem", mgr.Config().Database)

		require.NoError(t, mgr.Close())
		third, err := mgr.DefaultStoreProvider()
		require.NoError(t, err)
		require.NotSame(t, first, third)
	})

	t.Run("no config", func(t *testing.T) {
		mgr := NewDataProviderManager(nil)
		_, err := mgr.DefaultStoreProvider()
		require.Error(t, err)

		mgr = NewDataProviderManager(&framework.DatastoreConfig{})
		_, err = mgr.DefaultStoreProvider()
		require.Error(t, err)
	})
}
