//go:build ursa
// +build ursa

package cl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/internal/testutil"
	"github.com/scoir/anoncreds/pkg/schema"
)

func TestUrsaBlinder_BlindMasterSecret(t *testing.T) {
	pk := testutil.PrimaryKey(1)
	ms, nonce := newSecrets(t)

	t.Run("revocation keys are refused", func(t *testing.T) {
		bs, err := NewUrsaBlinder([]byte(`{}`)).BlindMasterSecret(pk, schema.RevocationPublicKey{"h2": "00"}, ms, nonce)
		require.Nil(t, bs)
		require.True(t, failure.Is(err, failure.CryptoInvalid))
	})

	t.Run("degenerate key", func(t *testing.T) {
		bad := *pk
		bad.S = "1"
		bs, err := NewUrsaBlinder([]byte(`{}`)).BlindMasterSecret(&bad, nil, ms, nonce)
		require.Nil(t, bs)
		require.True(t, failure.Is(err, failure.CryptoInvalid))
	})

	t.Run("malformed key correctness proof", func(t *testing.T) {
		bs, err := NewUrsaBlinder([]byte(`not json`)).BlindMasterSecret(pk, nil, ms, nonce)
		require.Nil(t, bs)
		require.True(t, failure.Is(err, failure.CryptoInvalid))
	})
}
