package anoncreds

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/scoir/anoncreds/pkg/cl"
	"github.com/scoir/anoncreds/pkg/failure"
	"github.com/scoir/anoncreds/pkg/framework"
	"github.com/scoir/anoncreds/pkg/internal/testutil"
)

func TestExecutor(t *testing.T) {
	ctx := context.Background()
	defJSON := testutil.ClaimDefinitionJSON(testutil.IssuerDID, 1)

	t.Run("runs commands and reports through callback", func(t *testing.T) {
		p := newProver(t)
		exec := NewExecutor(p, &framework.ExecutorConfig{Workers: 2, Queue: 1})
		defer exec.Close()

		var (
			lock    sync.Mutex
			handles = map[string]error{}
		)
		cb := func(handle string, res *ClaimRequestResult, err error) {
			lock.Lock()
			defer lock.Unlock()
			handles[handle] = err
		}

		var futures []*Future
		for i := 0; i < 4; i++ {
			futures = append(futures, exec.Submit(ctx, ClaimRequestCommand{
				ProverDID:        testutil.ProverDID,
				OfferJSON:        testutil.ClaimOffer(testutil.IssuerDID, 1),
				ClaimDefJSON:     defJSON,
				MasterSecretName: testutil.MasterSecretName,
			}, cb))
		}

		seen := map[string]bool{}
		for _, f := range futures {
			res, err := f.Get(ctx)
			require.NoError(t, err)
			require.NoError(t, cl.VerifyClaimRequest(testutil.ClaimDefinition(testutil.IssuerDID, 1), res.Request))
			require.False(t, seen[f.Handle])
			seen[f.Handle] = true
		}

		exec.Close()
		lock.Lock()
		defer lock.Unlock()
		require.Len(t, handles, 4)
		for _, err := range handles {
			require.NoError(t, err)
		}
	})

	t.Run("failures are delivered", func(t *testing.T) {
		p := newProver(t)
		exec := NewExecutor(p, nil)
		defer exec.Close()

		f := exec.Submit(ctx, ClaimRequestCommand{
			ProverDID:        testutil.ProverDID,
			OfferJSON:        testutil.ClaimOffer(testutil.OtherIssuerDID, 1),
			ClaimDefJSON:     defJSON,
			MasterSecretName: testutil.MasterSecretName,
		}, nil)

		<-f.Done()
		_, err := f.Get(ctx)
		require.True(t, failure.Is(err, failure.StructuralInvalid))
	})

	t.Run("stored definition and metadata", func(t *testing.T) {
		p := newProver(t)
		require.NoError(t, p.ClaimDefinitions().Put(ctx, testutil.ClaimDefinition(testutil.IssuerDID, 1)))
		exec := NewExecutor(p, &framework.ExecutorConfig{Workers: 1})
		defer exec.Close()

		f := exec.Submit(ctx, ClaimRequestCommand{
			ProverDID:        testutil.ProverDID,
			OfferJSON:        testutil.ClaimOffer(testutil.IssuerDID, 1),
			MasterSecretName: testutil.MasterSecretName,
			Store:            true,
		}, nil)

		res, err := f.Get(ctx)
		require.NoError(t, err)

		md, err := p.ClaimRequestMetadata(ctx, testutil.IssuerDID, testutil.GVTSchemaKey(1))
		require.NoError(t, err)
		require.Equal(t, res.Metadata, md)
	})

	t.Run("abandoned wait", func(t *testing.T) {
		f := newFuture()
		waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		_, err := f.Get(waitCtx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("cancelled before running", func(t *testing.T) {
		p := newProver(t)
		exec := NewExecutor(p, &framework.ExecutorConfig{Workers: 1})
		defer exec.Close()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		f := exec.Submit(cctx, ClaimRequestCommand{ProverDID: testutil.ProverDID}, nil)
		_, err := f.Get(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("closed executor", func(t *testing.T) {
		p := newProver(t)
		exec := NewExecutor(p, nil)
		exec.Close()
		exec.Close()

		var got error
		f := exec.Submit(ctx, ClaimRequestCommand{}, func(_ string, _ *ClaimRequestResult, err error) {
			got = err
		})
		_, err := f.Get(ctx)
		require.ErrorIs(t, err, ErrExecutorClosed)
		require.ErrorIs(t, got, ErrExecutorClosed)
	})
}
