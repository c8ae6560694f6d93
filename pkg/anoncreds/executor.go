/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package anoncreds

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/scoir/anoncreds/pkg/framework"
)

const defaultQueue = 64

// ErrExecutorClosed is returned by futures submitted after Close.
var ErrExecutorClosed = errors.New("executor is closed")

// Callback is invoked once per command with the command's handle.
type Callback func(handle string, res *ClaimRequestResult, err error)

// ClaimRequestCommand describes one asynchronous claim request. An empty
// ClaimDefJSON looks the definition up in the prover's store.
type ClaimRequestCommand struct {
	ProverDID        string
	OfferJSON        string
	ClaimDefJSON     string
	MasterSecretName string
	Store            bool
}

// Future is the pending result of a submitted command. Abandoning it does
// not cancel or roll back the command.
type Future struct {
	Handle string

	done chan struct{}
	res  *ClaimRequestResult
	err  error
}

func newFuture() *Future {
	return &Future{Handle: uuid.New().String(), done: make(chan struct{})}
}

func (f *Future) complete(res *ClaimRequestResult, err error) {
	f.res, f.err = res, err
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Get waits for the result or for ctx to end.
func (f *Future) Get(ctx context.Context) (*ClaimRequestResult, error) {
	select {
	case <-f.done:
		return f.res, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type job struct {
	ctx    context.Context
	cmd    ClaimRequestCommand
	future *Future
	cb     Callback
}

// Executor runs claim request commands on a fixed pool of goroutines.
type Executor struct {
	prover *Prover
	jobs   chan *job
	wg     sync.WaitGroup
	log    logrus.FieldLogger

	lock   sync.RWMutex
	closed bool
}

func NewExecutor(prover *Prover, conf *framework.ExecutorConfig) *Executor {
	workers, queue := runtime.NumCPU(), defaultQueue
	if conf != nil {
		if conf.Workers > 0 {
			workers = conf.Workers
		}
		if conf.Queue > 0 {
			queue = conf.Queue
		}
	}

	r := &Executor{
		prover: prover,
		jobs:   make(chan *job, queue),
		log:    prover.log,
	}

	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.work()
	}

	return r
}

// Submit queues cmd. It blocks while the queue is full unless ctx ends
// first, in which case the future completes with ctx's error.
func (r *Executor) Submit(ctx context.Context, cmd ClaimRequestCommand, cb Callback) *Future {
	f := newFuture()
	j := &job{ctx: ctx, cmd: cmd, future: f, cb: cb}

	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.closed {
		r.finish(j, nil, ErrExecutorClosed)
		return f
	}

	select {
	case r.jobs <- j:
		r.log.WithField("handle", f.Handle).Debug("claim request queued")
	case <-ctx.Done():
		r.finish(j, nil, ctx.Err())
	}

	return f
}

// Close stops accepting commands and waits for queued ones to finish.
func (r *Executor) Close() {
	r.lock.Lock()
	if r.closed {
		r.lock.Unlock()
		return
	}
	r.closed = true
	close(r.jobs)
	r.lock.Unlock()

	r.wg.Wait()
}

func (r *Executor) work() {
	defer r.wg.Done()

	for j := range r.jobs {
		res, err := r.run(j)
		r.finish(j, res, err)
	}
}

func (r *Executor) run(j *job) (*ClaimRequestResult, error) {
	if err := j.ctx.Err(); err != nil {
		return nil, err
	}

	cmd := j.cmd
	if cmd.ClaimDefJSON == "" {
		def, err := r.prover.claimDefForOffer(j.ctx, cmd.OfferJSON)
		if err != nil {
			return nil, err
		}
		cmd.ClaimDefJSON = def
	}

	if cmd.Store {
		return r.prover.CreateAndStoreClaimRequest(j.ctx, cmd.ProverDID, cmd.OfferJSON, cmd.ClaimDefJSON, cmd.MasterSecretName)
	}

	return r.prover.CreateClaimRequest(j.ctx, cmd.ProverDID, cmd.OfferJSON, cmd.ClaimDefJSON, cmd.MasterSecretName)
}

func (r *Executor) finish(j *job, res *ClaimRequestResult, err error) {
	j.future.complete(res, err)

	if err != nil {
		r.log.WithError(err).WithField("handle", j.future.Handle).Debug("claim request failed")
	}

	if j.cb != nil {
		j.cb(j.future.Handle, res, err)
	}
}
