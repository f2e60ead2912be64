package batch

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"
)

type Option = func(b *Batch)

type Result struct {
	Value interface{}
	Err   error
}

// Error is the first failure of a Batch, tagged with the key of its job.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	return e.Key + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithConcurrencyNum bounds the number of jobs running at once
func WithConcurrencyNum(n int) Option {
	return func(b *Batch) {
		if n > 0 {
			b.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// Batch runs keyed jobs like errgroup, but bounds concurrency and keeps every result.
// The first failing job cancels the context handed to the remaining ones.
type Batch struct {
	result map[string]Result
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	mux    sync.Mutex
	err    *Error
	once   sync.Once
	ctx    context.Context
	cancel func()
}

func (b *Batch) Go(key string, fn func(ctx context.Context) (interface{}, error)) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		var ret Result
		if b.sem != nil {
			if err := b.sem.Acquire(b.ctx, 1); err != nil {
				b.store(key, Result{Err: err})
				return
			}
			defer b.sem.Release(1)
		}

		ret.Value, ret.Err = fn(b.ctx)
		b.store(key, ret)
	}()
}

func (b *Batch) store(key string, ret Result) {
	if ret.Err != nil {
		b.once.Do(func() {
			b.err = &Error{key, ret.Err}
			b.cancel()
		})
	}

	b.mux.Lock()
	defer b.mux.Unlock()
	b.result[key] = ret
}

func (b *Batch) Wait() *Error {
	b.wg.Wait()
	b.cancel()
	return b.err
}

func (b *Batch) WaitAndGetResult() (map[string]Result, *Error) {
	err := b.Wait()
	return b.Result(), err
}

func (b *Batch) Result() map[string]Result {
	b.mux.Lock()
	defer b.mux.Unlock()
	copy := map[string]Result{}
	for k, v := range b.result {
		copy[k] = v
	}
	return copy
}

// Keys returns the keys of finished jobs in sorted order.
func (b *Batch) Keys() []string {
	b.mux.Lock()
	defer b.mux.Unlock()
	keys := make([]string, 0, len(b.result))
	for k := range b.result {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func New(ctx context.Context, opts ...Option) (*Batch, context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	b := &Batch{
		result: map[string]Result{},
		ctx:    ctx,
		cancel: cancel,
	}

	for _, o := range opts {
		o(b)
	}

	return b, ctx
}
