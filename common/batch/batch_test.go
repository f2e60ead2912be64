package batch

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

func TestBatch(t *testing.T) {
	b, _ := New(context.Background())

	for i := 0; i < 5; i++ {
		i := i
		b.Go(strconv.Itoa(i), func(context.Context) (interface{}, error) {
			return i * i, nil
		})
	}

	result, err := b.WaitAndGetResult()
	assert.Nil(t, err)
	assert.Len(t, result, 5)
	assert.Equal(t, 16, result["4"].Value)
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, b.Keys())
}

func TestBatch_ConcurrencyNum(t *testing.T) {
	b, _ := New(context.Background(), WithConcurrencyNum(2))

	running := atomic.NewInt32(0)
	peak := atomic.NewInt32(0)
	for i := 0; i < 10; i++ {
		b.Go(strconv.Itoa(i), func(context.Context) (interface{}, error) {
			n := running.Inc()
			for {
				p := peak.Load()
				if n <= p || peak.CAS(p, n) {
					break
				}
			}
			running.Dec()
			return nil, nil
		})
	}

	assert.Nil(t, b.Wait())
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestBatch_Error(t *testing.T) {
	b, ctx := New(context.Background())
	boom := errors.New("boom")

	b.Go("bad", func(context.Context) (interface{}, error) {
		return nil, boom
	})

	err := b.Wait()
	if assert.NotNil(t, err) {
		assert.Equal(t, "bad", err.Key)
		assert.ErrorIs(t, err, boom)
	}
	assert.Error(t, ctx.Err())
}
