package dispatch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitDeliversResult(t *testing.T) {
	d := New(2, 2)

	f := Submit(context.Background(), d.CPU, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	val, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, val)

	// a second await sees the same result
	val, err = f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}

func TestSubmitPropagatesError(t *testing.T) {
	d := New(1, 1)
	boom := errors.New("boom")

	f := Submit(context.Background(), d.IO, func(ctx context.Context) (string, error) {
		return "", boom
	})

	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSubmitRecoversPanic(t *testing.T) {
	d := New(1, 1)

	f := Submit(context.Background(), d.CPU, func(ctx context.Context) ([]string, error) {
		panic("registry exploded")
	})

	val, err := f.Await(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.Nil(t, val)

	// the slot is released after a panic
	g := Submit(context.Background(), d.CPU, func(ctx context.Context) (bool, error) { return true, nil })
	ok, err := g.Await(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	d := New(2, 2)

	var running, peak int32
	release := make(chan struct{})

	futures := make([]*Future[int], 0, 6)
	for i := 0; i < 6; i++ {
		futures = append(futures, Submit(context.Background(), d.IO, func(ctx context.Context) (int, error) {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-release
			atomic.AddInt32(&running, -1)
			return int(n), nil
		}))
	}

	time.Sleep(50 * time.Millisecond)
	close(release)

	for _, f := range futures {
		_, err := f.Await(context.Background())
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestAwaitHonoursContext(t *testing.T) {
	d := New(1, 1)
	block := make(chan struct{})
	defer close(block)

	f := Submit(context.Background(), d.CPU, func(ctx context.Context) (int, error) {
		<-block
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmitWithCancelledContext(t *testing.T) {
	d := New(1, 1)
	block := make(chan struct{})
	defer close(block)

	// occupy the only slot
	started := make(chan struct{})
	Submit(context.Background(), d.CPU, func(ctx context.Context) (int, error) {
		close(started)
		<-block
		return 0, nil
	})
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	var ran atomic.Bool
	f := Submit(ctx, d.CPU, func(ctx context.Context) (int, error) {
		ran.Store(true)
		return 1, nil
	})
	cancel()

	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran.Load())
}

func TestDefaults(t *testing.T) {
	d := New(0, 0)
	assert.Positive(t, d.CPU.Size())
	assert.Equal(t, DefaultIOWorkers, d.IO.Size())
	assert.Equal(t, "io", d.IO.Name())
}
