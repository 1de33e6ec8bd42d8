package workpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSubmitReturnsValue(t *testing.T) {
	p := New(2, 4)
	defer p.Close(context.Background())

	f := Submit(p, func() int { return 42 })
	got, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 4
	p := New(workers, 32)

	var running, peak int32
	var futures []*Future[struct{}]
	for i := 0; i < 20; i++ {
		futures = append(futures, Submit(p, func() struct{} {
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return struct{}{}
		}))
	}
	for _, f := range futures {
		_, err := f.Wait(context.Background())
		require.NoError(t, err)
	}
	require.NoError(t, p.Close(context.Background()))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(workers))
}

func TestSubmitRecoversPanic(t *testing.T) {
	p := New(1, 1)
	defer p.Close(context.Background())

	f := Submit(p, func() string { panic("boom") })
	_, err := f.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	// the worker survives the panic
	ok, err := Submit(p, func() bool { return true }).Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubmitAfterCloseResolvesWithErrClosed(t *testing.T) {
	p := New(1, 0)
	require.NoError(t, p.Close(context.Background()))

	_, err := Submit(p, func() int { return 1 }).Wait(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOnCompleteNotifies(t *testing.T) {
	p := New(1, 1)
	defer p.Close(context.Background())

	var wg sync.WaitGroup
	wg.Add(2)
	f := Submit(p, func() string { return "done" })
	f.OnComplete(func(v string, err error) {
		assert.Equal(t, "done", v)
		assert.NoError(t, err)
		wg.Done()
	})
	<-f.Done()
	f.OnComplete(func(v string, err error) {
		assert.Equal(t, "done", v)
		wg.Done()
	})
	wg.Wait()
}

func TestWaitHonoursContext(t *testing.T) {
	p := New(1, 1)
	release := make(chan struct{})
	f := Submit(p, func() int {
		<-release
		return 1
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, p.Close(context.Background()))
}

func TestResolved(t *testing.T) {
	v, err := Resolved("x", nil).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestCloseHonorsDeadlineWithFullQueue(t *testing.T) {
	p := New(1, 0)
	release := make(chan struct{})
	started := make(chan struct{})

	first := Submit(p, func() int {
		close(started)
		<-release
		return 1
	})
	<-started

	queued := make(chan *Future[int], 1)
	go func() {
		queued <- Submit(p, func() int { return 2 })
	}()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	begin := time.Now()
	err := p.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(begin), time.Second)

	_, err = (<-queued).Wait(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	close(release)
	got, err := first.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	require.NoError(t, p.Close(context.Background()))
}
