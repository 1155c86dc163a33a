package ticker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpvault/pkg/ticker"
	"github.com/dmitrymomot/totpvault/pkg/totp"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(unix int64) *fakeClock {
	return &fakeClock{t: time.Unix(unix, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(unix int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = time.Unix(unix, 0)
}

var source = ticker.Source{
	AccountID: "acc-1",
	Params:    totp.Params{Secret: "JBSWY3DPEHPK3PXP"},
}

func next(t *testing.T, w *ticker.Watch) ticker.Update {
	t.Helper()
	select {
	case u, ok := <-w.Updates():
		require.True(t, ok, "updates channel closed")
		return u
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
		return ticker.Update{}
	}
}

func waitClosed(t *testing.T, w *ticker.Watch) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-w.Updates():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("updates channel was not closed")
		}
	}
}

func TestWatch_EmitsImmediately(t *testing.T) {
	t.Parallel()

	clock := newClock(59)
	tk := ticker.New(ticker.WithInterval(time.Hour), ticker.WithClock(clock.Now))
	defer tk.Close()

	w := tk.Watch(context.Background(), source)
	u := next(t, w)

	assert.Equal(t, "acc-1", u.AccountID)
	assert.Equal(t, "996554", u.Code)
	assert.Equal(t, 1, u.Remaining)
	assert.False(t, u.Rolled)
	assert.NoError(t, u.Err)
}

func TestWatch_Rollover(t *testing.T) {
	t.Parallel()

	clock := newClock(30)
	tk := ticker.New(ticker.WithInterval(5*time.Millisecond), ticker.WithClock(clock.Now), ticker.WithBufferSize(100))
	defer tk.Close()

	w := tk.Watch(context.Background(), source)
	first := next(t, w)
	assert.Equal(t, "996554", first.Code)
	assert.Equal(t, 30, first.Remaining)

	same := next(t, w)
	assert.False(t, same.Rolled)
	assert.Equal(t, first.Code, same.Code)

	clock.Set(60)
	var rolled ticker.Update
	for !rolled.Rolled {
		rolled = next(t, w)
	}
	assert.Equal(t, "602287", rolled.Code)
	assert.Equal(t, 30, rolled.Remaining)

	after := next(t, w)
	assert.False(t, after.Rolled)
	assert.Equal(t, "602287", after.Code)
}

func TestWatch_InvalidSecret(t *testing.T) {
	t.Parallel()

	tk := ticker.New(ticker.WithInterval(time.Hour))
	defer tk.Close()

	w := tk.Watch(context.Background(), ticker.Source{AccountID: "bad", Params: totp.Params{Secret: "!!!"}})
	u := next(t, w)
	assert.ErrorIs(t, u.Err, totp.ErrFailedToGenerateTOTP)
	assert.Empty(t, u.Code)
}

func TestWatch_Stop(t *testing.T) {
	t.Parallel()

	tk := ticker.New(ticker.WithInterval(time.Millisecond))
	defer tk.Close()

	w := tk.Watch(context.Background(), source)
	next(t, w)
	assert.Equal(t, 1, tk.Active())

	w.Stop()
	w.Stop()
	waitClosed(t, w)
	assert.Eventually(t, func() bool { return tk.Active() == 0 }, time.Second, time.Millisecond)
}

func TestWatch_ContextCancel(t *testing.T) {
	t.Parallel()

	tk := ticker.New(ticker.WithInterval(time.Millisecond))
	defer tk.Close()

	ctx, cancel := context.WithCancel(context.Background())
	w := tk.Watch(ctx, source)
	next(t, w)

	cancel()
	waitClosed(t, w)
	assert.Eventually(t, func() bool { return tk.Active() == 0 }, time.Second, time.Millisecond)
}

func TestTicker_Close(t *testing.T) {
	t.Parallel()

	tk := ticker.New(ticker.WithInterval(time.Millisecond))

	watches := make([]*ticker.Watch, 3)
	for i := range watches {
		watches[i] = tk.Watch(context.Background(), source)
	}
	assert.Equal(t, 3, tk.Active())

	require.NoError(t, tk.Close())
	require.NoError(t, tk.Close())
	assert.Equal(t, 0, tk.Active())
	for _, w := range watches {
		waitClosed(t, w)
	}

	late := tk.Watch(context.Background(), source)
	waitClosed(t, late)
	assert.Equal(t, 0, tk.Active())
}

func TestWatch_SlowConsumerDrops(t *testing.T) {
	t.Parallel()

	tk := ticker.New(ticker.WithInterval(time.Millisecond), ticker.WithBufferSize(1))
	defer tk.Close()

	w := tk.Watch(context.Background(), source)
	assert.Eventually(t, func() bool { return w.Dropped() > 0 }, time.Second, time.Millisecond)

	// the watch keeps running after dropping
	next(t, w)
	w.Stop()
	waitClosed(t, w)
}
