package ticker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/totpvault/pkg/totp"
)

const (
	DefaultInterval   = time.Second
	DefaultBufferSize = 1
)

// Source identifies the account a Watch generates codes for.
type Source struct {
	AccountID string
	Params    totp.Params
}

// Update is emitted once when a Watch starts and then on every tick.
type Update struct {
	AccountID string
	Code      string
	Remaining int  // seconds left in the current window
	Rolled    bool // the window changed since the previous update
	Err       error
}

// Ticker runs per-account watches. All methods are safe for concurrent use.
type Ticker struct {
	interval   time.Duration
	now        func() time.Time
	bufferSize int

	mu      sync.Mutex
	watches map[*Watch]struct{}
	closed  bool
	wg      sync.WaitGroup
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithInterval sets the tick interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithClock sets the time source used to compute codes.
func WithClock(now func() time.Time) Option {
	return func(t *Ticker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithBufferSize sets the per-watch channel buffer. A minimum of 1 is enforced.
func WithBufferSize(n int) Option {
	return func(t *Ticker) {
		t.bufferSize = max(n, 1)
	}
}

// New creates a Ticker. Call Close to stop every watch it started.
func New(opts ...Option) *Ticker {
	t := &Ticker{
		interval:   DefaultInterval,
		now:        time.Now,
		bufferSize: DefaultBufferSize,
		watches:    make(map[*Watch]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Watch starts emitting updates for src until ctx is cancelled, Stop is
// called or the Ticker is closed. The updates channel is closed afterwards.
// Updates are dropped rather than blocking when the consumer falls behind.
// Watching on a closed Ticker returns an already stopped Watch.
func (t *Ticker) Watch(ctx context.Context, src Source) *Watch {
	w := &Watch{
		updates: make(chan Update, t.bufferSize),
		stop:    make(chan struct{}),
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		w.Stop()
		close(w.updates)
		return w
	}
	t.watches[w] = struct{}{}
	t.wg.Add(1)
	t.mu.Unlock()

	go t.run(ctx, w, src)
	return w
}

// Active reports the number of running watches.
func (t *Ticker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.watches)
}

// Close stops all watches and waits for them to exit.
// It is safe to call Close multiple times.
func (t *Ticker) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	for w := range t.watches {
		w.Stop()
	}
	t.mu.Unlock()

	t.wg.Wait()
	return nil
}

func (t *Ticker) run(ctx context.Context, w *Watch, src Source) {
	defer t.wg.Done()
	defer t.remove(w)
	defer close(w.updates)

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	p := src.Params.GetDefaults()
	var (
		code    string
		codeErr error
		last    uint64
		started bool
	)

	emit := func() {
		now := t.now()
		counter := totp.Counter(now, p.Period)
		rolled := started && counter != last
		if !started || rolled {
			code, codeErr = totp.Generate(p, now)
		}
		started = true
		last = counter

		w.send(Update{
			AccountID: src.AccountID,
			Code:      code,
			Remaining: totp.RemainingSeconds(p.Period, now),
			Rolled:    rolled,
			Err:       codeErr,
		})
	}

	emit()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-tk.C:
			emit()
		}
	}
}

func (t *Ticker) remove(w *Watch) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.watches, w)
}

// Watch is a running per-account code stream.
type Watch struct {
	updates chan Update
	stop    chan struct{}
	once    sync.Once
	dropped atomic.Int64
}

// Updates returns the update stream. It is closed when the watch ends.
func (w *Watch) Updates() <-chan Update {
	return w.updates
}

// Stop ends the watch. It is safe to call Stop multiple times.
func (w *Watch) Stop() {
	w.once.Do(func() {
		close(w.stop)
	})
}

// Dropped returns how many updates were discarded because the buffer was full.
func (w *Watch) Dropped() int64 {
	return w.dropped.Load()
}

func (w *Watch) send(u Update) {
	select {
	case w.updates <- u:
	default:
		w.dropped.Add(1)
	}
}
