// Package ticker streams live codes for displayed accounts.
//
// Each Watch runs one goroutine with its own time.Ticker. It emits an Update
// right away and then on every tick: the current code, the seconds left in
// the window and whether the window rolled over since the previous update.
// The code is only regenerated on rollover.
//
//	t := ticker.New(ticker.WithInterval(time.Second))
//	defer t.Close()
//
//	w := t.Watch(ctx, ticker.Source{AccountID: acc.ID, Params: acc.Params()})
//	for u := range w.Updates() {
//	    fmt.Printf("%s %2ds\n", u.Code, u.Remaining)
//	}
//
// A watch ends when its context is cancelled, Stop is called or the Ticker is
// closed. Slow consumers miss updates instead of blocking the watch.
package ticker
