package planner

import (
	"context"
	"sync"
	"time"

	"github.com/mrz1836/horizon/internal/constants"
)

// Autosaver debounces flushes of the open roadmap: each Notify arms (or
// re-arms) a timer, so a burst of mutations collapses into a single write
// once the burst goes quiet. Close stops the loop and performs a final
// flush of any pending changes.
type Autosaver struct {
	svc   *Service
	delay time.Duration

	notify chan struct{}
	done   chan struct{}
	idle   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewAutosaver starts the debounce loop. A non-positive delay falls back
// to the default.
func NewAutosaver(svc *Service, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = constants.DefaultAutosaveDelay
	}

	a := &Autosaver{
		svc:    svc,
		delay:  delay,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
		idle:   make(chan struct{}),
	}

	go a.run()

	return a
}

// Notify signals that the roadmap changed and a save should happen after
// the quiet period. Never blocks; coalesces with a pending signal.
func (a *Autosaver) Notify() {
	select {
	case a.notify <- struct{}{}:
	default:
	}
}

// Close stops the loop, flushes any pending changes, and returns the
// final flush error, if any. Safe to call more than once.
func (a *Autosaver) Close() error {
	a.closeOnce.Do(func() {
		close(a.done)
		<-a.idle
	})

	return a.closeErr
}

func (a *Autosaver) run() {
	defer close(a.idle)

	timer := time.NewTimer(a.delay)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	disarm := func() {
		if armed && !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		armed = false
	}

	for {
		select {
		case <-a.notify:
			disarm()
			timer.Reset(a.delay)
			armed = true
		case <-timer.C:
			armed = false
			a.flush()
		case <-a.done:
			disarm()
			a.closeErr = a.flush()

			return
		}
	}
}

// flush writes the roadmap when there are unsaved changes. An in-flight
// save is never cancelled; the loop simply serializes the next one
// behind it.
func (a *Autosaver) flush() error {
	if !a.svc.sess.Dirty() {
		return nil
	}

	if err := a.svc.Flush(context.Background()); err != nil {
		a.svc.logger.Error().Err(err).Msg("autosave failed")

		return err
	}

	return nil
}
