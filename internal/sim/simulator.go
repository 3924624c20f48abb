package sim

import (
	"context"
	"time"

	"github.com/san-kum/hopalong/internal/hopalong"
)

// Advance computes the state after one frame and the batch generated for
// it. It draws from rnd only when a reset is due; a nil rnd uses the
// process-wide source.
func Advance(st State, cfg Config, rnd *hopalong.Randomizer) (State, hopalong.Batch, error) {
	batch, err := hopalong.Generate(st.Seed, st.Params, cfg.Iters)
	if err != nil {
		return st, nil, err
	}

	next := st
	if last, ok := batch.Last(); ok {
		next.Seed = last
	}
	if cfg.Hist > 0 {
		next.History = st.History.Push(batch, cfg.Hist)
	}
	next.Frame++

	if cfg.ResetDue(next.Frame) {
		if rnd == nil {
			rnd = hopalong.NewRandomizer(nil)
		}
		prm, err := rnd.Params(cfg.MinVal, cfg.MaxVal)
		if err != nil {
			return st, nil, err
		}
		// history survives the reset
		next.Seed = hopalong.Origin
		next.Params = prm
	}

	return next, batch, nil
}

type Loop struct {
	cfg       Config
	state     State
	rnd       *hopalong.Randomizer
	renderer  Renderer
	observers []Observer
	sleep     func(time.Duration)
}

// New returns a Loop starting at the origin with parameters prm. A nil rnd
// uses the process-wide source.
func New(cfg Config, prm hopalong.Params, r Renderer, rnd *hopalong.Randomizer) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = hopalong.NewRandomizer(nil)
	}
	return &Loop{
		cfg:       cfg,
		state:     NewState(prm),
		rnd:       rnd,
		renderer:  r,
		observers: make([]Observer, 0),
		sleep:     time.Sleep,
	}, nil
}

func (l *Loop) AddObserver(o Observer)          { l.observers = append(l.observers, o) }
func (l *Loop) SetSleep(fn func(time.Duration)) { l.sleep = fn }
func (l *Loop) Config() Config                  { return l.cfg }
func (l *Loop) State() State                    { return l.state }

// Frame runs one frame: generate, draw the new batch, draw the history
// oldest to newest, trim, maybe reset, clear.
func (l *Loop) Frame() error {
	prev := l.state
	next, batch, err := Advance(prev, l.cfg, l.rnd)
	if err != nil {
		return err
	}

	if err := l.renderer.Draw(batch, l.cfg.AlphaInit); err != nil {
		return &FrameError{Frame: prev.Frame, Op: "draw", Wrapped: err}
	}
	if l.cfg.Hist > 0 {
		for rank, past := range prev.History {
			if err := l.renderer.Draw(past, l.cfg.Opacity(rank)); err != nil {
				return &FrameError{Frame: prev.Frame, Op: "draw history", Wrapped: err}
			}
		}
	}

	l.state = next

	info := FrameInfo{
		Frame:      next.Frame,
		Params:     prev.Params,
		Next:       next.Params,
		Seed:       next.Seed,
		Reset:      l.cfg.ResetDue(next.Frame),
		Points:     len(batch),
		HistoryLen: len(next.History),
	}
	for _, obs := range l.observers {
		obs.OnFrame(info)
	}

	if err := l.renderer.Clear(); err != nil {
		return &FrameError{Frame: prev.Frame, Op: "clear", Wrapped: err}
	}
	return nil
}

// Run repeats Frame every Interval until ctx is done or the renderer fails.
// Cancellation is checked once per frame, before generating.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.cfg.Interval()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := l.Frame(); err != nil {
			return err
		}
		l.sleep(interval)
	}
}
