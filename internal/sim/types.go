package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/hopalong/internal/hopalong"
)

const (
	DefaultIters = 1000
	DefaultHist  = 10
	DefaultReset = 10
	DefaultAlpha = 0.3
	DefaultFPS   = 25.0
)

// MinFPS is the lowest frame rate whose interval fits in a time.Duration.
const MinFPS = float64(time.Second) / math.MaxInt64

type Config struct {
	Iters     int
	Hist      int
	Reset     int
	AlphaInit float64
	FPS       float64
	MinVal    float64
	MaxVal    float64
}

func DefaultConfig() Config {
	return Config{
		Iters:     DefaultIters,
		Hist:      DefaultHist,
		Reset:     DefaultReset,
		AlphaInit: DefaultAlpha,
		FPS:       DefaultFPS,
		MinVal:    hopalong.DefaultMin,
		MaxVal:    hopalong.DefaultMax,
	}
}

func (c Config) Validate() error {
	if c.Iters < 0 {
		return fmt.Errorf("%w: niters must be non-negative, got %d", hopalong.ErrInvalidArgument, c.Iters)
	}
	if c.Hist < 0 {
		return fmt.Errorf("%w: nhist must be non-negative, got %d", hopalong.ErrInvalidArgument, c.Hist)
	}
	if c.Reset < 0 {
		return fmt.Errorf("%w: nreset must be non-negative, got %d", hopalong.ErrInvalidArgument, c.Reset)
	}
	if !(c.FPS >= MinFPS) || math.IsInf(c.FPS, 0) {
		return fmt.Errorf("%w: fps must be at least %g, got %v", hopalong.ErrInvalidArgument, MinFPS, c.FPS)
	}
	if !(c.AlphaInit > 0 && c.AlphaInit <= 1) {
		return fmt.Errorf("%w: alpha must be in (0, 1], got %v", hopalong.ErrInvalidArgument, c.AlphaInit)
	}
	if !(c.MinVal <= c.MaxVal) {
		return fmt.Errorf("%w: min_val %v must not exceed max_val %v", hopalong.ErrInvalidArgument, c.MinVal, c.MaxVal)
	}
	return nil
}

// Interval is the delay between frames, 1/FPS seconds, capped at the
// longest time.Duration.
func (c Config) Interval() time.Duration {
	d := float64(time.Second) / c.FPS
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// ResetDue reports whether parameters are redrawn once frame frames have
// completed.
func (c Config) ResetDue(frame int) bool {
	return c.Reset > 0 && frame%c.Reset == 0
}

// Opacity returns the draw opacity of the history entry at rank, counted
// from 0 at the oldest retained batch.
func (c Config) Opacity(rank int) float64 {
	return float64(rank+1) / float64(c.Hist) * c.AlphaInit
}

// History is a bounded FIFO of past batches, oldest first. Batches in a
// History are never mutated.
type History []hopalong.Batch

// Push returns a new History with b appended and only the last n entries
// kept. The receiver is left untouched.
func (h History) Push(b hopalong.Batch, n int) History {
	if n <= 0 {
		return nil
	}
	start := len(h) + 1 - n
	if start < 0 {
		start = 0
	}
	next := make(History, 0, n)
	next = append(next, h[start:]...)
	return append(next, b)
}

// State is everything the loop carries from one frame to the next.
type State struct {
	Seed    hopalong.Point
	Params  hopalong.Params
	Frame   int
	History History
}

func NewState(prm hopalong.Params) State {
	return State{Seed: hopalong.Origin, Params: prm}
}

// Renderer draws batches. Implementations map point index to color. The
// loop never mutates a batch after passing it to Draw.
type Renderer interface {
	Draw(points hopalong.Batch, opacity float64) error
	Clear() error
}

// FrameInfo describes a completed frame.
type FrameInfo struct {
	Frame      int
	Params     hopalong.Params
	Next       hopalong.Params
	Seed       hopalong.Point
	Reset      bool
	Points     int
	HistoryLen int
}

type Observer interface {
	OnFrame(info FrameInfo)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(FrameInfo)

func (f ObserverFunc) OnFrame(info FrameInfo) { f(info) }
