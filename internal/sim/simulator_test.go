package sim

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hopalong/internal/hopalong"
)

type drawCall struct {
	points  hopalong.Batch
	opacity float64
}

// recorder keeps every call grouped by frame.
type recorder struct {
	frames  [][]drawCall
	current []drawCall
	clears  int
	failAt  int
	failErr error
}

func (r *recorder) Draw(points hopalong.Batch, opacity float64) error {
	if r.failErr != nil && len(r.frames) == r.failAt {
		return r.failErr
	}
	r.current = append(r.current, drawCall{points: points.Clone(), opacity: opacity})
	return nil
}

func (r *recorder) Clear() error {
	r.frames = append(r.frames, r.current)
	r.current = nil
	r.clears++
	return nil
}

var _ = Describe("Loop", func() {
	var (
		cfg  Config
		prm  hopalong.Params
		rec  *recorder
		loop *Loop
	)

	BeforeEach(func() {
		cfg = DefaultConfig()
		cfg.Iters = 25
		cfg.Hist = 4
		cfg.Reset = 0
		prm = hopalong.Params{A: 2.1, B: -3.4, C: 5.6}
		rec = &recorder{}
	})

	JustBeforeEach(func() {
		var err error
		loop, err = New(cfg, prm, rec, hopalong.NewSeededRandomizer(11))
		Expect(err).NotTo(HaveOccurred())
		loop.SetSleep(func(time.Duration) {})
	})

	runFrames := func(n int) {
		for i := 0; i < n; i++ {
			Expect(loop.Frame()).To(Succeed())
		}
	}

	It("starts at the origin", func() {
		st := loop.State()
		Expect(st.Seed).To(Equal(hopalong.Origin))
		Expect(st.Params).To(Equal(prm))
		Expect(st.Frame).To(BeZero())
		Expect(st.History).To(BeEmpty())
	})

	It("rejects an invalid configuration", func() {
		bad := cfg
		bad.Iters = -1
		_, err := New(bad, prm, rec, nil)
		Expect(errors.Is(err, hopalong.ErrInvalidArgument)).To(BeTrue())
	})

	It("draws the new batch first at full opacity", func() {
		runFrames(1)
		Expect(rec.frames).To(HaveLen(1))
		Expect(rec.frames[0]).To(HaveLen(1))

		want, _ := hopalong.Generate(hopalong.Origin, prm, cfg.Iters)
		Expect(rec.frames[0][0].points).To(Equal(want))
		Expect(rec.frames[0][0].opacity).To(Equal(cfg.AlphaInit))
	})

	It("continues the trajectory across frames", func() {
		runFrames(3)
		whole, _ := hopalong.Generate(hopalong.Origin, prm, 3*cfg.Iters)
		var joined hopalong.Batch
		for _, f := range rec.frames {
			joined = append(joined, f[0].points...)
		}
		Expect(joined).To(Equal(whole))

		last, _ := whole.Last()
		Expect(loop.State().Seed).To(Equal(last))
	})

	It("draws history oldest to newest with rising opacity", func() {
		runFrames(6)
		calls := rec.frames[5]
		Expect(calls).To(HaveLen(1 + cfg.Hist))

		history := calls[1:]
		Expect(history[0].points).To(Equal(rec.frames[1][0].points))
		Expect(history[cfg.Hist-1].points).To(Equal(rec.frames[4][0].points))

		Expect(history[0].opacity).To(BeNumerically("<=", cfg.AlphaInit/float64(cfg.Hist)))
		for i := 1; i < len(history); i++ {
			Expect(history[i].opacity).To(BeNumerically(">", history[i-1].opacity))
			Expect(history[i].opacity).To(BeNumerically("<=", cfg.AlphaInit))
		}
	})

	It("never keeps more than nhist batches", func() {
		for i := 0; i < 20; i++ {
			runFrames(1)
			Expect(len(loop.State().History)).To(BeNumerically("<=", cfg.Hist))
		}
		Expect(loop.State().History).To(HaveLen(cfg.Hist))
	})

	It("clears once per frame", func() {
		runFrames(7)
		Expect(rec.clears).To(Equal(7))
		Expect(loop.State().Frame).To(Equal(7))
	})

	It("keeps parameters fixed when resets are disabled", func() {
		runFrames(50)
		Expect(loop.State().Params).To(Equal(prm))
	})

	Context("with history disabled", func() {
		BeforeEach(func() { cfg.Hist = 0 })

		It("draws only the new batch", func() {
			runFrames(5)
			for _, f := range rec.frames {
				Expect(f).To(HaveLen(1))
			}
			Expect(loop.State().History).To(BeEmpty())
		})
	})

	Context("with zero iterations", func() {
		BeforeEach(func() { cfg.Iters = 0 })

		It("leaves the seed unchanged", func() {
			runFrames(3)
			Expect(loop.State().Seed).To(Equal(hopalong.Origin))
			Expect(rec.frames[0][0].points).To(BeEmpty())
		})
	})

	Context("with resets every 3 frames", func() {
		BeforeEach(func() { cfg.Reset = 3 })

		It("redraws parameters exactly every third frame and restarts at the origin", func() {
			var infos []FrameInfo
			loop.AddObserver(ObserverFunc(func(info FrameInfo) { infos = append(infos, info) }))

			current := prm
			for frame := 1; frame <= 12; frame++ {
				runFrames(1)
				st := loop.State()
				if frame%3 == 0 {
					Expect(st.Params).NotTo(Equal(current))
					Expect(st.Seed).To(Equal(hopalong.Origin))
					Expect(infos[frame-1].Reset).To(BeTrue())
					current = st.Params
				} else {
					Expect(st.Params).To(Equal(current))
					Expect(infos[frame-1].Reset).To(BeFalse())
				}
			}
		})

		It("keeps pre-reset trails in the history", func() {
			runFrames(4)
			firstBatch := rec.frames[0][0].points
			Expect(loop.State().History[0]).To(Equal(firstBatch))
		})

		It("generates the first post-reset batch from the origin", func() {
			runFrames(4)
			st := loop.State()
			post := rec.frames[3][0].points
			want, _ := hopalong.Generate(hopalong.Origin, st.Params, cfg.Iters)
			Expect(post).To(Equal(want))
		})
	})

	Context("when the renderer fails", func() {
		var cause error

		BeforeEach(func() {
			cause = errors.New("window closed")
			rec.failAt = 2
			rec.failErr = cause
		})

		It("returns a frame error and stops", func() {
			runFrames(2)
			err := loop.Frame()
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, ErrRenderer)).To(BeTrue())
			Expect(errors.Is(err, cause)).To(BeTrue())

			var fe *FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(2))
			Expect(loop.State().Frame).To(Equal(2))
		})

		It("ends Run with the same error", func() {
			err := loop.Run(context.Background())
			Expect(errors.Is(err, cause)).To(BeTrue())
			Expect(rec.clears).To(Equal(2))
		})
	})

	Describe("Run", func() {
		It("stops when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			sleeps := 0
			loop.SetSleep(func(d time.Duration) {
				Expect(d).To(Equal(cfg.Interval()))
				sleeps++
				if sleeps == 5 {
					cancel()
				}
			})

			err := loop.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(loop.State().Frame).To(Equal(5))
		})

		It("does not start a frame on an already canceled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(loop.Run(ctx)).To(MatchError(context.Canceled))
			Expect(rec.clears).To(BeZero())
		})
	})
})
