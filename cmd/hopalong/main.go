package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/hopalong/internal/analysis"
	"github.com/san-kum/hopalong/internal/config"
	"github.com/san-kum/hopalong/internal/export"
	"github.com/san-kum/hopalong/internal/hopalong"
	"github.com/san-kum/hopalong/internal/sim"
	"github.com/san-kum/hopalong/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	themeName  string
	logFile    string
	seed       uint64
	niters     int
	nhist      int
	nreset     int
	fps        float64
	alpha      float64
	minVal     float64
	maxVal     float64
	paramA     float64
	paramB     float64
	paramC     float64
	// live view
	recordFile string
	// presets
	saveFile string
	// export
	frames  int
	outFile string
	width   int
	height  int
	// analyze
	analyzeIters int
	sweepParam   string
	sweepFrom    float64
	sweepTo      float64
	sweepSteps   int
	// search
	draws       int
	gridSize    int
	topN        int
	searchIters int
)

// main registers the commands and runs the live view when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "hopalong",
		Short: "hopalong attractor generator",
		Long: "Draws hopalong attractors with fading trails.\n\n" +
			"Parameters are drawn at random every --nreset frames. Small values such as\n" +
			"--nreset 1 are very chaotic, larger ones such as 10 let the structure settle.",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&niters, "niters", sim.DefaultIters, "points generated per frame")
	pf.IntVar(&nhist, "nhist", sim.DefaultHist, "frames of trail to keep (0 disables)")
	pf.IntVar(&nreset, "nreset", sim.DefaultReset, "frames between parameter draws (0 disables)")
	pf.Float64Var(&fps, "fps", sim.DefaultFPS, "frames per second")
	pf.Float64Var(&alpha, "alpha", sim.DefaultAlpha, "opacity of the newest batch")
	pf.Float64Var(&minVal, "min", hopalong.DefaultMin, "lower bound for random parameters")
	pf.Float64Var(&maxVal, "max", hopalong.DefaultMax, "upper bound for random parameters")
	pf.Float64Var(&paramA, "a", 0, "initial parameter a (random if unset)")
	pf.Float64Var(&paramB, "b", 0, "initial parameter b (random if unset)")
	pf.Float64Var(&paramC, "c", 0, "initial parameter c (random if unset)")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 uses the runtime-seeded global source)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&themeName, "theme", "plasma", "color theme")
	rootCmd.MarkFlagsRequiredTogether("a", "b", "c")

	rootCmd.Flags().StringVar(&logFile, "log", "", "write diagnostics to this file")
	rootCmd.Flags().StringVar(&recordFile, "record", "", "save the session as a GIF")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&saveFile, "save", "", "write the resolved configuration to this file instead")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "attractor diagnostics for the initial parameters",
		Args:  cobra.NoArgs,
		RunE:  analyzeParams,
	}
	analyzeCmd.Flags().IntVar(&analyzeIters, "iters", 10000, "orbit length")
	analyzeCmd.Flags().StringVar(&sweepParam, "sweep", "", "sweep parameter a, b or c")
	analyzeCmd.Flags().Float64Var(&sweepFrom, "from", -10, "sweep start")
	analyzeCmd.Flags().Float64Var(&sweepTo, "to", 10, "sweep end")
	analyzeCmd.Flags().IntVar(&sweepSteps, "steps", 80, "sweep steps")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "search for bounded chaotic parameter sets",
		Args:  cobra.NoArgs,
		RunE:  searchParams,
	}
	searchCmd.Flags().IntVar(&draws, "draws", 64, "random parameter sets to evaluate")
	searchCmd.Flags().IntVar(&gridSize, "grid", 0, "evaluate a grid with this many values per parameter instead")
	searchCmd.Flags().IntVar(&topN, "top", 10, "candidates to print")
	searchCmd.Flags().IntVar(&searchIters, "iters", 2000, "orbit length per candidate")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "render frames to a picture",
	}
	exportCmd.PersistentFlags().IntVar(&frames, "frames", 50, "frames to run before exporting")
	exportCmd.PersistentFlags().StringVar(&outFile, "out", "", "output file (default hopalong.<format>)")
	exportCmd.PersistentFlags().IntVar(&width, "width", 800, "image width in pixels")
	exportCmd.PersistentFlags().IntVar(&height, "height", 800, "image height in pixels")
	for _, format := range []string{"svg", "png", "gif"} {
		exportCmd.AddCommand(&cobra.Command{
			Use:   format,
			Short: "export as " + format,
			Args:  cobra.NoArgs,
			RunE:  exportFrames(format),
		})
	}

	rootCmd.AddCommand(presetsCmd, analyzeCmd, searchCmd, exportCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var (
			loaded *config.Config
			err    error
		)
		if preset == "" {
			loaded, err = config.Load(configFile)
		} else {
			loaded, err = config.LoadOver(configFile, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("niters") {
		cfg.Iters = niters
	}
	if flags.Changed("nhist") {
		cfg.Hist = nhist
	}
	if flags.Changed("nreset") {
		cfg.Reset = nreset
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("alpha") {
		cfg.Alpha = alpha
	}
	if flags.Changed("min") {
		cfg.MinVal = minVal
	}
	if flags.Changed("max") {
		cfg.MaxVal = maxVal
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("a") {
		cfg.Params = &config.ParamsConfig{A: paramA, B: paramB, C: paramC}
	}

	if err := cfg.SimConfig().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup resolves the configuration and draws the initial parameters.
func setup(cmd *cobra.Command) (*config.Config, hopalong.Params, *hopalong.Randomizer, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, hopalong.Params{}, nil, err
	}
	rnd := cfg.Randomizer()
	prm, err := cfg.InitialParams(rnd)
	if err != nil {
		return nil, hopalong.Params{}, nil, err
	}
	return cfg, prm, rnd, nil
}

func banner(cfg *config.Config, th viz.Theme, prm hopalong.Params) string {
	return viz.Banner(th, "hopalong", [][2]string{
		{"n_iters", strconv.Itoa(cfg.Iters)},
		{"n_hist", strconv.Itoa(cfg.Hist)},
		{"n_reset", strconv.Itoa(cfg.Reset)},
		{"fps", strconv.FormatFloat(cfg.FPS, 'g', -1, 64)},
		{"alpha", strconv.FormatFloat(cfg.Alpha, 'g', -1, 64)},
		{"params", prm.String()},
	})
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, prm, rnd, err := setup(cmd)
	if err != nil {
		return err
	}

	if logFile != "" {
		f, err := tea.LogToFile(logFile, "hopalong")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	th := viz.GetTheme(cfg.Theme)
	fmt.Print(banner(cfg, th, prm))
	log.Printf("starting with %s", prm)

	r := viz.NewCanvasRenderer(viz.DefaultWidth, viz.DefaultHeight)
	loop, err := sim.New(cfg.SimConfig(), prm, r, rnd)
	if err != nil {
		return err
	}

	var rec *viz.Recorder
	if recordFile != "" {
		rec = viz.NewRecorder(th, 1/cfg.Alpha, cfg.FPS)
	}

	m := viz.NewModel(loop, r, th, rec)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	if rec != nil && rec.Len() > 0 {
		if err := writeGIF(recordFile, rec); err != nil {
			return err
		}
		fmt.Printf("saved %d frames to %s\n", rec.Len(), recordFile)
	}
	return m.Err()
}

func listPresets(cmd *cobra.Command, args []string) error {
	if saveFile != "" {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if err := config.Save(saveFile, cfg); err != nil {
			return err
		}
		fmt.Printf("saved configuration to %s\n", saveFile)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tNITERS\tNHIST\tNRESET\tFPS\tALPHA\tTHEME\tPARAMS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		params := "random"
		if p.Params != nil {
			params = fmt.Sprintf("%g, %g, %g", p.Params.A, p.Params.B, p.Params.C)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%g\t%g\t%s\t%s\n",
			name, p.Iters, p.Hist, p.Reset, p.FPS, p.Alpha, p.Theme, params)
	}
	return w.Flush()
}

func analyzeParams(cmd *cobra.Command, args []string) error {
	_, prm, _, err := setup(cmd)
	if err != nil {
		return err
	}

	orbit, err := hopalong.Generate(hopalong.Origin, prm, analyzeIters)
	if err != nil {
		return err
	}
	b := analysis.ComputeBounds(orbit, 0.01)
	lyap := analysis.LyapunovExponent(prm, hopalong.Origin, analyzeIters, 1e-9)

	fmt.Printf("params: %s\n", prm)
	fmt.Printf("points: %d (%d finite, %d diverged)\n", b.Total, b.Finite, analysis.Divergence(orbit))
	if !b.Empty() {
		fmt.Printf("x: [%.4f, %.4f]  1%%-99%%: [%.4f, %.4f]\n", b.MinX, b.MaxX, b.LoX, b.HiX)
		fmt.Printf("y: [%.4f, %.4f]  1%%-99%%: [%.4f, %.4f]\n", b.MinY, b.MaxY, b.LoY, b.HiY)
	}
	fmt.Printf("lyapunov exponent: %.6f", lyap)
	if lyap > 0.01 {
		fmt.Println(" (chaotic)")
	} else {
		fmt.Println()
	}
	fmt.Println()

	xs, ys := finitePrefix(orbit, 400)
	if len(xs) > 1 {
		fmt.Println(asciigraph.Plot(xs, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("x vs iteration")))
		fmt.Println()
		fmt.Println(asciigraph.Plot(ys, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("y vs iteration")))
		fmt.Println()
	}

	xs, _ = finitePrefix(orbit, len(orbit))
	if ps := analysis.PowerSpectrum(xs); len(ps) > 1 {
		fmt.Println(asciigraph.Plot(ps, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("power spectrum (x)")))
		if period := analysis.DominantPeriod(ps, len(xs)); period > 0 {
			fmt.Printf("dominant period: %.2f iterations\n", period)
		}
		fmt.Println()
	}

	if sweepParam == "" {
		return nil
	}
	sweep := analysis.BifurcationDiagram(prm, sweepParam, sweepFrom, sweepTo, sweepSteps, 200, 2000)
	if sweep == nil {
		return fmt.Errorf("unknown sweep parameter: %s (use a, b or c)", sweepParam)
	}
	spread := make([]float64, len(sweep))
	exps := make([]float64, len(sweep))
	for i, pt := range sweep {
		spread[i] = finiteOr(pt.Spread, 0)
		exps[i] = finiteOr(pt.Lyapunov, 0)
	}
	fmt.Println(viz.Separator(80))
	fmt.Printf("sweep %s over [%g, %g], %d steps\n\n", sweepParam, sweepFrom, sweepTo, len(sweep))
	fmt.Println(asciigraph.Plot(spread, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("orbit radius spread")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(exps, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("lyapunov exponent")))
	return nil
}

func searchParams(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	var found []analysis.Candidate
	if gridSize > 0 {
		fmt.Printf("grid search: %d values per parameter in [%g, %g]\n", gridSize, cfg.MinVal, cfg.MaxVal)
		best, err := analysis.NewGridSearch(cfg.MinVal, cfg.MaxVal, gridSize).Search(cmd.Context(), searchIters)
		if errors.Is(err, analysis.ErrNoCandidate) {
			fmt.Println("every grid point diverged")
			return nil
		}
		if err != nil {
			return err
		}
		found = []analysis.Candidate{best}
	} else {
		seedStart := cfg.Seed
		if seedStart == 0 {
			seedStart = uint64(time.Now().UnixNano())
		}
		fmt.Printf("ensemble: %d draws in [%g, %g], seeds from %d\n", draws, cfg.MinVal, cfg.MaxVal, seedStart)
		found, err = analysis.Ensemble(cmd.Context(), draws, seedStart, cfg.MinVal, cfg.MaxVal, searchIters)
		if err != nil {
			return err
		}
	}
	fmt.Printf("completed in %v\n\n", time.Since(start).Round(time.Millisecond))

	if len(found) > topN {
		found = found[:topN]
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "A\tB\tC\tLYAPUNOV\tAREA\tDIVERGED")
	for _, c := range found {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.2f\t%d\n",
			c.Params.A, c.Params.B, c.Params.C, c.Lyapunov, c.Area, c.Diverged)
	}
	return w.Flush()
}

func finitePrefix(b hopalong.Batch, n int) ([]float64, []float64) {
	if len(b) > n {
		b = b[:n]
	}
	xs := make([]float64, 0, len(b))
	ys := make([]float64, 0, len(b))
	for _, p := range b {
		if !p.IsFinite() {
			break
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	return xs, ys
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// exportFrames runs the loop headlessly for --frames frames and writes the
// last one in format.
func exportFrames(format string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if frames < 1 {
			return fmt.Errorf("--frames must be at least 1, got %d", frames)
		}
		cfg, prm, rnd, err := setup(cmd)
		if err != nil {
			return err
		}
		th := viz.GetTheme(cfg.Theme)
		out := outFile
		if out == "" {
			out = "hopalong." + format
		}

		capture := &export.Capture{}
		var (
			r   sim.Renderer = capture
			rec *viz.Recorder
		)
		if format == "gif" {
			cr := viz.NewCanvasRenderer(width/8, height/16)
			rec = viz.NewRecorder(th, 1/cfg.Alpha, cfg.FPS)
			cr.OnPresent(rec.Capture)
			r = cr
		}

		loop, err := sim.New(cfg.SimConfig(), prm, r, rnd)
		if err != nil {
			return err
		}
		loop.SetSleep(func(time.Duration) {})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		loop.AddObserver(sim.ObserverFunc(func(info sim.FrameInfo) {
			if info.Frame >= frames {
				cancel()
			}
		}))

		start := time.Now()
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if n := loop.State().Frame; n < frames {
			return fmt.Errorf("interrupted after %d of %d frames", n, frames)
		}

		switch format {
		case "svg":
			err = os.WriteFile(out, []byte(export.BatchesToSVG(capture.Layers(), width, height, th)), 0644)
		case "png":
			err = writePNG(out, export.BatchesToPNG(capture.Layers(), width, height, th))
		case "gif":
			err = writeGIF(out, rec)
		}
		if err != nil {
			return err
		}

		fmt.Printf("rendered %d frames in %v\n", frames, time.Since(start).Round(time.Millisecond))
		fmt.Printf("params: %s\n", loop.State().Params)
		fmt.Printf("saved to %s\n", out)
		return nil
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	return f.Close()
}

func writeGIF(path string, rec *viz.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rec.Encode(f); err != nil {
		return err
	}
	return f.Close()
}
