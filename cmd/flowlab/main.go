package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flowlab/flowlab/internal/circuits"
	"github.com/flowlab/flowlab/internal/config"
	"github.com/flowlab/flowlab/internal/engine"
	"github.com/flowlab/flowlab/internal/server"
	"github.com/flowlab/flowlab/internal/store"
	"github.com/flowlab/flowlab/internal/svg"
	"github.com/flowlab/flowlab/internal/tui"
)

var (
	dataDir    string
	fps        int
	count      int
	duration   float64
	addr       string
	configFile string
	preset     string
	outFile    string
	frames     int
	frameDir   string
	frameSkip  int
)

// main registers commands and flags; with no subcommand the interactive TUI
// opens with all three circuits.
func main() {
	rootCmd := &cobra.Command{
		Use:   "flowlab",
		Short: "animated current-flow analogies for the classroom",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flowlab", "data directory")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive three-panel terminal view",
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	tuiCmd.Flags().IntVar(&count, "count", 0, "entities per circuit (0 = circuit default)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "live web view over http + websocket",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	serveCmd.Flags().IntVar(&count, "count", 0, "entities per circuit (0 = circuit default)")

	recordCmd := &cobra.Command{
		Use:   "record [circuit]",
		Short: "run headless and record the rate readout",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().Float64Var(&duration, "time", 10.0, "recording duration in seconds")
	recordCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	recordCmd.Flags().IntVar(&count, "count", 0, "entity count (0 = circuit default)")
	recordCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	recordCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a recorded run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [circuit]",
		Short: "render circuit frames to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&frames, "frames", 1, "number of frames to render")
	svgCmd.Flags().StringVar(&frameDir, "dir", ".", "output directory for frame sequences")
	svgCmd.Flags().IntVar(&frameSkip, "skip", 4, "simulation steps between frames")
	svgCmd.Flags().IntVar(&count, "count", 0, "entity count (0 = circuit default)")
	svgCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	presetsCmd := &cobra.Command{
		Use:   "presets [circuit]",
		Short: "list available presets for a circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for circuit: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, serveCmd, recordCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, svgCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newEngines() []*engine.Engine {
	engines := make([]*engine.Engine, 0, 3)
	for _, c := range circuits.All() {
		engines = append(engines, engine.New(c, count, nil))
	}
	return engines
}

func runTUI(cmd *cobra.Command, args []string) error {
	m := tui.NewModel(newEngines(), fps)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(log, fps, newEngines()...)
	return srv.Run(ctx, addr)
}

// configFor resolves preset and config file for one circuit, preset first,
// file overriding it.
func configFor(circuitName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Circuit = circuitName
	if preset != "" {
		p := config.GetPreset(circuitName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(circuitName))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	circuitName := args[0]

	c, err := circuits.New(circuitName)
	if err != nil {
		return err
	}
	cfg, err := configFor(circuitName)
	if err != nil {
		return err
	}
	if err := cfg.Apply(c); err != nil {
		return err
	}
	if count == 0 && cfg.Count > 0 {
		count = cfg.Count
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	e := engine.New(c, count, nil)
	e.SetMeasuring(true)

	fmt.Printf("recording %s for %.1fs at %d fps...\n", circuitName, duration, fps)
	start := time.Now()

	samples := make([]store.Sample, 0, int(duration*float64(fps)))
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for now := range ticker.C {
		elapsed := now.Sub(start).Seconds()
		if elapsed > duration {
			break
		}
		e.Step()
		samples = append(samples, store.Sample{T: elapsed, Rate: e.Rate()})
	}

	runID, err := st.Save(circuitName, c.RateUnit(), fps, duration, len(e.Entities()), c.GetParams(), samples)
	if err != nil {
		return err
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(samples))
	fmt.Printf("mean rate: %.3f %s\n", meta.MeanRate, meta.RateUnit)
	fmt.Printf("peak rate: %.3f %s\n", meta.PeakRate, meta.RateUnit)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCIRCUIT\tTIME\tDURATION\tFPS\tMEAN\tPEAK")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%.3f\t%.3f\n",
			run.ID,
			run.Circuit,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FPS,
			run.MeanRate,
			run.PeakRate,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("circuit: %s\n", meta.Circuit)
	fmt.Printf("samples: %d\n\n", len(samples))

	data := make([]float64, len(samples))
	for i, sm := range samples {
		data[i] = sm.Rate
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("flow rate (%s)", meta.RateUnit)),
	)
	fmt.Println(graph)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "rate"}); err != nil {
		return err
	}
	for _, sm := range samples {
		row := []string{
			strconv.FormatFloat(sm.T, 'f', 3, 64),
			strconv.FormatFloat(sm.Rate, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	circuitName := args[0]

	c, err := circuits.New(circuitName)
	if err != nil {
		return err
	}
	if preset != "" {
		cfg := config.GetPreset(circuitName, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(circuitName))
		}
		if err := cfg.Apply(c); err != nil {
			return err
		}
	}

	e := engine.New(c, count, nil)

	if frames <= 1 {
		doc := svg.Render(c, e.Frame())
		if outFile == "" {
			fmt.Println(doc)
			return nil
		}
		return os.WriteFile(outFile, []byte(doc), 0644)
	}

	if err := os.MkdirAll(frameDir, 0755); err != nil {
		return err
	}
	for i := 0; i < frames; i++ {
		doc := svg.Render(c, e.Frame())
		name := filepath.Join(frameDir, fmt.Sprintf("%s_%03d.svg", circuitName, i))
		if err := os.WriteFile(name, []byte(doc), 0644); err != nil {
			return err
		}
		for s := 0; s < frameSkip; s++ {
			e.Step()
		}
	}
	fmt.Printf("wrote %d frames to %s\n", frames, frameDir)
	return nil
}
