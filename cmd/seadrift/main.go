package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/seadrift/internal/analysis"
	"github.com/san-kum/seadrift/internal/config"
	"github.com/san-kum/seadrift/internal/drift"
	"github.com/san-kum/seadrift/internal/field"
	"github.com/san-kum/seadrift/internal/metrics"
	"github.com/san-kum/seadrift/internal/optim"
	"github.com/san-kum/seadrift/internal/scenario"
	"github.com/san-kum/seadrift/internal/store"
	"github.com/san-kum/seadrift/internal/viz"
)

var (
	dataDir string
	verbose bool

	// release and physics flags shared by run, live and sweep
	flagLat         float64
	flagLon         float64
	flagHours       float64
	flagParticles   int
	flagWindage     float64
	flagDiffusivity float64
	flagBackward    bool
	flagSeed        int64
	flagTimeIndex   int
	flagPreset      string
	flagConfig      string
	flagCurrent     string
	flagWind        string

	runEstimate bool

	curRows   int
	curCols   int
	curAt     float64
	curFormat string

	exportFormat string
	exportCloud  bool

	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepSteps  int
	sweepFormat string

	locObsLat    float64
	locObsLon    float64
	locHours     float64
	locWindage   float64
	locSeed      int64
	locTimeIndex int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seadrift",
		Short: "sea surface drift simulation lab",
		Run: func(cmd *cobra.Command, args []string) {
			if err := viz.RunInteractive(); err != nil {
				fmt.Println("error:", err)
				os.Exit(1)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".seadrift", "directory for saved runs and .nc datasets")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a drift simulation and save the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDrift,
	}
	addRequestFlags(runCmd)
	runCmd.Flags().BoolVar(&runEstimate, "estimate", false, "fit effective diffusivity from variance growth")

	currentsCmd := &cobra.Command{
		Use:   "currents [model]",
		Short: "sample the surface current field on a coarse grid",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showCurrents,
	}
	currentsCmd.Flags().IntVar(&curRows, "rows", 8, "grid rows")
	currentsCmd.Flags().IntVar(&curCols, "cols", 10, "grid columns")
	currentsCmd.Flags().Float64Var(&curAt, "at", 0, "sample time, hours from release")
	currentsCmd.Flags().IntVar(&flagTimeIndex, "time-index", 0, "dataset time slice")
	currentsCmd.Flags().StringVar(&curFormat, "format", "table", "table, json or csv")
	currentsCmd.Flags().StringVar(&flagCurrent, "current", "", "NetCDF current dataset (u, v)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved track as ASCII graphs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "write a saved run to stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "json, geojson or csv")
	exportCmd.Flags().BoolVar(&exportCloud, "cloud", false, "export the particle cloud instead of the track")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "watch a drift run in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRequestFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark stepping throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list named presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a yaml scenario",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "sweep one parameter and tabulate the outcomes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRequestFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "windage", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.05, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().StringVar(&sweepFormat, "format", "table", "table or csv")

	locateCmd := &cobra.Command{
		Use:   "locate [model]",
		Short: "estimate the release point behind an observed position",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLocate,
	}
	locateCmd.Flags().Float64Var(&locObsLat, "obs-lat", 0, "observed latitude")
	locateCmd.Flags().Float64Var(&locObsLon, "obs-lon", 0, "observed longitude")
	locateCmd.Flags().Float64Var(&locHours, "hours", drift.DefaultHours, "drift window in hours")
	locateCmd.Flags().Float64Var(&locWindage, "windage", drift.DefaultWindage, "wind drift factor")
	locateCmd.Flags().Int64Var(&locSeed, "seed", 1, "random seed for the candidate runs")
	locateCmd.Flags().IntVar(&locTimeIndex, "time-index", 0, "dataset time slice")
	locateCmd.Flags().StringVar(&flagCurrent, "current", "", "NetCDF current dataset (u, v)")
	locateCmd.Flags().StringVar(&flagWind, "wind", "", "NetCDF wind dataset (u10, v10)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive preset picker and live view",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.AddCommand(runCmd, currentsCmd, listCmd, plotCmd, exportCmd,
		liveCmd, benchCmd, presetsCmd, batchCmd, sweepCmd, locateCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRequestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&flagLat, "lat", drift.DefaultLat, "release latitude")
	f.Float64Var(&flagLon, "lon", drift.DefaultLon, "release longitude")
	f.Float64Var(&flagHours, "hours", drift.DefaultHours, "simulation horizon in hours")
	f.IntVar(&flagParticles, "particles", drift.DefaultParticles, "ensemble size")
	f.Float64Var(&flagWindage, "windage", drift.DefaultWindage, "wind drift factor")
	f.Float64Var(&flagDiffusivity, "diffusivity", drift.DefaultDiffusivity, "eddy diffusivity, m^2/s")
	f.BoolVar(&flagBackward, "backward", false, "integrate backward in time")
	f.Int64Var(&flagSeed, "seed", 0, "random seed, 0 draws from the wall clock")
	f.IntVar(&flagTimeIndex, "time-index", 0, "dataset time slice")
	f.StringVar(&flagPreset, "preset", "", "named preset")
	f.StringVar(&flagConfig, "config", "", "yaml config file")
	f.StringVar(&flagCurrent, "current", "", "NetCDF current dataset (u, v)")
	f.StringVar(&flagWind, "wind", "", "NetCDF wind dataset (u10, v10)")
}

// loadConfig resolves the effective configuration. Flags override the
// config file, which overrides the preset, which overrides defaults.
func loadConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flagPreset != "" {
		name := model
		if name == "" {
			name = cfg.Model
		}
		p := config.GetPreset(name, flagPreset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (available: %v)",
				flagPreset, name, config.ListPresets(name))
		}
		cfg = p
	}
	if flagConfig != "" {
		c, err := config.Load(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if model != "" {
		cfg.Model = model
	}

	f := cmd.Flags()
	if f.Changed("lat") {
		cfg.Lat = flagLat
	}
	if f.Changed("lon") {
		cfg.Lon = flagLon
	}
	if f.Changed("hours") {
		cfg.Hours = flagHours
	}
	if f.Changed("particles") {
		cfg.Particles = flagParticles
	}
	if f.Changed("windage") {
		cfg.Windage = flagWindage
	}
	if f.Changed("diffusivity") {
		cfg.Diffusivity = flagDiffusivity
	}
	if f.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if f.Changed("time-index") {
		cfg.TimeIndex = flagTimeIndex
	}
	if flagBackward {
		cfg.Direction = "backward"
	}
	if f.Changed("current") {
		cfg.Data.CurrentFile = flagCurrent
	}
	if f.Changed("wind") {
		cfg.Data.WindFile = flagWind
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openProvider builds the synthetic model and provider for cfg and
// loads any datasets. Dataset paths fall back to the conventional
// files under the data directory; a failed load keeps the synthetic
// model, it never aborts the command.
func openProvider(cfg *config.Config, log *slog.Logger) (field.Model, *field.Provider, error) {
	dom := cfg.DomainBox()
	fld, err := field.NewModel(cfg.Model, dom)
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.Params) > 0 {
		tun, ok := fld.(field.Tunable)
		if !ok {
			return nil, nil, fmt.Errorf("model %q takes no parameters", cfg.Model)
		}
		for k, v := range cfg.Params {
			if err := tun.SetParam(k, v); err != nil {
				return nil, nil, err
			}
		}
	}

	provider := field.NewProvider(dom, fld, log)
	cfg.Data.CurrentFile = datasetPath(cfg.Data.CurrentFile, "ecco_uv_surface.nc")
	if cfg.Data.CurrentFile != "" {
		_ = provider.LoadCurrent(cfg.Data.CurrentFile)
	}
	cfg.Data.WindFile = datasetPath(cfg.Data.WindFile, "merra2_wind10m.nc")
	if cfg.Data.WindFile != "" {
		_ = provider.LoadWind(cfg.Data.WindFile)
	}
	return fld, provider, nil
}

// datasetPath resolves an explicit dataset path, falling back to the
// conventional file name under the data directory when one exists.
func datasetPath(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	p := filepath.Join(dataDir, name)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func sourceName(loaded bool, path, model string) string {
	if loaded {
		return filepath.Base(path)
	}
	return "synthetic (" + model + ")"
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("metrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runDrift(cmd *cobra.Command, args []string) error {
	model := ""
	if len(args) > 0 {
		model = args[0]
	}
	cfg, err := loadConfig(cmd, model)
	if err != nil {
		return err
	}
	req, err := cfg.Request()
	if err != nil {
		return err
	}

	_, provider, err := openProvider(cfg, slog.Default())
	if err != nil {
		return err
	}

	fmt.Printf("running %s drift (%s, %.1fh, %d particles)...\n",
		cfg.Model, req.Direction, req.Hours, req.Particles)
	fmt.Printf("currents: %s\n", sourceName(provider.HasCurrentData(), cfg.Data.CurrentFile, cfg.Model))
	if req.Windage != 0 {
		fmt.Printf("wind: %s\n", sourceName(provider.HasWindData(), cfg.Data.WindFile, cfg.Model))
	}

	sim := drift.New(provider, slog.Default())
	sim.AddMetric(metrics.NewSpread())
	sim.AddMetric(metrics.NewDriftSpeed())
	sim.AddMetric(metrics.NewBoundaryContact(provider.Domain()))

	var rec *analysis.VarianceRecorder
	if runEstimate {
		rec = analysis.NewVarianceRecorder()
		sim.AddObserver(rec)
	}

	start := time.Now()
	res, err := sim.Run(context.Background(), req)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(cfg.Model, req, res)
	if err != nil {
		return err
	}

	end := res.Track[len(res.Track)-1]
	stats := analysis.Track(res.Track)
	fmt.Printf("run id: %s\n", id)
	fmt.Printf("steps: %d, track points: %d\n", res.Steps, len(res.Track))
	fmt.Printf("final centroid: %.4f, %.4f\n", end.Lat, end.Lon)
	fmt.Printf("net drift: %.1f km at %.0f deg\n", stats.NetKm, stats.BearingDeg)
	printMetrics(res.Metrics)

	if rec != nil {
		d, err := analysis.EstimateDiffusivity(rec.Times, rec.Vars)
		if err != nil {
			return err
		}
		fmt.Printf("estimated diffusivity: %.3f m^2/s (requested %.3f)\n", d, req.Diffusivity)
	}
	return nil
}

func showCurrents(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}
	cfg.Data.CurrentFile = flagCurrent

	_, provider, err := openProvider(cfg, slog.Default())
	if err != nil {
		return err
	}

	samples := provider.CurrentGrid(curRows, curCols, curAt*3600, flagTimeIndex)
	source := sourceName(provider.HasCurrentData(), cfg.Data.CurrentFile, cfg.Model)

	switch curFormat {
	case "table":
		fmt.Printf("surface currents, %s, t=%+.1fh\n", source, curAt)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LAT\tLON\tU\tV\tSPEED")
		for _, s := range samples {
			fmt.Fprintf(w, "%.3f\t%.3f\t%+.3f\t%+.3f\t%.3f\n",
				s.Lat, s.Lon, s.U, s.V, math.Hypot(s.U, s.V))
		}
		return w.Flush()
	case "json":
		out := struct {
			Source  string             `json:"source"`
			Samples []field.GridSample `json:"samples"`
		}{source, samples}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "csv":
		return gocsv.Marshal(&samples, os.Stdout)
	default:
		return fmt.Errorf("unknown format %q (table, json, csv)", curFormat)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tDIRECTION\tHOURS\tPARTICLES\tSTEPS\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%d\t%d\t%s\n",
			r.ID, r.Model, r.Direction, r.Hours, r.Particles, r.Steps,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}
	if len(track) < 2 {
		return fmt.Errorf("run %s has too few track points to plot", args[0])
	}

	lats := make([]float64, len(track))
	lons := make([]float64, len(track))
	for i, p := range track {
		lats[i] = p.Lat
		lons[i] = p.Lon
	}

	fmt.Printf("%s: %s %s, %.0fh, %d particles, seed %d\n\n",
		meta.ID, meta.Model, meta.Direction, meta.Hours, meta.Particles, meta.Seed)
	fmt.Println(asciigraph.Plot(lats,
		asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("centroid latitude (deg)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(lons,
		asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("centroid longitude (deg)")))

	stats := analysis.Track(track)
	fmt.Printf("\npath %.1f km, net %.1f km, tortuosity %.2f, bearing %.0f deg\n",
		stats.PathKm, stats.NetKm, stats.Tortuosity, stats.BearingDeg)
	if cloud, err := st.LoadCloud(args[0]); err == nil && len(cloud) > 0 {
		cs := analysis.Cloud(cloud)
		fmt.Printf("cloud: %d particles, sigma %.2f km (lat %.2f, lon %.2f)\n",
			len(cloud), cs.SigmaKm, cs.SigmaLatKm, cs.SigmaLonKm)
	}
	return nil
}

// pointRow is the csv export row for tracks and clouds.
type pointRow struct {
	I   int     `csv:"i"`
	Lon float64 `csv:"lon"`
	Lat float64 `csv:"lat"`
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}
	cloud, err := st.LoadCloud(args[0])
	if err != nil {
		return err
	}

	switch exportFormat {
	case "json":
		return store.WriteJSON(os.Stdout, *meta, track, cloud)
	case "geojson":
		props := map[string]any{
			"run_id":    meta.ID,
			"model":     meta.Model,
			"direction": meta.Direction,
			"hours":     meta.Hours,
			"particles": meta.Particles,
		}
		fc := store.TrackCollection(track, props)
		if exportCloud {
			fc = store.CloudCollection(cloud, props)
		}
		return store.WriteGeoJSON(os.Stdout, fc)
	case "csv":
		pts := track
		if exportCloud {
			pts = cloud
		}
		rows := make([]pointRow, len(pts))
		for i, p := range pts {
			rows[i] = pointRow{i, p.Lon, p.Lat}
		}
		return gocsv.Marshal(&rows, os.Stdout)
	default:
		return fmt.Errorf("unknown format %q (json, geojson, csv)", exportFormat)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	model := ""
	if len(args) > 0 {
		model = args[0]
	}
	cfg, err := loadConfig(cmd, model)
	if err != nil {
		return err
	}
	req, err := cfg.Request()
	if err != nil {
		return err
	}

	// Logging would tear the alt screen, keep the provider quiet.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	fld, provider, err := openProvider(cfg, quiet)
	if err != nil {
		return err
	}
	return viz.RunLive(fld, provider, req, cfg.Model)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, provider, err := openProvider(cfg, quiet)
	if err != nil {
		return err
	}
	sim := drift.New(provider, quiet)

	horizons := []float64{6, 24, 48}
	sizes := []int{1000, 4000, 8000}

	fmt.Printf("benchmarking %s...\n", cfg.Model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HOURS\tPARTICLES\tSTEPS\tTIME\tPARTICLE-STEPS/S")
	for _, h := range horizons {
		for _, n := range sizes {
			req := drift.DefaultRequest()
			req.Hours = h
			req.Particles = n
			req.Seed = 42
			start := time.Now()
			res, err := sim.Run(context.Background(), req)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			rate := float64(res.Steps) * float64(n) / elapsed.Seconds()
			fmt.Fprintf(w, "%.0f\t%d\t%d\t%v\t%.0f\n",
				h, n, res.Steps, elapsed.Round(time.Millisecond), rate)
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	models := make([]string, 0, len(config.Presets))
	for name := range config.Presets {
		models = append(models, name)
	}
	sort.Strings(models)
	if len(args) > 0 {
		models = args[:1]
	}

	for _, model := range models {
		names := config.ListPresets(model)
		if len(names) == 0 {
			return fmt.Errorf("no presets for model %q", model)
		}
		fmt.Printf("%s:\n", model)
		for _, name := range names {
			p := config.GetPreset(model, name)
			fmt.Printf("  %-10s %4.0fh  %6d particles  windage %.3f  diffusivity %.2f  %s\n",
				name, p.Hours, p.Particles, p.Windage, p.Diffusivity, p.Direction)
		}
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("scenario: %s (%d steps)\n", sc.Name, len(sc.Steps))
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	dom := config.DefaultConfig().DomainBox()
	results, runErr := scenario.Run(context.Background(), sc, dom, slog.Default())

	for i, sr := range results {
		name := sr.Step.Name
		if name == "" {
			name = sr.Step.Model
		}
		if name == "" {
			name = "gyre"
		}
		stats := analysis.Track(sr.Result.Track)
		cs := analysis.Cloud(sr.Result.Cloud)
		fmt.Printf("step %d (%s): %d steps, net %.1f km, spread %.2f km\n",
			i+1, name, sr.Result.Steps, stats.NetKm, cs.SigmaKm)

		if sr.Step.SaveAs != "" {
			req, err := sr.Step.Request()
			if err != nil {
				return err
			}
			id, err := st.Save(sr.Step.SaveAs, req, sr.Result)
			if err != nil {
				return err
			}
			fmt.Printf("  saved %s\n", id)
		}
	}
	return runErr
}

// sweepRow is the csv output row for sweep.
type sweepRow struct {
	Value    float64 `csv:"value"`
	FinalLat float64 `csv:"final_lat"`
	FinalLon float64 `csv:"final_lon"`
	NetKm    float64 `csv:"net_km"`
	SpreadKm float64 `csv:"spread_km"`
}

func runSweep(cmd *cobra.Command, args []string) error {
	model := ""
	if len(args) > 0 {
		model = args[0]
	}
	cfg, err := loadConfig(cmd, model)
	if err != nil {
		return err
	}
	req, err := cfg.Request()
	if err != nil {
		return err
	}

	sw := scenario.Sweep{
		Model:   cfg.Model,
		Param:   sweepParam,
		Min:     sweepFrom,
		Max:     sweepTo,
		Steps:   sweepSteps,
		Request: req,
	}
	fmt.Printf("sweeping %s over [%g, %g] in %d steps...\n",
		sweepParam, sweepFrom, sweepTo, sweepSteps)
	points, err := scenario.RunSweep(context.Background(), sw, cfg.DomainBox(), slog.Default())
	if err != nil {
		return err
	}

	if sweepFormat == "csv" {
		rows := make([]sweepRow, len(points))
		for i, p := range points {
			rows[i] = sweepRow{p.Value, p.Final.Lat, p.Final.Lon, p.NetKm, p.SpreadKm}
		}
		return gocsv.Marshal(&rows, os.Stdout)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tFINAL LAT\tFINAL LON\tNET KM\tSPREAD KM")
	for _, p := range points {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.1f\t%.2f\n",
			p.Value, p.Final.Lat, p.Final.Lon, p.NetKm, p.SpreadKm)
	}
	return w.Flush()
}

func runLocate(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("obs-lat") || !cmd.Flags().Changed("obs-lon") {
		return fmt.Errorf("locate needs --obs-lat and --obs-lon")
	}

	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}
	cfg.Data.CurrentFile = flagCurrent
	cfg.Data.WindFile = flagWind
	_, provider, err := openProvider(cfg, slog.Default())
	if err != nil {
		return err
	}

	req := optim.Request{
		ObsLat:    locObsLat,
		ObsLon:    locObsLon,
		Hours:     locHours,
		Windage:   locWindage,
		Seed:      locSeed,
		TimeIndex: locTimeIndex,
	}
	fmt.Printf("locating release for observation %.4f, %.4f over %.1fh...\n",
		req.ObsLat, req.ObsLon, req.Hours)

	start := time.Now()
	res, err := optim.Locate(context.Background(), provider, req, slog.Default())
	if err != nil {
		return err
	}
	fmt.Printf("estimated release: %.4f, %.4f\n", res.Lat, res.Lon)
	fmt.Printf("mismatch: %.2f km after %d forward runs (%v)\n",
		res.MismatchKm, res.Evals, time.Since(start).Round(time.Millisecond))
	return nil
}
