package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aperez/cyclab/internal/config"
	"github.com/aperez/cyclab/internal/live"
	"github.com/aperez/cyclab/internal/material"
	"github.com/aperez/cyclab/internal/observability"
	"github.com/aperez/cyclab/internal/protocol"
	"github.com/aperez/cyclab/internal/section"
	"github.com/aperez/cyclab/internal/store"
	"github.com/aperez/cyclab/internal/tester"
	"github.com/aperez/cyclab/internal/timeseries"
	"github.com/aperez/cyclab/internal/version"
	"github.com/aperez/cyclab/internal/viz"
)

var (
	dataDir      string
	materialName string
	protocolName string
	maxAmplitude float64
	alpha        float64
	points       int
	params       []string
	configFile   string
	preset       string
	outputFile   string
	plotWidth    int
	plotHeight   int
	// Backbone strain range
	strainMax float64
	strainMin float64
	// Section geometry and loading
	secWidth  float64
	secHeight float64
	secCover  float64
	nFibers   int
	nBars     int
	barArea   float64
	axialLoad float64
	maxKappa  float64
	// Core and cover concrete parameters
	fpcCore   float64
	epsc0Core float64
	fpcuCore  float64
	epsuCore  float64
	fpcCover  float64
	epsc0Cvr  float64
	fpcuCover float64
	epsuCover float64
	fy        float64
	es        float64
	hardening float64
)

func main() {
	observability.InitLogger("cyclab")

	rootCmd := &cobra.Command{
		Use:   "cyclab",
		Short: "cyclic loading protocol and material test lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cyclab", "data directory")

	protocolCmd := &cobra.Command{
		Use:   "protocol [kind]",
		Short: "generate a loading protocol",
		Args:  cobra.ExactArgs(1),
		RunE:  runProtocol,
	}
	protocolCmd.Flags().Float64Var(&maxAmplitude, "max-amplitude", config.DefaultMaxAmplitude, "target amplitude")
	protocolCmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "fema461 amplification factor")
	protocolCmd.Flags().StringVar(&outputFile, "output", "", "export plot image (png/svg/pdf)")

	testCmd := &cobra.Command{
		Use:   "test",
		Short: "run a cyclic material test",
		RunE:  runTest,
	}
	addMaterialFlags(testCmd)
	addProtocolFlags(testCmd)
	testCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	testCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration (material/name)")
	testCmd.Flags().StringVar(&outputFile, "output", "", "export hysteresis image (png/svg/pdf)")

	backboneCmd := &cobra.Command{
		Use:   "backbone",
		Short: "trace the monotonic envelope of a material",
		RunE:  runBackbone,
	}
	addMaterialFlags(backboneCmd)
	backboneCmd.Flags().Float64Var(&strainMax, "strain-max", 0.02, "positive strain limit")
	backboneCmd.Flags().Float64Var(&strainMin, "strain-min", -0.02, "negative strain limit")
	backboneCmd.Flags().IntVar(&points, "points", 200, "analysis steps per branch")
	backboneCmd.Flags().StringVar(&outputFile, "output", "", "export backbone image (png/svg/pdf)")

	compareCmd := &cobra.Command{
		Use:   "compare [material/preset] [material/preset] ...",
		Short: "run the same protocol against several material presets",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runCompare,
	}
	addProtocolFlags(compareCmd)

	mcCmd := &cobra.Command{
		Use:   "mc",
		Short: "moment-curvature analysis of a rectangular RC column",
		RunE:  runMC,
	}
	mcCmd.Flags().Float64Var(&secWidth, "width", 300, "section width (mm)")
	mcCmd.Flags().Float64Var(&secHeight, "height", 400, "section height (mm)")
	mcCmd.Flags().Float64Var(&secCover, "cover", 40, "concrete cover (mm)")
	mcCmd.Flags().IntVar(&nFibers, "fibers", 40, "concrete fibers through the depth")
	mcCmd.Flags().IntVar(&nBars, "bars", 3, "bars per layer")
	mcCmd.Flags().Float64Var(&barArea, "bar-area", 201, "bar area (mm^2)")
	mcCmd.Flags().Float64Var(&axialLoad, "axial", -500e3, "axial load (N, compression negative)")
	mcCmd.Flags().Float64Var(&maxKappa, "curvature", 5e-5, "target curvature (1/mm)")
	mcCmd.Flags().IntVar(&points, "points", 50, "analysis steps")
	mcCmd.Flags().Float64Var(&fpcCore, "fpc-core", -35, "confined concrete strength")
	mcCmd.Flags().Float64Var(&epsc0Core, "epsc0-core", -0.004, "confined strain at peak")
	mcCmd.Flags().Float64Var(&fpcuCore, "fpcu-core", -30, "confined residual strength")
	mcCmd.Flags().Float64Var(&epsuCore, "epsu-core", -0.03, "confined ultimate strain")
	mcCmd.Flags().Float64Var(&fpcCover, "fpc-cover", -30, "unconfined concrete strength")
	mcCmd.Flags().Float64Var(&epsc0Cvr, "epsc0-cover", -0.002, "unconfined strain at peak")
	mcCmd.Flags().Float64Var(&fpcuCover, "fpcu-cover", -25, "unconfined residual strength")
	mcCmd.Flags().Float64Var(&epsuCover, "epsu-cover", -0.02, "unconfined ultimate strain")
	mcCmd.Flags().Float64Var(&fy, "fy", 420, "steel yield stress")
	mcCmd.Flags().Float64Var(&es, "es", 200000, "steel modulus")
	mcCmd.Flags().Float64Var(&hardening, "b", 0.01, "steel hardening ratio")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "chart width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "chart height")
	plotCmd.Flags().StringVar(&outputFile, "output", "", "export hysteresis image (png/svg/pdf)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}
	exportJSONCmd.Flags().StringVar(&outputFile, "output", "", "write to file instead of stdout")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}
	exportCSVCmd.Flags().StringVar(&outputFile, "output", "", "write to file instead of stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets [material]",
		Short: "list available presets for a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for material: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive replay of a cyclic test",
		RunE:  runLive,
	}
	addMaterialFlags(liveCmd)
	addProtocolFlags(liveCmd)
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration (material/name)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cyclab %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		},
	}

	rootCmd.AddCommand(protocolCmd, testCmd, backboneCmd, compareCmd, mcCmd,
		listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd, liveCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addProtocolFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&protocolName, "protocol", "asce41", "loading protocol (asce41, atc24, fema461)")
	cmd.Flags().Float64Var(&maxAmplitude, "max-amplitude", config.DefaultMaxAmplitude, "target amplitude")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "fema461 amplification factor")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "analysis steps")
}

func addMaterialFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&materialName, "material", "steel01", "material law")
	cmd.Flags().StringSliceVar(&params, "param", nil, "material parameter override (name=value)")
}

// resolveConfig merges preset, config file and flags; flags win.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		name := materialName
		presetName := preset
		if strings.Contains(preset, "/") {
			parts := strings.SplitN(preset, "/", 2)
			name, presetName = parts[0], parts[1]
		}
		p := config.GetPreset(name, presetName)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		applyPreset(cfg, p)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		applyPreset(cfg, loaded)
	}

	if cmd.Flags().Changed("material") {
		// Parameter defaults only make sense for the material they
		// belong to.
		if materialName != cfg.Material {
			cfg.MaterialParams = make(map[string]float64)
		}
		cfg.Material = materialName
	}
	if cmd.Flags().Changed("protocol") {
		cfg.Protocol = protocolName
	}
	if cmd.Flags().Changed("max-amplitude") {
		cfg.MaxAmplitude = maxAmplitude
	}
	if cmd.Flags().Changed("alpha") {
		cfg.Alpha = alpha
	}
	if cmd.Flags().Changed("points") {
		cfg.Points = points
	}

	overrides, err := parseParams(params)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if cfg.MaterialParams == nil {
			cfg.MaterialParams = make(map[string]float64)
		}
		for k, v := range overrides {
			cfg.MaterialParams[k] = v
		}
	}

	return cfg, nil
}

func applyPreset(dst, src *config.Config) {
	if src.Material != "" {
		dst.Material = src.Material
	}
	if src.MaterialParams != nil {
		dst.MaterialParams = make(map[string]float64, len(src.MaterialParams))
		for k, v := range src.MaterialParams {
			dst.MaterialParams[k] = v
		}
	}
	if src.Protocol != "" {
		dst.Protocol = src.Protocol
	}
	if src.MaxAmplitude != 0 {
		dst.MaxAmplitude = src.MaxAmplitude
	}
	if src.Alpha != 0 {
		dst.Alpha = src.Alpha
	}
	if src.Points != 0 {
		dst.Points = src.Points
	}
	if src.DataDir != "" {
		dst.DataDir = src.DataDir
	}
}

func parseParams(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q, expected name=value", pair)
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter value %q: %w", pair, err)
		}
		out[strings.TrimSpace(name)] = val
	}
	return out, nil
}

func buildSpec(cfg *config.Config) (protocol.Spec, error) {
	kind, err := protocol.ParseKind(cfg.Protocol)
	if err != nil {
		return protocol.Spec{}, err
	}
	switch kind {
	case protocol.FEMA461:
		return protocol.NewFEMA461(cfg.MaxAmplitude, cfg.Alpha), nil
	case protocol.ModifiedATC24:
		return protocol.NewModifiedATC24(cfg.MaxAmplitude), nil
	default:
		return protocol.NewASCE41(cfg.MaxAmplitude), nil
	}
}

func runProtocol(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Protocol = args[0]
	cfg.MaxAmplitude = maxAmplitude
	cfg.Alpha = alpha

	spec, err := buildSpec(cfg)
	if err != nil {
		return err
	}

	seq, err := protocol.Generate(spec)
	if err != nil {
		return err
	}

	fmt.Println(viz.SequencePlot(seq, 80, 12))

	if outputFile != "" {
		if err := viz.ExportSequencePNG(seq, outputFile); err != nil {
			return err
		}
		log.Info().Str("file", outputFile).Msg("exported protocol plot")
	}

	return nil
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	law, err := material.New(cfg.Material, cfg.MaterialParams)
	if err != nil {
		return err
	}

	spec, err := buildSpec(cfg)
	if err != nil {
		return err
	}
	seq, err := protocol.Generate(spec)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	log.Info().
		Str("material", cfg.Material).
		Str("protocol", cfg.Protocol).
		Float64("max_amplitude", cfg.MaxAmplitude).
		Msg("running cyclic test")
	start := time.Now()

	result, err := tester.New(law).Run(context.Background(), timeseries.FromSequence(seq), cfg.Points)
	if err != nil {
		return err
	}

	runID, err := st.Save(result)
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", runID).
		Dur("elapsed", time.Since(start)).
		Bool("converged", result.Converged).
		Msg("test complete")

	if !result.Converged {
		log.Warn().Int("points", result.NumPoints()).Msg("material failed before end of protocol")
	}

	fmt.Println(viz.HysteresisPlot(result, 70, 22))
	fmt.Printf("\npeak stress: %.4g\n", result.PeakStress())
	fmt.Printf("peak strain: %.4g\n", result.PeakStrain())
	fmt.Printf("energy dissipated: %.4g\n", result.EnergyDissipated())

	if outputFile != "" {
		if err := viz.ExportHysteresisPNG(result, outputFile); err != nil {
			return err
		}
		log.Info().Str("file", outputFile).Msg("exported hysteresis plot")
	}

	return nil
}

func runBackbone(cmd *cobra.Command, args []string) error {
	overrides, err := parseParams(params)
	if err != nil {
		return err
	}
	lawParams := config.DefaultConfig().MaterialParams
	if materialName != "steel01" {
		lawParams = map[string]float64{}
	}
	for k, v := range overrides {
		lawParams[k] = v
	}

	law, err := material.New(materialName, lawParams)
	if err != nil {
		return err
	}

	result, err := tester.New(law).Backbone(context.Background(), strainMax, strainMin, points)
	if err != nil {
		return err
	}

	fmt.Println(viz.BackbonePlot(result, 70, 20))

	if outputFile != "" {
		if err := viz.ExportBackbonePNG(result, outputFile); err != nil {
			return err
		}
		log.Info().Str("file", outputFile).Msg("exported backbone plot")
	}

	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Protocol = protocolName
	cfg.MaxAmplitude = maxAmplitude
	cfg.Alpha = alpha

	spec, err := buildSpec(cfg)
	if err != nil {
		return err
	}
	seq, err := protocol.Generate(spec)
	if err != nil {
		return err
	}
	series := timeseries.FromSequence(seq)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCONVERGED\tPEAK STRESS\tPEAK STRAIN\tENERGY")

	for _, ref := range args {
		name, presetName, ok := strings.Cut(ref, "/")
		if !ok {
			return fmt.Errorf("invalid preset reference %q, expected material/preset", ref)
		}
		p := config.GetPreset(name, presetName)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", ref, config.ListPresets(name))
		}

		law, err := material.New(p.Material, p.MaterialParams)
		if err != nil {
			return err
		}

		result, err := tester.New(law).Run(context.Background(), series, points)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s\t%v\t%.4g\t%.4g\t%.4g\n",
			ref, result.Converged, result.PeakStress(), result.PeakStrain(), result.EnergyDissipated())
	}

	return w.Flush()
}

func runMC(cmd *cobra.Command, args []string) error {
	column := section.RectangularColumn{
		B:       secWidth,
		H:       secHeight,
		Cover:   secCover,
		NFibers: nFibers,
		NBars:   nBars,
		BarArea: barArea,
	}

	sec, err := column.Build(
		func() (material.Law, error) {
			return material.NewConcrete01(fpcCore, epsc0Core, fpcuCore, epsuCore)
		},
		func() (material.Law, error) {
			return material.NewConcrete01(fpcCover, epsc0Cvr, fpcuCover, epsuCover)
		},
		func() (material.Law, error) {
			return material.NewSteel01(fy, es, hardening)
		},
	)
	if err != nil {
		return err
	}

	log.Info().
		Float64("axial", axialLoad).
		Float64("curvature", maxKappa).
		Int("fibers", len(sec.Fibers)).
		Msg("running moment-curvature analysis")

	mc := section.NewMomentCurvature(sec)
	result, err := mc.Solve(context.Background(), axialLoad, maxKappa, points)
	if err != nil {
		return err
	}

	if !result.Converged {
		log.Warn().Int("points", result.NumPoints()).Msg("section failed before target curvature")
	}

	graph := viz.NewCanvas(70, 18)
	graph.PlotXY(result.Curvature, result.Moment)
	fmt.Println(graph.String())
	fmt.Printf("peak moment: %.6g\n", result.PeakMoment())

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
	fmt.Fprintln(w, "ID\tMATERIAL\tPROTOCOL\tTIME\tPOINTS\tCONVERGED\tPEAK STRESS\tENERGY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%v\t%.4g\t%.4g\n",
			run.ID,
			run.Material,
			run.Protocol,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Converged,
			run.PeakStress,
			run.EnergyDissipated,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	result, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if result.NumPoints() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d\n\n", result.NumPoints())

	fmt.Println(viz.StrainPlot(result, plotWidth, plotHeight))
	fmt.Println()
	fmt.Println(viz.StressPlot(result, plotWidth, plotHeight))
	fmt.Println()
	fmt.Println(viz.HysteresisPlot(result, plotWidth/2, plotHeight+8))

	if outputFile != "" {
		if err := viz.ExportHysteresisPNG(result, outputFile); err != nil {
			return err
		}
		log.Info().Str("file", outputFile).Msg("exported hysteresis plot")
	}

	return nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	result, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	if outputFile != "" {
		return store.ExportJSON(outputFile, result)
	}
	return store.ExportJSONStdout(result)
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	result, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	if outputFile != "" {
		return store.ExportCSV(outputFile, result)
	}
	return store.WriteCSV(os.Stdout, result)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	law, err := material.New(cfg.Material, cfg.MaterialParams)
	if err != nil {
		return err
	}

	spec, err := buildSpec(cfg)
	if err != nil {
		return err
	}
	seq, err := protocol.Generate(spec)
	if err != nil {
		return err
	}

	return live.Run(law, seq, cfg.Points)
}
