package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/slopefield/internal/config"
	"github.com/san-kum/slopefield/internal/export"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/host"
	"github.com/san-kum/slopefield/internal/logging"
	"github.com/san-kum/slopefield/internal/scenario"
	"github.com/san-kum/slopefield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	fieldName  string
	dt         float64
	threshold  float64
	startX     float64
	startY     float64
	logLevel   string
	logFile    string
	// run command
	ticks        int
	scenarioFile string
	svgOut       string
	csvOut       string
	svgWidth     int
	noPlot       bool
)

// main registers the commands and runs the live view when no subcommand is
// given. It exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "slopefield",
		Short:        "direction fields and euler flow for dy/dx = f(x, y)",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration for the field")
	pf.StringVar(&fieldName, "field", config.DefaultField, "slope field name")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "euler step per tick")
	pf.Float64Var(&threshold, "threshold", config.DefaultThreshold, "distance treated as an external move")
	pf.Float64Var(&startX, "x", 0, "marker start x")
	pf.Float64Var(&startY, "y", 0, "marker start y")
	pf.StringVar(&logLevel, "log-level", "", "log level (trace|debug|info|warn|error)")
	pf.StringVar(&logFile, "log", "", "also write logs to this file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the marker in the terminal",
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run ticks headless and print the trail",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file with scripted moves (yaml)")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the scene as svg to this path")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write trail samples as csv to this path")
	runCmd.Flags().IntVar(&svgWidth, "width", 800, "svg width in pixels")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the ascii plot")

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "print the sampled direction field",
		RunE:  printField,
	}

	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "list built-in fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDY/DX\tPRESETS")
			for _, e := range field.Builtins() {
				presets := config.ListPresets(e.Name)
				sort.Strings(presets)
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Formula, strings.Join(presets, ","))
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [field]",
		Short: "list presets for a field",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for field: %s\n", args[0])
				return
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, fieldCmd, fieldsCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, the preset and finally any
// flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	name := cfg.Field
	if flags.Changed("field") {
		name = fieldName
	}
	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		cfg.Apply(p)
	}

	if flags.Changed("field") {
		cfg.Field = fieldName
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("threshold") {
		cfg.Threshold = threshold
	}
	if flags.Changed("x") {
		cfg.Marker.X = startX
	}
	if flags.Changed("y") {
		cfg.Marker.Y = startY
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cfg *config.Config, log zerolog.Logger) (*host.Session, error) {
	f, err := field.Lookup(cfg.Field)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(field.NewRegistry().Names(), ", "))
	}
	return host.NewSession(cfg, f, host.NewScheduler(), log)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs only go to the file.
	log, closeLog, err := logging.Open(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	return viz.Run(s)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var file *os.File
	if logFile != "" {
		file, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer file.Close()
	}
	var log zerolog.Logger
	if file != nil {
		log = logging.New(cfg.LogLevel, os.Stderr, file)
	} else {
		log = logging.New(cfg.LogLevel, os.Stderr, nil)
	}

	s, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	s.Install()
	defer s.Uninstall()

	if scenarioFile != "" {
		sc, err := scenario.Load(scenarioFile)
		if err != nil {
			return err
		}
		log.Info().Str("scenario", sc.Name).Int("events", len(sc.Events)).Msg("running scenario")
		rep := scenario.Run(s, sc, cfg.Ticks)
		for _, msg := range rep.Ignored {
			log.Warn().Msg("event ignored: " + msg)
		}
	} else {
		s.Run(cfg.Ticks)
	}

	printSummary(s, !noPlot)

	st := s.State()
	if svgOut != "" {
		svg := export.SceneToSVG(cfg, field.Sample(s.Field(), cfg.Grid()), st.Trails.Segments(), st.Marker, svgWidth)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("svg written to %s\n", svgOut)
	}
	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteCSV(f, st.Trails.Segments()); err != nil {
			return err
		}
		fmt.Printf("csv written to %s\n", csvOut)
	}
	return nil
}

func printSummary(s *host.Session, plot bool) {
	cfg := s.Config()
	st := s.State()
	stats := s.Stats()

	fmt.Printf("field: %s  dt: %.4f  threshold: %.3f\n", cfg.Field, cfg.Dt, cfg.Threshold)
	fmt.Printf("ticks: %d  advanced: %d  external moves: %d  faults: %d  skipped: %d\n",
		stats.Ticks, stats.Advanced, stats.Perturbed, stats.Faults, stats.Skipped)
	if st.Marker != nil {
		fmt.Printf("marker: (%.4f, %.4f)\n", st.Marker.Pos[0], st.Marker.Pos[1])
	} else {
		fmt.Println("marker: removed")
	}
	fmt.Printf("max speed: %.5f\n\n", stats.MaxSpeed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRAIL\tPOINTS\tSTART\tEND\tSTATE")
	for _, seg := range st.Trails.Segments() {
		first, last := seg.At(0).Pos, seg.Last().Pos
		state := "active"
		if seg.Sealed() {
			state = "sealed"
		}
		fmt.Fprintf(w, "#%d\t%d\t(%.3f, %.3f)\t(%.3f, %.3f)\t%s\n",
			seg.ID(), seg.Len(), first[0], first[1], last[0], last[1], state)
	}
	w.Flush()

	if !plot {
		return
	}
	seg, ok := st.Trails.Active()
	if !ok || seg.Len() < 2 {
		return
	}
	ys := make([]float64, seg.Len())
	radii := make([]float64, seg.Len())
	for i, smp := range seg.Samples() {
		ys[i] = smp.Pos[1]
		radii[i] = smp.Radius
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(ys,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("y along trail #%d", seg.ID())),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(radii[1:],
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("trail radius (speed x scale)"),
	))
}

// printField draws the direction field as a grid of slope characters, top
// row first.
func printField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := field.Lookup(cfg.Field)
	if err != nil {
		return err
	}

	g := cfg.Grid()
	type cell struct{ i, j int }
	chars := make(map[cell]rune, g.Count())
	for gl := range field.Sample(f, g) {
		i := int(math.Round((gl.Pos[0] - g.XMin) / g.Spacing))
		j := int(math.Round((gl.Pos[1] - g.YMin) / g.Spacing))
		chars[cell{i, j}] = slopeRune(gl.Angle)
	}

	nx := int(math.Floor((g.XMax-g.XMin)/g.Spacing + 1e-9))
	ny := int(math.Floor((g.YMax-g.YMin)/g.Spacing + 1e-9))

	fmt.Printf("dy/dx field %q on [%g, %g] x [%g, %g], spacing %g\n\n",
		cfg.Field, g.XMin, g.XMax, g.YMin, g.YMax, g.Spacing)
	for j := ny; j >= 0; j-- {
		var b strings.Builder
		fmt.Fprintf(&b, "%7.2f  ", g.YMin+float64(j)*g.Spacing)
		for i := 0; i <= nx; i++ {
			r, ok := chars[cell{i, j}]
			if !ok {
				r = '?'
			}
			b.WriteRune(r)
			b.WriteRune(' ')
		}
		fmt.Println(b.String())
	}
	return nil
}

func slopeRune(angle float64) rune {
	switch a := angle * 180 / math.Pi; {
	case a > 67.5 || a < -67.5:
		return '|'
	case a > 22.5:
		return '/'
	case a < -22.5:
		return '\\'
	default:
		return '-'
	}
}
