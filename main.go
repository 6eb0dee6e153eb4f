package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-pattern/arp"
	"go-pattern/clock"
	"go-pattern/config"
	"go-pattern/debug"
	"go-pattern/generate"
	"go-pattern/melody"
	"go-pattern/midi"
	"go-pattern/pattern"
	"go-pattern/rng"
	"go-pattern/scale"
	"go-pattern/sequencer"
	"go-pattern/theme"
	"go-pattern/tui"
	"go-pattern/widgets"
)

var (
	// root / tui
	configPath string
	debugLog   bool
	seed       uint32
	outPort    string

	// generate
	genLength    int
	genDensity   float64
	genCount     int
	genVariation string
	genAmount    float64
	genMIDI      string

	// melody
	melScale  string
	melRoot   int
	melStyle  string
	melLength int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "go-pattern",
	Short: "Generative step patterns and an arpeggiator over MIDI",
	Long: `go-pattern generates rhythmic patterns (euclidean, markov, cellular
automata, L-systems, genetic search, chaos), varies and morphs them, and
plays them with an arpeggiator on a MIDI output.

Running without a subcommand starts the terminal UI.`,
	RunE: runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal UI",
	RunE:  runTUI,
}

var generateCmd = &cobra.Command{
	Use:   "generate <algorithm>",
	Short: "Print generated patterns",
	Long: `Generate patterns and print them, one per line (x = hit, o = ghost).

Algorithms: ` + joinNames(generate.Algorithms) + `

Examples:
  go-pattern generate euclidean --length 16 --density 0.3
  go-pattern generate chaos -n 4 --seed 7 --variation ghost --amount 0.8
  go-pattern generate lsystem -n 8 --midi beat.mid`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var melodyCmd = &cobra.Command{
	Use:   "melody",
	Short: "Print a generated melody",
	Long: `Generate a melody over a scale and print MIDI note numbers and names.

Styles: ` + joinNames(melody.Styles),
	RunE: runMelody,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI ports",
	RunE:  runPorts,
}

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "List known scales",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range scale.Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(melodyCmd)
	rootCmd.AddCommand(portsCmd)
	rootCmd.AddCommand(scalesCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/go-pattern/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Write a debug log to ~/.config/go-pattern/debug.log")
	rootCmd.PersistentFlags().Uint32Var(&seed, "seed", 0, "Random seed (0 = from config, else from the clock)")
	rootCmd.PersistentFlags().StringVar(&outPort, "port", "", "MIDI output port (substring match)")

	generateCmd.Flags().IntVarP(&genLength, "length", "l", 16, "Pattern length in steps")
	generateCmd.Flags().Float64VarP(&genDensity, "density", "d", 0.5, "Density 0-1")
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 1, "Number of patterns")
	generateCmd.Flags().StringVar(&genVariation, "variation", "", "Apply a variation ("+joinNames(pattern.Variations)+")")
	generateCmd.Flags().Float64Var(&genAmount, "amount", 0.5, "Variation amount 0-1")
	generateCmd.Flags().StringVar(&genMIDI, "midi", "", "Also write the patterns to a Standard MIDI File, one drum track each")

	melodyCmd.Flags().StringVarP(&melScale, "scale", "s", "", "Scale name (default from config)")
	melodyCmd.Flags().IntVarP(&melRoot, "root", "r", -1, "Root MIDI note (default from config)")
	melodyCmd.Flags().StringVar(&melStyle, "style", "random", "Melody style")
	melodyCmd.Flags().IntVarP(&melLength, "length", "l", 8, "Number of notes")
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if debugLog {
		cfg.Debug = true
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if outPort != "" {
		cfg.MIDI.OutPort = outPort
	}

	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
	}
	return cfg, nil
}

// newSource returns a source for the configured seed. Each component gets its
// own offset so they don't share a stream.
func newSource(base uint32, offset uint32) *rng.Source {
	return rng.New(base + offset)
}

func baseSeed(cfg *config.Config) uint32 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return rng.NewFromClock().Seed()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer debug.Disable()

	base := baseSeed(cfg)
	debug.Log("main", "seed %d", base)

	palette, err := theme.Load(cfg.UI.Palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "palette: %v (using plasma)\n", err)
		palette = theme.Plasma()
	}

	// Arpeggiator and transport on the wall clock
	a := arp.New(clock.Real{}, newSource(base, 2), cfg.Arp.ArpConfig())
	manager := sequencer.NewManager(clock.Real{}, a)
	manager.SetTempo(cfg.Tempo)
	manager.SetArpChannel(cfg.Arp.Channel)
	if ch := cfg.MIDI.DrumChannel; ch != 0 {
		snap := manager.Snapshot()
		for i, t := range snap.Tracks {
			manager.SetTrackOutput(i, ch, t.Note)
		}
	}
	defer midi.Close()
	defer manager.Close()

	// MIDI output
	if out, err := openOutput(cfg.MIDI.OutPort); err != nil {
		fmt.Fprintf(os.Stderr, "MIDI output: %v (running silent)\n", err)
	} else {
		manager.SetBackend(func(ch uint8) midi.Backend { return out.Channel(ch) })
	}
	manager.StartRuntime()

	// Keyboard hot-plug
	deviceMgr := midi.NewDeviceManager(cfg.MIDI.InputFilter)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deviceMgr.Run(ctx)

	m := tui.NewModel(tui.Deps{
		Manager:   manager,
		DeviceMgr: deviceMgr,
		Engine:    generate.NewEngine(newSource(base, 0)),
		Processor: pattern.NewProcessor(newSource(base, 1)),
		Melody:    melody.New(newSource(base, 3)),
		Config:    cfg,
		Theme:     theme.New(palette),
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// openOutput opens the named port, or the first available one
func openOutput(name string) (*midi.Output, error) {
	if name == "" {
		ports := midi.ListOutPorts()
		if len(ports) == 0 {
			return nil, midi.ErrPortNotFound
		}
		name = ports[0]
	}
	send, err := midi.OpenOutput(name)
	if err != nil {
		return nil, err
	}
	debug.Log("midi", "output %s", name)
	return midi.NewOutput(send, 1), nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	algo, err := generate.ParseAlgorithm(args[0])
	if err != nil {
		return err
	}
	var variation pattern.Variation
	if genVariation != "" {
		if variation, err = pattern.ParseVariation(genVariation); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	base := baseSeed(cfg)
	engine := generate.NewEngine(newSource(base, 0))
	proc := pattern.NewProcessor(newSource(base, 1))

	pats := make([]pattern.Pattern, 0, genCount)
	for i := 0; i < genCount; i++ {
		p := engine.Generate(algo, genLength, genDensity)
		if variation != "" {
			p = proc.Variation(p, variation, genAmount)
		}
		fmt.Println(p.String())
		pats = append(pats, p)
	}
	if genMIDI != "" {
		if err := writeMIDI(genMIDI, cfg.Tempo, pats); err != nil {
			return err
		}
	}
	if cfg.Seed == 0 {
		fmt.Fprintf(os.Stderr, "seed %d\n", base)
	}
	return nil
}

func writeMIDI(path string, tempo int, pats []pattern.Pattern) error {
	if len(pats) > sequencer.NumTracks {
		fmt.Fprintf(os.Stderr, "midi: only the first %d patterns fit\n", sequencer.NumTracks)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sequencer.PatternSnapshot(tempo, pats).WriteSMF(f, 0); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runMelody(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	style, ok := melody.ParseStyle(melStyle)
	if !ok {
		return fmt.Errorf("unknown style %q (%s)", melStyle, joinNames(melody.Styles))
	}
	name := cfg.Scale
	if melScale != "" {
		name = melScale
	}
	root := cfg.Root
	if melRoot >= 0 {
		root = melRoot
	}

	gen := melody.New(newSource(baseSeed(cfg), 3))
	notes := gen.Generate(melLength, scale.Default.Scale(name), root, style)

	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = fmt.Sprintf("%d(%s)", n, widgets.NoteName(n))
	}
	fmt.Println(strings.Join(names, " "))
	return nil
}

func runPorts(cmd *cobra.Command, args []string) error {
	defer midi.Close()
	fmt.Println("Outputs:")
	for _, p := range midi.ListOutPorts() {
		fmt.Println("  " + p)
	}
	fmt.Println("Inputs:")
	for _, p := range midi.ListInPorts() {
		fmt.Println("  " + p)
	}
	return nil
}

func joinNames[T ~string](names []T) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
