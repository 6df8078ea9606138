package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/yorufune/zengrid/internal/config"
	"github.com/yorufune/zengrid/internal/grid"
	"github.com/yorufune/zengrid/internal/pulse"
	"github.com/yorufune/zengrid/internal/theme"
	"github.com/yorufune/zengrid/internal/viewport"
)

var (
	configFile  string
	preset      string
	themeName   string
	interactive bool
	expand      bool
	fps         int
	seed        int64
	charsFile   string
	forceFonts  bool
	mute        bool
	volume      float64
	// wave plot dimensions
	plotWidth  int
	plotHeight int
	// count command viewport
	countWidth  int
	countHeight int
)

// main registers commands and flags; the bare command runs the glyph grid.
func main() {
	rootCmd := &cobra.Command{
		Use:   "zengrid",
		Short: "ambient kanji grid for the terminal",
		RunE:  runGrid,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "scope colors to one theme (default: all themes)")
	rootCmd.Flags().BoolVar(&interactive, "interactive", false, "start in interactive mode")
	rootCmd.Flags().BoolVar(&expand, "expand", false, "start with the layer at full opacity")
	rootCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	rootCmd.Flags().StringVar(&charsFile, "chars", "", "character file, one glyph per line")
	rootCmd.Flags().BoolVar(&forceFonts, "force-fonts", false, "load decorative font variants")
	rootCmd.Flags().BoolVar(&mute, "mute", false, "disable click sounds")
	rootCmd.Flags().Float64Var(&volume, "volume", config.DefaultVolume, "click volume (0-1)")

	waveCmd := &cobra.Command{
		Use:   "wave",
		Short: "plot one pulse cycle",
		RunE:  plotWave,
	}
	waveCmd.Flags().IntVar(&plotWidth, "width", 72, "plot width in samples")
	waveCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height in rows")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		RunE:  listThemes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-8s theme=%s count=%d period=%s\n",
					name, p.Theme, p.Pulse.Count, p.Pulse.Period())
			}
			return nil
		},
	}

	countCmd := &cobra.Command{
		Use:   "count",
		Short: "print the glyph count for a viewport",
		RunE: func(cmd *cobra.Command, args []string) error {
			cols := viewport.Columns(countWidth, interactive)
			total := viewport.Count(countWidth, countHeight, interactive)
			fmt.Printf("%d columns, %d glyphs\n", cols, total)
			return nil
		},
	}
	countCmd.Flags().IntVar(&countWidth, "width", 1300, "viewport width in pixels")
	countCmd.Flags().IntVar(&countHeight, "height", 1000, "viewport height in pixels")
	countCmd.Flags().BoolVar(&interactive, "interactive", false, "interactive layout")

	rootCmd.AddCommand(waveCmd, themesCmd, presetsCmd, countCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return grid.Run(cfg)
}

// resolveConfig layers preset, config file, and CLI flags, in that order of
// increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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

	if cmd.Flags().Changed("theme") {
		cfg.Theme = themeName
	}
	if cmd.Flags().Changed("interactive") {
		cfg.Interactive = interactive
	}
	if cmd.Flags().Changed("expand") {
		cfg.Expand = expand
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("chars") {
		cfg.CharsFile = charsFile
	}
	if cmd.Flags().Changed("force-fonts") {
		cfg.Fonts.Load = forceFonts
	}
	if cmd.Flags().Changed("volume") {
		cfg.Audio.Volume = volume
	}
	if mute {
		cfg.Audio.Enabled = false
	}

	if cfg.Theme != "" && theme.GetTheme(cfg.Theme).Name != cfg.Theme {
		return nil, fmt.Errorf("unknown theme: %s (available: %v)", cfg.Theme, theme.ThemeNames())
	}
	return cfg, nil
}

func plotWave(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	curve := pulse.Curve(pulse.Config{
		Period:     cfg.Pulse.Period(),
		MinOpacity: cfg.Pulse.MinOpacity,
		MaxOpacity: cfg.Pulse.MaxOpacity,
	}, plotWidth)

	fmt.Println(asciigraph.Plot(curve,
		asciigraph.Height(plotHeight),
		asciigraph.Caption(fmt.Sprintf("one pulse cycle (%s, opacity %.2f-%.2f)",
			cfg.Pulse.Period(), cfg.Pulse.MinOpacity, cfg.Pulse.MaxOpacity)),
	))
	return nil
}

func listThemes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, t := range theme.Themes {
		swatch := lipgloss.NewStyle().Foreground(t.Main).Render("██")
		colors := string(t.Main)
		if t.Secondary != "" {
			swatch += lipgloss.NewStyle().Foreground(t.Secondary).Render("██")
			colors += " " + string(t.Secondary)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, swatch, colors)
	}
	return w.Flush()
}
