package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/san-kum/dpend/internal/audio"
	"github.com/san-kum/dpend/internal/audio/speaker"
	"github.com/san-kum/dpend/internal/config"
	"github.com/san-kum/dpend/internal/gui"
	"github.com/san-kum/dpend/internal/viz"
	"github.com/spf13/cobra"
)

var (
	themeName   string
	snapshotDir string
	pick        bool
	sound       bool
	winWidth    int
	winHeight   int
)

// startSound opens the speaker when --sound is set. Without an audio device
// the view runs silent.
func startSound() (*audio.Synth, func()) {
	if !sound {
		return nil, func() {}
	}
	synth := audio.NewSynth(audio.SampleRate)
	player, err := speaker.Start(synth)
	if err != nil {
		log.Warn("sound disabled", "err", err)
		return nil, func() {}
	}
	return synth, func() {
		if err := player.Close(); err != nil {
			log.Warn("closing audio", "err", err)
		}
	}
}

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "animate the pendulum in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	cmd.Flags().StringVar(&themeName, "theme", "", fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", ".", "directory for SVG snapshots")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu first")
	cmd.Flags().BoolVar(&sound, "sound", false, "play the bobs' motion as sound")
	return cmd
}

// liveOptions steps one frame of real time per tick unless --dt was given
// explicitly.
func liveOptions(cmd *cobra.Command, c *config.Config, title string, synth *audio.Synth) viz.Options {
	opts := viz.Options{
		FPS:         c.FPS,
		TrailLength: c.Trail,
		Theme:       themeName,
		SnapshotDir: snapshotDir,
		Title:       title,
		Synth:       synth,
	}
	if cmd.Flags().Changed("dt") {
		opts.Dt = c.Dt
	}
	return opts
}

func runLive(cmd *cobra.Command, args []string) error {
	synth, stop := startSound()
	defer stop()

	if pick {
		launch := func(name string) (viz.Model, error) {
			c := config.GetPreset(name)
			s, err := newSimulator(c, cfg.Integrator)
			if err != nil {
				return viz.Model{}, err
			}
			c.FPS, c.Trail = cfg.FPS, cfg.Trail
			return viz.NewModel(s, liveOptions(cmd, c, name, synth)), nil
		}
		return viz.Run(viz.NewPicker(config.ListPresets(), config.Descriptions, launch))
	}

	s, err := newSimulator(cfg, "")
	if err != nil {
		return err
	}
	title := "double pendulum"
	if preset != "" {
		title = preset
	}
	return viz.Run(viz.NewModel(s, liveOptions(cmd, cfg, title, synth)))
}

func newWindowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "animate the pendulum in a native window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSimulator(cfg, "")
			if err != nil {
				return err
			}
			synth, stop := startSound()
			defer stop()
			return gui.Run(s, gui.Options{
				Width:       winWidth,
				Height:      winHeight,
				FPS:         cfg.FPS,
				TrailLength: cfg.Trail,
				Synth:       synth,
			})
		},
	}
	cmd.Flags().IntVar(&winWidth, "width", gui.DefaultWidth, "window width in pixels")
	cmd.Flags().IntVar(&winHeight, "height", gui.DefaultHeight, "window height in pixels")
	cmd.Flags().BoolVar(&sound, "sound", false, "play the bobs' motion as sound")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list named starts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tθ1\tθ2\tm2\tg\tdt\tTIME\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%g\t%g\t%.5f\t%gs\t%s\n",
					name, p.InitState.Theta1, p.InitState.Theta2,
					p.Physics.M2, p.Physics.G, p.Dt, p.Duration,
					config.Descriptions[name])
			}
			return w.Flush()
		},
	}
}
