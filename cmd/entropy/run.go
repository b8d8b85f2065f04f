package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/entropy"
	"github.com/phanxgames/entropy/term"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		terminal    bool
		scale       float64
		showFPS     bool
		title       string
		scriptPath  string
		screenshots string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the animation in a window or the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			e, err := opts.newEngine()
			if err != nil {
				return err
			}
			var script *entropy.ScriptRunner
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return err
				}
				if script, err = entropy.LoadInputScript(data); err != nil {
					return err
				}
			}
			if terminal {
				cfg.Canvas.AppendTo = term.Host
				return runTerminal(cmd.Context(), e, cfg, script)
			}
			if err := e.ApplyConfig(cfg); err != nil {
				return err
			}
			return entropy.Run(e, entropy.RunConfig{
				Title:         title,
				Scale:         scale,
				ShowFPS:       showFPS,
				Script:        script,
				ScreenshotDir: screenshots,
			})
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&terminal, "terminal", "t", false, "render in the terminal instead of a window")
	f.Float64Var(&scale, "scale", 1, "window scale")
	f.BoolVar(&showFPS, "fps", false, "show FPS in the window")
	f.StringVar(&title, "title", "entropy", "window title")
	f.StringVar(&scriptPath, "script", "", "JSON input script to replay")
	f.StringVar(&screenshots, "screenshots", entropy.DefaultScreenshotDir, "directory for script screenshots")
	return cmd
}

func runTerminal(ctx context.Context, e *entropy.Engine, cfg entropy.Config, script *entropy.ScriptRunner) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	term.Register(e, screen)
	if err := e.ApplyConfig(cfg); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	d := term.NewDriver(screen, e)
	if script != nil {
		d.SetScript(script)
	}
	return d.Run(ctx)
}
