package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/entropy"
)

func newExampleConfigCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:       "example-config",
		Short:     "Print an example configuration",
		ValidArgs: []string{"ini", "json"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "ini":
				fmt.Fprint(cmd.OutOrStdout(), entropy.ExampleINIConfig)
				return nil
			case "json":
				data, err := exampleConfig().MarshalIndent()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			return fmt.Errorf("unknown format %q (want ini or json)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "ini", "ini or json")
	return cmd
}

func exampleConfig() entropy.Config {
	cfg := entropy.DefaultConfig()
	cfg.Canvas = entropy.CanvasConfig{
		ID:              "galaxy",
		AppendTo:        entropy.HostWindow,
		BackgroundColor: "#000000",
		Size:            entropy.Size{Width: 960, Height: 540},
		Threshold:       entropy.DefaultThreshold,
		Smoothing:       entropy.SmoothingHigh,
	}
	cfg.Particles.Quantity = 1500
	cfg.Particles.Size = 1
	cfg.Particles.MaxSize = 3
	cfg.Particles.MaxVelocity = 4
	cfg.Particles.Color = entropy.PaletteColors("white", "#8ab4ff", "#ffd28a")
	cfg.Particles.Curvature.Curve = entropy.CurveCos()
	cfg.InitialPositions = entropy.InitialPositionsConfig{
		Spawners: []entropy.Point{{X: 480, Y: 270}},
		Targets:  []entropy.Point{{X: 120, Y: 90}, {X: 840, Y: 450}},
	}
	cfg.Listeners = entropy.ListenersConfig{
		ResetPositions:    "r",
		DownloadPositions: "d",
		Spawners:          entropy.ListenerConfig{KeyboardTrigger: entropy.KeyControl, Identifier: &entropy.IdentifierConfig{Color: "lime"}},
		Targets:           entropy.ListenerConfig{KeyboardTrigger: entropy.KeyShift, Identifier: &entropy.IdentifierConfig{Color: "red"}},
	}
	cfg.Storage = &entropy.StorageConfig{
		StorageType:             entropy.StorageDurable,
		StoreNewPositions:       entropy.StorePositions{Spawners: true, Targets: true},
		StoreListenersPositions: entropy.StorePositions{Spawners: true, Targets: true},
	}
	return cfg
}
