package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/entropy"
)

// hostHeadless is registered by the commands that never draw.
const hostHeadless = "headless"

type options struct {
	config    string
	store     string
	spawners  string
	targets   string
	debug     bool
	noPersist bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "entropy",
		Short:         "Procedural particle animations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.config, "config", "c", "", "configuration file (.json or .ini)")
	pf.StringVar(&opts.store, "store", "", "durable position store (default: user config dir)")
	pf.StringVar(&opts.spawners, "spawners", "", "table of initial spawner positions (x y per line)")
	pf.StringVar(&opts.targets, "targets", "", "table of initial target positions (x y per line)")
	pf.BoolVar(&opts.debug, "debug", false, "log per-frame stats to stderr")
	pf.BoolVar(&opts.noPersist, "no-persist", false, "keep durable positions in memory only")

	root.AddCommand(
		newRunCmd(opts),
		newExportCmd(opts),
		newResetCmd(opts),
		newExampleConfigCmd(),
	)
	return root
}

// loadConfig reads the configuration file, choosing the decoder by
// extension, and overlays the position tables.
func (o *options) loadConfig() (entropy.Config, error) {
	if o.config == "" {
		return entropy.Config{}, fmt.Errorf("no configuration file; pass --config")
	}
	var (
		cfg entropy.Config
		err error
	)
	switch strings.ToLower(filepath.Ext(o.config)) {
	case ".ini", ".cfg", ".gcfg":
		cfg, err = entropy.LoadConfigINIFile(o.config)
	default:
		cfg, err = entropy.LoadConfigFile(o.config)
	}
	if err != nil {
		return entropy.Config{}, err
	}
	if o.spawners != "" {
		if cfg.InitialPositions.Spawners, err = entropy.ReadPointTable(o.spawners); err != nil {
			return entropy.Config{}, err
		}
	}
	if o.targets != "" {
		if cfg.InitialPositions.Targets, err = entropy.ReadPointTable(o.targets); err != nil {
			return entropy.Config{}, err
		}
	}
	return cfg, nil
}

// newEngine creates an engine whose durable scope is the file store.
func (o *options) newEngine() (*entropy.Engine, error) {
	e := entropy.NewEngine()
	e.SetDebugMode(o.debug)
	e.RegisterHost(hostHeadless, func(entropy.Canvas) (entropy.Surface, error) {
		return discard{}, nil
	})
	if o.noPersist {
		return e, nil
	}
	path := o.store
	if path == "" {
		var err error
		if path, err = entropy.DefaultStorePath(); err != nil {
			return nil, err
		}
	}
	durable, err := entropy.OpenFileStore(path)
	if err != nil {
		return nil, err
	}
	e.SetStores(entropy.NewMemoryStore(), durable)
	return e, nil
}

// configureHeadless applies cfg on the headless host.
func (o *options) configureHeadless() (*entropy.Engine, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	e, err := o.newEngine()
	if err != nil {
		return nil, err
	}
	cfg.Canvas.AppendTo = hostHeadless
	if err := e.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

type discard struct{}

func (discard) Clear(entropy.Color)                                             {}
func (discard) StrokeLine(entropy.Point, entropy.Point, float64, entropy.Color) {}
func (discard) FillRect(entropy.Rect, entropy.Color)                            {}
func (discard) FillText(string, entropy.Point, entropy.Color)                   {}
