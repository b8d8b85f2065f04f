package entropy

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"
)

// ExampleINIConfig is a complete INI configuration. Values containing '#' or
// ';' must be quoted, since both start comments.
const ExampleINIConfig = `[canvas]
id = space
appendTo = window
backgroundColor = "#0a0c12"
width = 960
height = 540
threshold = 190
smoothing = high

[particles]
quantity = 2000
length = 2
size = 1
maxSize = 5
velocity = 0.25
maxVelocity = 0.85
lifespan = 60
maxLifespan = 180
spreadFactor = 3
color = red
color = "#c30020"
color = indigo
color = purple
color = magenta

[curvature]
curve = 15
axisCurve = 30,5

[positions]
; spawner = 10,20
; target = 480,270

[listeners]
; Triggers are held while clicking. Use modifiers (Shift, Control, Alt,
; Meta) for the terminal host, which cannot hold other keys.
resetPositions = r
downloadPositions = d
spawnerTrigger = Control
targetTrigger = Shift

[storage]
storageType = localStorage
storeNewSpawners = true
storeNewTargets = true
storeListenerSpawners = true
storeListenerTargets = true
`

// iniFile mirrors Config in a shape gcfg can decode: one section per
// sub-tree, points as "x,y" strings, palettes as multi-valued variables.
type iniFile struct {
	Canvas struct {
		ID              string
		AppendTo        string
		BackgroundColor string
		Width           float64
		Height          float64
		Threshold       float64
		Smoothing       string
	}
	Particles struct {
		Quantity     int
		Velocity     float64
		MaxVelocity  float64
		Length       float64
		MaxLength    float64
		Size         float64
		MaxSize      float64
		Lifespan     float64
		MaxLifespan  float64
		SpreadFactor float64
		Color        []string
	}
	Curvature struct {
		Amplitude float64
		Frequency float64
		Curve     string
		AxisCurve string
	}
	Positions struct {
		Spawner []string
		Target  []string
	}
	Listeners struct {
		ResetPositions    string
		DownloadPositions string
		SpawnerTrigger    string
		TargetTrigger     string
		SpawnerColor      string
		SpawnerSize       float64
		TargetColor       string
		TargetSize        float64
	}
	Storage struct {
		StorageType           string
		StoreNewSpawners      bool
		StoreNewTargets       bool
		StoreListenerSpawners bool
		StoreListenerTargets  bool
	}
}

// LoadConfigINI decodes an INI configuration (see ExampleINIConfig) on top
// of DefaultConfig.
func LoadConfigINI(data string) (Config, error) {
	f := newINIFile()
	if err := gcfg.ReadStringInto(f, data); err != nil {
		return Config{}, fmt.Errorf("parse ini config: %w", err)
	}
	return f.toConfig()
}

// LoadConfigINIFile reads and decodes an INI configuration file.
func LoadConfigINIFile(path string) (Config, error) {
	f := newINIFile()
	if err := gcfg.ReadFileInto(f, path); err != nil {
		return Config{}, fmt.Errorf("parse ini config: %w", err)
	}
	return f.toConfig()
}

// newINIFile returns an iniFile holding the defaults. gcfg only assigns the
// variables present in the input.
func newINIFile() *iniFile {
	def := DefaultConfig()
	p := def.Particles
	f := &iniFile{}
	f.Canvas.Threshold = def.Canvas.Threshold
	f.Particles.Quantity = p.Quantity
	f.Particles.Velocity = p.Velocity
	f.Particles.Length = p.Length
	f.Particles.Size = p.Size
	f.Particles.Lifespan = p.Lifespan
	f.Particles.SpreadFactor = p.SpreadFactor
	f.Curvature.Amplitude = p.Curvature.Amplitude
	f.Curvature.Frequency = p.Curvature.Frequency
	return f
}

func (f *iniFile) toConfig() (Config, error) {
	cfg := DefaultConfig()
	cfg.Canvas = CanvasConfig{
		ID:              f.Canvas.ID,
		AppendTo:        f.Canvas.AppendTo,
		BackgroundColor: f.Canvas.BackgroundColor,
		Size:            Size{Width: f.Canvas.Width, Height: f.Canvas.Height},
		Threshold:       f.Canvas.Threshold,
		Smoothing:       Smoothing(f.Canvas.Smoothing),
	}

	fp := f.Particles
	cfg.Particles.Quantity = fp.Quantity
	cfg.Particles.Velocity = fp.Velocity
	cfg.Particles.MaxVelocity = fp.MaxVelocity
	cfg.Particles.Length = fp.Length
	cfg.Particles.MaxLength = fp.MaxLength
	cfg.Particles.Size = fp.Size
	cfg.Particles.MaxSize = fp.MaxSize
	cfg.Particles.Lifespan = fp.Lifespan
	cfg.Particles.MaxLifespan = fp.MaxLifespan
	cfg.Particles.SpreadFactor = fp.SpreadFactor
	cfg.Particles.Color = PaletteColors(fp.Color...)
	if len(fp.Color) == 1 && fp.Color[0] == "random" {
		cfg.Particles.Color = RandomColors()
	}

	fc := f.Curvature
	cfg.Particles.Curvature.Amplitude = fc.Amplitude
	cfg.Particles.Curvature.Frequency = fc.Frequency
	if fc.Curve != "" {
		if v, err := strconv.ParseFloat(fc.Curve, 64); err == nil {
			cfg.Particles.Curvature.Curve = CurveConstant(v)
		} else if err := cfg.Particles.Curvature.Curve.parseName(fc.Curve); err != nil {
			return Config{}, err
		}
	}
	if fc.AxisCurve != "" {
		axis, err := parsePoint(fc.AxisCurve)
		if err != nil {
			return Config{}, fmt.Errorf("curvature.axisCurve: %w", err)
		}
		cfg.Particles.Curvature.AxisCurve = &axis
	}

	for _, s := range f.Positions.Spawner {
		pt, err := parsePoint(s)
		if err != nil {
			return Config{}, fmt.Errorf("positions.spawner: %w", err)
		}
		cfg.InitialPositions.Spawners = append(cfg.InitialPositions.Spawners, pt)
	}
	for _, s := range f.Positions.Target {
		pt, err := parsePoint(s)
		if err != nil {
			return Config{}, fmt.Errorf("positions.target: %w", err)
		}
		cfg.InitialPositions.Targets = append(cfg.InitialPositions.Targets, pt)
	}

	fl := f.Listeners
	cfg.Listeners = ListenersConfig{
		ResetPositions:    fl.ResetPositions,
		DownloadPositions: fl.DownloadPositions,
		Spawners:          ListenerConfig{KeyboardTrigger: fl.SpawnerTrigger, Identifier: identifier(fl.SpawnerColor, fl.SpawnerSize)},
		Targets:           ListenerConfig{KeyboardTrigger: fl.TargetTrigger, Identifier: identifier(fl.TargetColor, fl.TargetSize)},
	}

	if fs := f.Storage; fs.StorageType != "" {
		cfg.Storage = &StorageConfig{
			StorageType:             StorageType(fs.StorageType),
			StoreNewPositions:       StorePositions{Spawners: fs.StoreNewSpawners, Targets: fs.StoreNewTargets},
			StoreListenersPositions: StorePositions{Spawners: fs.StoreListenerSpawners, Targets: fs.StoreListenerTargets},
		}
	}
	return cfg, nil
}

func identifier(color string, size float64) *IdentifierConfig {
	if color == "" && size == 0 {
		return nil
	}
	return &IdentifierConfig{Color: color, Size: size}
}

// parsePoint parses "x,y".
func parsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return Point{x, y}, nil
}
