package entropy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"
)

// Config is the full declarative configuration accepted by Engine.ApplyConfig.
// Start from DefaultConfig when building one in code; the JSON and INI
// loaders do so automatically, so absent fields keep their defaults.
type Config struct {
	Canvas           CanvasConfig           `json:"canvas"`
	Particles        ParticlesConfig        `json:"particles"`
	InitialPositions InitialPositionsConfig `json:"initialPositions"`
	Listeners        ListenersConfig        `json:"listeners"`
	// Storage is optional. When nil nothing is written through, but
	// persisted positions are still loaded.
	Storage *StorageConfig `json:"storage,omitempty"`
}

// CanvasConfig describes the drawing surface.
type CanvasConfig struct {
	// ID scopes persisted positions. Engines sharing an ID share storage.
	ID string `json:"id"`
	// AppendTo names the host that creates the surface ("window",
	// "terminal", or any name passed to Engine.RegisterHost).
	AppendTo        string    `json:"appendTo"`
	BackgroundColor string    `json:"backgroundColor"`
	Size            Size      `json:"size"`
	Threshold       float64   `json:"threshold"`
	Smoothing       Smoothing `json:"smoothing,omitempty"`
}

// Size is a canvas size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Smoothing is the line smoothing hint handed to the surface.
type Smoothing string

const (
	SmoothingLow    Smoothing = "low"
	SmoothingMedium Smoothing = "medium"
	SmoothingHigh   Smoothing = "high"
)

// Antialias reports whether the hint asks for antialiased strokes.
func (s Smoothing) Antialias() bool {
	return s == SmoothingMedium || s == SmoothingHigh
}

// ParticlesConfig controls how particles are sampled. Every X/MaxX pair is an
// inclusive sampling range; a MaxX that is zero or not greater than X makes
// the attribute constant.
type ParticlesConfig struct {
	Quantity     int             `json:"quantity"`
	Velocity     float64         `json:"velocity"`
	MaxVelocity  float64         `json:"maxVelocity,omitempty"`
	Length       float64         `json:"length"`
	MaxLength    float64         `json:"maxLength,omitempty"`
	Size         float64         `json:"size"`
	MaxSize      float64         `json:"maxSize,omitempty"`
	Lifespan     float64         `json:"lifespan"`
	MaxLifespan  float64         `json:"maxLifespan,omitempty"`
	Color        ColorSpec       `json:"color"`
	SpreadFactor float64         `json:"spreadFactor"`
	Curvature    CurvatureConfig `json:"curvature"`
}

// CurvatureConfig controls the perpendicular steering term.
type CurvatureConfig struct {
	Amplitude float64   `json:"amplitude"`
	Frequency float64   `json:"frequency"`
	Curve     CurveMode `json:"curve"`
	// AxisCurve weights the steering term per axis. Nil means (1, 1).
	AxisCurve *Point `json:"axisCurve,omitempty"`
}

// InitialPositionsConfig seeds the registries when nothing is persisted.
type InitialPositionsConfig struct {
	Spawners []Point `json:"spawners,omitempty"`
	Targets  []Point `json:"targets,omitempty"`
}

// ListenersConfig binds keys to registry actions. Keys use DOM
// KeyboardEvent.key names ("Shift", "Control", "r").
type ListenersConfig struct {
	ResetPositions    string         `json:"resetPositions,omitempty"`
	DownloadPositions string         `json:"downloadPositions,omitempty"`
	Spawners          ListenerConfig `json:"spawners"`
	Targets           ListenerConfig `json:"targets"`
}

// ListenerConfig configures click placement for one registry.
type ListenerConfig struct {
	KeyboardTrigger string            `json:"keyboardTrigger,omitempty"`
	Identifier      *IdentifierConfig `json:"identifier,omitempty"`
}

// IdentifierConfig is the marker drawn at each registry point.
type IdentifierConfig struct {
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// StorageType selects the persistence scope written to.
type StorageType string

const (
	// StorageSession lives as long as the session store does.
	StorageSession StorageType = "sessionStorage"
	// StorageDurable survives restarts.
	StorageDurable StorageType = "localStorage"
)

// StorageConfig selects where and when registry mutations are persisted.
type StorageConfig struct {
	StorageType StorageType `json:"storageType"`
	// StoreNewPositions gates write-through for the programmatic API.
	StoreNewPositions StorePositions `json:"storeNewPositions"`
	// StoreListenersPositions gates write-through for click placement.
	StoreListenersPositions StorePositions `json:"storeListenersPositions"`
}

// StorePositions holds one flag per registry.
type StorePositions struct {
	Spawners bool `json:"spawners"`
	Targets  bool `json:"targets"`
}

// Default configuration values.
const (
	DefaultQuantity     = 2000
	DefaultSize         = 5
	DefaultVelocity     = 2
	DefaultLength       = 2
	DefaultLifespan     = 60
	DefaultSpreadFactor = 3
	DefaultThreshold    = 100
	DefaultAmplitude    = 5
	DefaultFrequency    = 0.1
	DefaultMarkerSize   = 4
)

// DefaultConfig returns a Config with every optional field at its default.
// The required canvas fields (appendTo, size, backgroundColor) are left empty.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{Threshold: DefaultThreshold},
		Particles: ParticlesConfig{
			Quantity:     DefaultQuantity,
			Velocity:     DefaultVelocity,
			Length:       DefaultLength,
			Size:         DefaultSize,
			Lifespan:     DefaultLifespan,
			SpreadFactor: DefaultSpreadFactor,
			Curvature: CurvatureConfig{
				Amplitude: DefaultAmplitude,
				Frequency: DefaultFrequency,
				Curve:     CurveSin(),
			},
		},
	}
}

// LoadConfig decodes a JSON configuration on top of DefaultConfig.
// Unknown fields are rejected.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a JSON configuration file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(data)
}

// clone returns a deep copy of c. Slices and pointers are not shared with
// the original.
func (c Config) clone() Config {
	out := c
	out.Particles.Color.Palette = slices.Clone(c.Particles.Color.Palette)
	if axis := c.Particles.Curvature.AxisCurve; axis != nil {
		a := *axis
		out.Particles.Curvature.AxisCurve = &a
	}
	out.InitialPositions.Spawners = slices.Clone(c.InitialPositions.Spawners)
	out.InitialPositions.Targets = slices.Clone(c.InitialPositions.Targets)
	out.Listeners.Spawners.Identifier = cloneIdentifier(c.Listeners.Spawners.Identifier)
	out.Listeners.Targets.Identifier = cloneIdentifier(c.Listeners.Targets.Identifier)
	if c.Storage != nil {
		st := *c.Storage
		out.Storage = &st
	}
	return out
}

func cloneIdentifier(id *IdentifierConfig) *IdentifierConfig {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

// MarshalIndent encodes the configuration as indented JSON.
func (c Config) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ColorSpec is the particle color setting: a single color, a palette, or
// random. In JSON it is a string, an array of strings, or null; the string
// "random" is equivalent to null.
type ColorSpec struct {
	Palette []string
}

// RandomColors is the ColorSpec that gives every particle a random color.
func RandomColors() ColorSpec { return ColorSpec{} }

// SingleColor is the ColorSpec for one fixed color.
func SingleColor(c string) ColorSpec { return ColorSpec{Palette: []string{c}} }

// PaletteColors is the ColorSpec that picks uniformly from colors.
func PaletteColors(colors ...string) ColorSpec { return ColorSpec{Palette: colors} }

// IsRandom reports whether every particle gets a random color.
func (s ColorSpec) IsRandom() bool { return len(s.Palette) == 0 }

func (s ColorSpec) MarshalJSON() ([]byte, error) {
	switch len(s.Palette) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(s.Palette[0])
	default:
		return json.Marshal(s.Palette)
	}
}

func (s *ColorSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		s.Palette = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var palette []string
		if err := json.Unmarshal(data, &palette); err != nil {
			return fmt.Errorf("color palette: %w", err)
		}
		s.Palette = palette
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if single == "" || single == "random" {
		s.Palette = nil
		return nil
	}
	s.Palette = []string{single}
	return nil
}

// CurveKind selects how the steering scalar is produced.
type CurveKind uint8

const (
	CurveKindSin      CurveKind = iota // sin(t*frequency + x*0.05) * amplitude
	CurveKindCos                       // cos(t*frequency + x*0.05) * amplitude
	CurveKindConstant                  // a literal value
)

// CurveMode is the curvature "curve" setting: "sin", "cos" or a number.
type CurveMode struct {
	Kind  CurveKind
	Value float64 // used by CurveKindConstant
}

// CurveSin returns the sine curve mode.
func CurveSin() CurveMode { return CurveMode{Kind: CurveKindSin} }

// CurveCos returns the cosine curve mode.
func CurveCos() CurveMode { return CurveMode{Kind: CurveKindCos} }

// CurveConstant returns a numeric curve mode.
func CurveConstant(v float64) CurveMode { return CurveMode{Kind: CurveKindConstant, Value: v} }

func (m CurveMode) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case CurveKindCos:
		return []byte(`"cos"`), nil
	case CurveKindConstant:
		return json.Marshal(m.Value)
	default:
		return []byte(`"sin"`), nil
	}
}

func (m *CurveMode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = CurveSin()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return m.parseName(s)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("curve: want number, \"sin\" or \"cos\": %w", err)
	}
	*m = CurveConstant(v)
	return nil
}

func (m *CurveMode) parseName(s string) error {
	switch s {
	case "sin", "":
		*m = CurveSin()
	case "cos":
		*m = CurveCos()
	default:
		return fmt.Errorf("curve: unknown mode %q", s)
	}
	return nil
}

// --- Resolved settings ---

// Canvas is the validated, immutable canvas description.
type Canvas struct {
	ID         string
	Host       string
	Width      float64
	Height     float64
	Background Color
	Smoothing  Smoothing
	Threshold  float64
}

// Bounds returns the canvas rectangle.
func (c Canvas) Bounds() Rect {
	return Rect{Width: c.Width, Height: c.Height}
}

// Curvature is the resolved steering configuration. It is live-tunable
// through Engine.Curvature.
type Curvature struct {
	Amplitude float64
	Frequency float64
	Mode      CurveMode
	Axis      Point
}

// ParticleSpec is the resolved per-particle sampling specification.
type ParticleSpec struct {
	Quantity     int
	Size         Range
	Velocity     Range
	Length       Range
	Lifespan     Range
	SpreadFactor float64
	// Palette is empty when colors are random.
	Palette []Color
	// FrozenVelocity is set when the configured base velocity is exactly 0.
	FrozenVelocity bool
}

// marker is the resolved identifier drawn for registry points.
type marker struct {
	color Color
	size  float64
}

// settings is a Config after validation.
type settings struct {
	canvas    Canvas
	spec      ParticleSpec
	curvature Curvature
	spawnerMk marker
	targetMk  marker
}

// pairRange builds the sampling range for a base/max pair.
func pairRange(base, maxV float64) Range {
	base = math.Abs(base)
	maxV = math.Abs(maxV)
	if maxV < base {
		maxV = base
	}
	return Range{Min: base, Max: maxV}
}

// validate checks c and resolves it into settings. It never has side effects.
func (c *Config) validate() (*settings, error) {
	var missing []string
	if c.Canvas.AppendTo == "" {
		missing = append(missing, "canvas.appendTo")
	}
	if c.Canvas.Size.Width <= 0 || c.Canvas.Size.Height <= 0 {
		missing = append(missing, "canvas.size")
	}
	if c.Canvas.BackgroundColor == "" {
		missing = append(missing, "canvas.backgroundColor")
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}

	bg, err := ParseColor(c.Canvas.BackgroundColor)
	if err != nil {
		return nil, &ConfigurationError{Reason: "canvas.backgroundColor", Err: err}
	}
	switch c.Canvas.Smoothing {
	case "", SmoothingLow, SmoothingMedium, SmoothingHigh:
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("canvas.smoothing: unknown value %q", c.Canvas.Smoothing)}
	}
	if c.Particles.Quantity < 0 {
		return nil, &ConfigurationError{Reason: "particles.quantity must not be negative"}
	}
	if c.Storage != nil {
		switch c.Storage.StorageType {
		case StorageSession, StorageDurable:
		default:
			return nil, &ConfigurationError{Reason: fmt.Sprintf("storage.storageType: unknown value %q", c.Storage.StorageType)}
		}
	}

	p := c.Particles
	s := &settings{
		canvas: Canvas{
			ID:         c.Canvas.ID,
			Host:       c.Canvas.AppendTo,
			Width:      c.Canvas.Size.Width,
			Height:     c.Canvas.Size.Height,
			Background: bg,
			Smoothing:  c.Canvas.Smoothing,
			Threshold:  c.Canvas.Threshold,
		},
		spec: ParticleSpec{
			Quantity:       p.Quantity,
			Size:           pairRange(p.Size, p.MaxSize),
			Velocity:       pairRange(p.Velocity, p.MaxVelocity),
			Length:         pairRange(p.Length, p.MaxLength),
			Lifespan:       pairRange(p.Lifespan, p.MaxLifespan),
			SpreadFactor:   p.SpreadFactor,
			FrozenVelocity: p.Velocity == 0,
		},
		curvature: Curvature{
			Amplitude: p.Curvature.Amplitude,
			Frequency: p.Curvature.Frequency,
			Mode:      p.Curvature.Curve,
			Axis:      Point{1, 1},
		},
	}
	if p.Curvature.AxisCurve != nil {
		s.curvature.Axis = *p.Curvature.AxisCurve
	}

	for i, name := range p.Color.Palette {
		col, err := ParseColor(name)
		if err != nil {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("particles.color[%d]", i), Err: err}
		}
		s.spec.Palette = append(s.spec.Palette, col)
	}

	if s.spawnerMk, err = resolveMarker(c.Listeners.Spawners.Identifier); err != nil {
		return nil, &ConfigurationError{Reason: "listeners.spawners.identifier", Err: err}
	}
	if s.targetMk, err = resolveMarker(c.Listeners.Targets.Identifier); err != nil {
		return nil, &ConfigurationError{Reason: "listeners.targets.identifier", Err: err}
	}
	return s, nil
}

func resolveMarker(id *IdentifierConfig) (marker, error) {
	m := marker{color: ColorTransparent, size: DefaultMarkerSize}
	if id == nil {
		return m, nil
	}
	if id.Color != "" {
		col, err := ParseColor(id.Color)
		if err != nil {
			return m, err
		}
		m.color = col
	}
	if id.Size > 0 {
		m.size = id.Size
	}
	return m, nil
}
