package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/olivierh59500/particle-field-go/surface"
)

// ErrInvalidProfile is returned (wrapped) when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

// Range is a closed interval used both for randomised parameters and bounds.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) pick(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Swirl adds a rotating tangential term to the attraction force so particles
// orbit the pointer instead of approaching it head on.
type Swirl struct {
	Enabled   bool    `json:"enabled"`
	Gain      float64 `json:"gain"`
	PhaseStep float64 `json:"phase_step"`
}

// Drift pushes particles along a slowly evolving perlin flow field.
// A zero Gain disables it.
type Drift struct {
	Gain     float64 `json:"gain"`
	Scale    float64 `json:"scale"`
	TimeStep float64 `json:"time_step"`
}

// Profile is a named set of tuning constants for the field.
type Profile struct {
	Name  string `json:"name"`
	Count int    `json:"count"`

	// Proximity lines
	MaxDistance   float64 `json:"max_distance"`
	LineWidth     float64 `json:"line_width"`
	GridThreshold int     `json:"grid_threshold"` // particle count from which edges use the grid; 0 = never

	// Pointer interaction
	AttractRadius   float64 `json:"attract_radius"`
	AttractGain     float64 `json:"attract_gain"`
	Swirl           Swirl   `json:"swirl"`
	CollapseRadius  float64 `json:"collapse_radius"` // 0 disables respawn
	SpawnClearance  float64 `json:"spawn_clearance"`
	ImpulseStrength float64 `json:"impulse_strength"`

	// Per-particle parameters drawn at spawn
	Friction       Range   `json:"friction"`
	MaxSpeed       Range   `json:"max_speed"`
	Size           Range   `json:"size"`
	InitialSpeed   float64 `json:"initial_speed"`
	Opacity        Range   `json:"opacity"`
	TwinkleOpacity Range   `json:"twinkle_opacity"`
	TwinkleChance  float64 `json:"twinkle_chance"`
	TwinkleStep    float64 `json:"twinkle_step"`

	Drift Drift         `json:"drift"`
	Color surface.Color `json:"color"`
}

// Ambient is the sparse profile: slow drift, strong damping, no respawn.
func Ambient() Profile {
	return Profile{
		Name:            "ambient",
		Count:           150,
		MaxDistance:     130,
		LineWidth:       0.8,
		GridThreshold:   400,
		AttractRadius:   300,
		AttractGain:     0.02,
		ImpulseStrength: 15,
		Friction:        Range{0.95, 0.95},
		MaxSpeed:        Range{14, 18},
		Size:            Range{1, 3},
		InitialSpeed:    1,
		Opacity:         Range{0.3, 0.9},
		TwinkleOpacity:  Range{0.3, 0.9},
		TwinkleChance:   0.25,
		TwinkleStep:     0.05,
		Color:           surface.Accent,
	}
}

// Swarm is the dense profile: particles orbit the pointer, collapse onto it
// and respawn away from it. Damping is much weaker to keep them travelling.
func Swarm() Profile {
	return Profile{
		Name:            "swarm",
		Count:           550,
		MaxDistance:     80,
		LineWidth:       0.8,
		GridThreshold:   400,
		AttractRadius:   200,
		AttractGain:     0.01,
		Swirl:           Swirl{Enabled: true, Gain: 60, PhaseStep: 0.05},
		CollapseRadius:  40,
		SpawnClearance:  200,
		ImpulseStrength: 15,
		Friction:        Range{0.985, 0.995},
		MaxSpeed:        Range{2, 6},
		Size:            Range{0.8, 2.2},
		InitialSpeed:    2,
		Opacity:         Range{0.3, 0.9},
		TwinkleOpacity:  Range{0.2, 1},
		TwinkleChance:   0.2,
		TwinkleStep:     0.05,
		Color:           surface.Accent,
	}
}

// Drifting is the ambient field carried along a perlin flow.
func Drifting() Profile {
	p := Ambient()
	p.Name = "drift"
	p.Count = 220
	p.MaxDistance = 110
	p.AttractRadius = 250
	p.AttractGain = 0.01
	p.Friction = Range{0.97, 0.97}
	p.MaxSpeed = Range{1.5, 3}
	p.Drift = Drift{Gain: 0.05, Scale: 0.004, TimeStep: 0.003}
	return p
}

var builtins = map[string]func() Profile{
	"ambient": Ambient,
	"swarm":   Swarm,
	"drift":   Drifting,
}

// Builtin returns the built-in profile with the given name.
func Builtin(name string) (Profile, bool) {
	f, ok := builtins[name]
	if !ok {
		return Profile{}, false
	}
	return f(), true
}

// BuiltinNames lists the built-in profiles in a stable order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports every field that would break the simulation invariants.
func (p Profile) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidProfile}, args...)...))
	}

	if p.Count <= 0 {
		bad("count must be positive, got %d", p.Count)
	}
	if p.MaxDistance < 0 {
		bad("max_distance must not be negative, got %g", p.MaxDistance)
	}
	if p.LineWidth <= 0 {
		bad("line_width must be positive, got %g", p.LineWidth)
	}
	if p.AttractRadius < 0 || p.CollapseRadius < 0 || p.SpawnClearance < 0 {
		bad("radii must not be negative")
	}
	if p.ImpulseStrength < 0 {
		bad("impulse_strength must not be negative, got %g", p.ImpulseStrength)
	}
	if p.Friction.Min <= 0 || p.Friction.Max > 1 || p.Friction.Min > p.Friction.Max {
		bad("friction must be an interval within (0,1], got [%g,%g]", p.Friction.Min, p.Friction.Max)
	}
	if p.MaxSpeed.Min <= 0 || p.MaxSpeed.Min > p.MaxSpeed.Max {
		bad("max_speed must be a positive interval, got [%g,%g]", p.MaxSpeed.Min, p.MaxSpeed.Max)
	}
	if p.Size.Min <= 0 || p.Size.Min > p.Size.Max {
		bad("size must be a positive interval, got [%g,%g]", p.Size.Min, p.Size.Max)
	}
	for _, r := range []struct {
		name string
		r    Range
	}{{"opacity", p.Opacity}, {"twinkle_opacity", p.TwinkleOpacity}} {
		if r.r.Min < 0 || r.r.Max > 1 || r.r.Min > r.r.Max {
			bad("%s must be an interval within [0,1], got [%g,%g]", r.name, r.r.Min, r.r.Max)
		}
	}
	if p.TwinkleChance < 0 || p.TwinkleChance > 1 {
		bad("twinkle_chance must be within [0,1], got %g", p.TwinkleChance)
	}
	if p.Drift.Gain < 0 || p.Drift.Scale < 0 {
		bad("drift gain and scale must not be negative")
	}
	return errors.Join(errs...)
}

// LoadProfile reads a JSON profile. Fields absent from the file keep the
// values of the built-in profile named by "base" (ambient when omitted).
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (Profile, error) {
	var head struct {
		Base string `json:"base"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if head.Base == "" {
		head.Base = "ambient"
	}
	p, ok := Builtin(head.Base)
	if !ok {
		return Profile{}, fmt.Errorf("%w: unknown base profile %q", ErrInvalidProfile, head.Base)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// ResolveProfile loads the profile file at path when given, otherwise the
// named built-in.
func ResolveProfile(name, path string) (Profile, error) {
	if path != "" {
		return LoadProfile(path)
	}
	p, ok := Builtin(name)
	if !ok {
		return Profile{}, fmt.Errorf("%w: unknown profile %q (have %v)", ErrInvalidProfile, name, BuiltinNames())
	}
	return p, nil
}
