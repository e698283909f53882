// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Snake      SnakeConfig      `yaml:"snake"`
	Plankton   PlanktonConfig   `yaml:"plankton"`
	Safety     SafetyConfig     `yaml:"safety"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the simulation world dimensions.
// All world quantities are in meters; PixelsPerMeter maps them to screen space.
type WorldConfig struct {
	WidthMeters    float64 `yaml:"width_meters"`
	HeightMeters   float64 `yaml:"height_meters"`
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
	WallThickness  float64 `yaml:"wall_thickness"` // meters
	GravityY       float64 `yaml:"gravity_y"`      // m/s^2, negative = down

	// Light zone: vertical band where photosynthetic feeding works.
	// Fractions of world height measured from the floor (0 = floor, 1 = ceiling).
	LightZoneBottom float64 `yaml:"light_zone_bottom"`
	LightZoneTop    float64 `yaml:"light_zone_top"`
}

// PhysicsConfig holds solver parameters.
type PhysicsConfig struct {
	DT              float64 `yaml:"dt"`
	JointIterations int     `yaml:"joint_iterations"`
}

// AttributesConfig holds the metabolic profile of a species.
type AttributesConfig struct {
	MaxEnergy          float64  `yaml:"max_energy"`
	EnergyRecoveryRate float64  `yaml:"energy_recovery_rate"` // energy per second while resting
	MaxSatiety         float64  `yaml:"max_satiety"`
	MetabolicRate      float64  `yaml:"metabolic_rate"` // satiety lost per second
	Size               float64  `yaml:"size"`
	Diet               string   `yaml:"diet"` // herbivore | carnivore | omnivore
	PreyTags           []string `yaml:"prey_tags"`
	SelfTags           []string `yaml:"self_tags"`
}

// StateGainsConfig holds per-state actuation multipliers.
type StateGainsConfig struct {
	Amplitude  float64 `yaml:"amplitude"`
	Frequency  float64 `yaml:"frequency"`
	EnergyCost float64 `yaml:"energy_cost"`
}

// SnakeConfig holds snake morphology and locomotion parameters.
type SnakeConfig struct {
	SegmentCount   int     `yaml:"segment_count"`
	SegmentRadius  float64 `yaml:"segment_radius"`  // meters
	SegmentSpacing float64 `yaml:"segment_spacing"` // meters
	Density        float64 `yaml:"density"`
	Restitution    float64 `yaml:"restitution"`
	Friction       float64 `yaml:"friction"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
	MotorMaxForce  float64 `yaml:"motor_max_force"`

	// Traveling-wave controller
	WaveAmplitude    float64 `yaml:"wave_amplitude"`     // rad/s peak motor target
	MaxMotorVelocity float64 `yaml:"max_motor_velocity"` // rad/s hard clamp on any motor target
	FrequencyCount   float64 `yaml:"frequency_count"`    // waves along the body
	PhaseRate        float64 `yaml:"phase_rate"`         // phase accumulation per second
	BaseEnergyCost   float64 `yaml:"base_energy_cost"`

	// Feeding
	BiteRange   float64 `yaml:"bite_range"`   // meters from the head
	BiteSatiety float64 `yaml:"bite_satiety"` // satiety gained per bite

	// Head steering
	SteerForce     float64 `yaml:"steer_force"`
	ThrustForce    float64 `yaml:"thrust_force"`
	MaxSpeed       float64 `yaml:"max_speed"` // m/s linear cap on the head
	WanderInterval float64 `yaml:"wander_interval"`
	WanderReach    float64 `yaml:"wander_reach"` // meters, target considered reached

	// State thresholds (fractions of max energy)
	RestExitFrac  float64 `yaml:"rest_exit_frac"`
	SeekEnterFrac float64 `yaml:"seek_enter_frac"`
	SeekExitFrac  float64 `yaml:"seek_exit_frac"`

	// Per-state actuation gains
	Wandering StateGainsConfig `yaml:"wandering"`
	Seeking   StateGainsConfig `yaml:"seeking"`
	Fleeing   StateGainsConfig `yaml:"fleeing"`
	Idle      StateGainsConfig `yaml:"idle"`

	// Anisotropic drag coefficients and buoyancy (N per segment, upward)
	ForwardDrag float64 `yaml:"forward_drag"`
	LateralDrag float64 `yaml:"lateral_drag"`
	Buoyancy    float64 `yaml:"buoyancy"`

	Attributes AttributesConfig `yaml:"attributes"`
}

// PlanktonConfig holds plankton morphology and flocking parameters.
type PlanktonConfig struct {
	PrimaryRadius   float64 `yaml:"primary_radius"`   // meters
	SecondaryRadius float64 `yaml:"secondary_radius"` // meters
	Spacing         float64 `yaml:"spacing"`          // meters between the two segments
	Density         float64 `yaml:"density"`
	Restitution     float64 `yaml:"restitution"`
	Friction        float64 `yaml:"friction"`
	LinearDamping   float64 `yaml:"linear_damping"`
	AngularDamping  float64 `yaml:"angular_damping"`
	JointMaxForce   float64 `yaml:"joint_max_force"` // loose tail joint

	// Boid steering
	PerceptionRadius   float64 `yaml:"perception_radius"`
	CohesionStrength   float64 `yaml:"cohesion_strength"`
	AlignmentStrength  float64 `yaml:"alignment_strength"`
	SeparationStrength float64 `yaml:"separation_strength"`
	SeparationDistance float64 `yaml:"separation_distance"`
	BoidImpulse        float64 `yaml:"boid_impulse"` // scale applied to the combined steering vector

	// Buoyancy and damping
	RiseForce       float64 `yaml:"rise_force"`
	SinkForce       float64 `yaml:"sink_force"`
	BobForce        float64 `yaml:"bob_force"`
	BobRate         float64 `yaml:"bob_rate"`
	VelocityDamping float64 `yaml:"velocity_damping"`
	SafeSpeed       float64 `yaml:"safe_speed"`
	AdaptiveDamping float64 `yaml:"adaptive_damping"`

	// Photosynthesis: energy gained per second inside the light zone
	// while seeking, capped at LightGainCapFrac of max energy.
	LightGainRate    float64 `yaml:"light_gain_rate"`
	LightGainCapFrac float64 `yaml:"light_gain_cap_frac"`

	// State thresholds (fractions of max energy)
	RestExitFrac  float64 `yaml:"rest_exit_frac"`
	SeekEnterFrac float64 `yaml:"seek_enter_frac"`
	SeekExitFrac  float64 `yaml:"seek_exit_frac"`

	Attributes AttributesConfig `yaml:"attributes"`
}

// SafetyConfig holds recovery-layer parameters.
type SafetyConfig struct {
	BoundsMargin        float64 `yaml:"bounds_margin"`    // meters inside the walls
	CriticalMargin      float64 `yaml:"critical_margin"`  // meters, closer than this to a wall triggers a full reset
	RestoreForce        float64 `yaml:"restore_force"`    // push-back per meter of violation
	BoundaryDamping     float64 `yaml:"boundary_damping"` // velocity scale while out of bounds
	StuckWindowTicks    int     `yaml:"stuck_window_ticks"`
	StuckMinDisplace    float64 `yaml:"stuck_min_displacement"` // meters over the window
	SelfCollisionFactor float64 `yaml:"self_collision_factor"`  // multiple of segment radius
	FailsafeTolerance   float64 `yaml:"failsafe_tolerance"`     // meters beyond the walls
	MaxSpeed            float64 `yaml:"max_speed"`              // m/s hard cap on any segment
}

// PopulationConfig holds initial population counts.
type PopulationConfig struct {
	Snakes   int `yaml:"snakes"`
	Plankton int `yaml:"plankton"`
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per aggregation window
	LogStats    bool    `yaml:"log_stats"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32          float32 // Physics.DT as float32
	WorldW32      float32 // world width in meters
	WorldH32      float32 // world height in meters
	HalfW32       float32
	HalfH32       float32
	PPM32         float32 // pixels per meter
	LightZoneTopY float32 // world-space y of the light zone upper edge
	LightZoneBotY float32 // world-space y of the light zone lower edge
	WindowTicks   int     // telemetry window length in ticks
	ScreenW32     float32
	ScreenH32     float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// WriteYAML saves the current configuration to a file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.WorldW32 = float32(c.World.WidthMeters)
	c.Derived.WorldH32 = float32(c.World.HeightMeters)
	c.Derived.HalfW32 = c.Derived.WorldW32 / 2
	c.Derived.HalfH32 = c.Derived.WorldH32 / 2
	c.Derived.PPM32 = float32(c.World.PixelsPerMeter)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Light zone fractions are measured from the floor; world y runs from
	// -halfH at the floor to +halfH at the ceiling.
	c.Derived.LightZoneBotY = -c.Derived.HalfH32 + float32(c.World.LightZoneBottom)*c.Derived.WorldH32
	c.Derived.LightZoneTopY = -c.Derived.HalfH32 + float32(c.World.LightZoneTop)*c.Derived.WorldH32

	if c.Physics.DT > 0 {
		c.Derived.WindowTicks = int(c.Telemetry.StatsWindow / c.Physics.DT)
	}
	if c.Derived.WindowTicks < 1 {
		c.Derived.WindowTicks = 1
	}
}
