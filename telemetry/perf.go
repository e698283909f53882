package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step.
const (
	PhaseMetabolism = "metabolism"
	PhaseSnapshots  = "snapshots"
	PhaseBehavior   = "behavior"
	PhaseFeeding    = "feeding"
	PhaseForces     = "forces"
	PhasePhysics    = "physics"
	PhaseSafety     = "safety"
	PhaseTelemetry  = "telemetry"
)

// perfSample holds timing data for a single tick.
type perfSample struct {
	tickDuration time.Duration
	phases       map[string]time.Duration
}

// PerfCollector tracks step timing over a rolling window of ticks.
type PerfCollector struct {
	windowSize    int
	samples       []perfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a performance collector averaging over
// windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]perfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = perfSample{
		tickDuration: now.Sub(p.tickStart),
		phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated timing statistics over the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	// Phase percentages of total tick time
	PhasePct map[string]float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{PhasePct: make(map[string]float64)}
	}

	var total, minTick, maxTick time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.tickDuration
		if i == 0 || s.tickDuration < minTick {
			minTick = s.tickDuration
		}
		if s.tickDuration > maxTick {
			maxTick = s.tickDuration
		}
		for phase, dur := range s.phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)
	pct := make(map[string]float64)
	for phase, sum := range phaseSum {
		if avg > 0 {
			pct[phase] = float64(sum/time.Duration(p.sampleCount)) / float64(avg) * 100
		}
	}

	var ticksPerSec float64
	if avg > 0 {
		ticksPerSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgTickDuration: avg,
		MinTickDuration: minTick,
		MaxTickDuration: maxTick,
		TicksPerSecond:  ticksPerSec,
		PhasePct:        pct,
	}
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	MetabolismPct float64 `csv:"metabolism_pct"`
	SnapshotsPct  float64 `csv:"snapshots_pct"`
	BehaviorPct   float64 `csv:"behavior_pct"`
	FeedingPct    float64 `csv:"feeding_pct"`
	ForcesPct     float64 `csv:"forces_pct"`
	PhysicsPct    float64 `csv:"physics_pct"`
	SafetyPct     float64 `csv:"safety_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		MetabolismPct: s.PhasePct[PhaseMetabolism],
		SnapshotsPct:  s.PhasePct[PhaseSnapshots],
		BehaviorPct:   s.PhasePct[PhaseBehavior],
		FeedingPct:    s.PhasePct[PhaseFeeding],
		ForcesPct:     s.PhasePct[PhaseForces],
		PhysicsPct:    s.PhasePct[PhasePhysics],
		SafetyPct:     s.PhasePct[PhaseSafety],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("avg_tick", s.AvgTickDuration),
		slog.Duration("max_tick", s.MaxTickDuration),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	)
}
