package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	SnakeCount    int `csv:"snakes"`
	PlanktonCount int `csv:"plankton"`

	// State occupancy at window end
	IdleCount      int `csv:"idle"`
	WanderingCount int `csv:"wandering"`
	RestingCount   int `csv:"resting"`
	SeekingCount   int `csv:"seeking"`
	FleeingCount   int `csv:"fleeing"`

	// Events during the window
	Bites              int `csv:"bites"`
	SpeedClamps        int `csv:"speed_clamps"`
	BoundaryPushbacks  int `csv:"boundary_pushbacks"`
	CriticalResets     int `csv:"critical_resets"`
	StuckKicks         int `csv:"stuck_kicks"`
	SelfCollisionFixes int `csv:"self_collision_fixes"`
	FailsafeResets     int `csv:"failsafe_resets"`

	// Energy distribution (sampled at window end)
	SnakeEnergyMean float64 `csv:"snake_energy_mean"`
	SnakeEnergyP10  float64 `csv:"snake_energy_p10"`
	SnakeEnergyP50  float64 `csv:"snake_energy_p50"`
	SnakeEnergyP90  float64 `csv:"snake_energy_p90"`

	PlanktonEnergyMean float64 `csv:"plankton_energy_mean"`
	PlanktonEnergyP10  float64 `csv:"plankton_energy_p10"`
	PlanktonEnergyP50  float64 `csv:"plankton_energy_p50"`
	PlanktonEnergyP90  float64 `csv:"plankton_energy_p90"`

	// Satiety distribution
	SnakeSatietyMean    float64 `csv:"snake_satiety_mean"`
	SnakeSatietyStd     float64 `csv:"snake_satiety_std"`
	PlanktonSatietyMean float64 `csv:"plankton_satiety_mean"`
	PlanktonSatietyStd  float64 `csv:"plankton_satiety_std"`
}

// DistStats summarizes one sampled distribution.
type DistStats struct {
	Mean, Std, P10, P50, P90 float64
}

// ComputeDistStats computes mean, standard deviation, and percentiles of
// the given samples. Returns zeros for an empty sample set.
func ComputeDistStats(values []float64) DistStats {
	if len(values) == 0 {
		return DistStats{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return DistStats{
		Mean: stat.Mean(sorted, nil),
		Std:  stat.StdDev(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("snakes", s.SnakeCount),
		slog.Int("plankton", s.PlanktonCount),
		slog.Int("idle", s.IdleCount),
		slog.Int("wandering", s.WanderingCount),
		slog.Int("resting", s.RestingCount),
		slog.Int("seeking", s.SeekingCount),
		slog.Int("fleeing", s.FleeingCount),
		slog.Int("bites", s.Bites),
		slog.Int("speed_clamps", s.SpeedClamps),
		slog.Int("boundary_pushbacks", s.BoundaryPushbacks),
		slog.Int("critical_resets", s.CriticalResets),
		slog.Int("stuck_kicks", s.StuckKicks),
		slog.Int("self_collision_fixes", s.SelfCollisionFixes),
		slog.Int("failsafe_resets", s.FailsafeResets),
		slog.Float64("snake_energy_mean", s.SnakeEnergyMean),
		slog.Float64("snake_energy_p50", s.SnakeEnergyP50),
		slog.Float64("plankton_energy_mean", s.PlanktonEnergyMean),
		slog.Float64("plankton_energy_p50", s.PlanktonEnergyP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
