// Package telemetry aggregates per-window simulation statistics and writes
// them to CSV output.
package telemetry

import "github.com/pthm-cable/softies/systems"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for the current window
	bites  int
	safety systems.SafetyStats
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec/float64(dt) + 0.5)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// WindowTicks returns the number of ticks per stats window.
func (c *Collector) WindowTicks() int32 {
	return c.windowDurationTicks
}

// RecordBite records a successful feeding event.
func (c *Collector) RecordBite() {
	c.bites++
}

// RecordSafety accumulates one tick's safety-layer interventions.
func (c *Collector) RecordSafety(s systems.SafetyStats) {
	c.safety.SpeedClamps += s.SpeedClamps
	c.safety.BoundaryPushbacks += s.BoundaryPushbacks
	c.safety.CriticalResets += s.CriticalResets
	c.safety.StuckKicks += s.StuckKicks
	c.safety.SelfCollisionFixes += s.SelfCollisionFixes
	c.safety.FailsafeResets += s.FailsafeResets
}

// WindowComplete reports whether the window ending at tick is full.
func (c *Collector) WindowComplete(tick int32) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// Drain moves the window's event counters into stats and starts the next
// window at tick.
func (c *Collector) Drain(stats *WindowStats, tick int32) {
	stats.WindowStartTick = c.windowStartTick
	stats.WindowEndTick = tick
	stats.SimTimeSec = float64(tick) * float64(c.dt)

	stats.Bites = c.bites
	stats.SpeedClamps = c.safety.SpeedClamps
	stats.BoundaryPushbacks = c.safety.BoundaryPushbacks
	stats.CriticalResets = c.safety.CriticalResets
	stats.StuckKicks = c.safety.StuckKicks
	stats.SelfCollisionFixes = c.safety.SelfCollisionFixes
	stats.FailsafeResets = c.safety.FailsafeResets

	c.bites = 0
	c.safety = systems.SafetyStats{}
	c.windowStartTick = tick
}
