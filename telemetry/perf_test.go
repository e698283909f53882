package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(10)
	stats := p.Stats()
	if stats.AvgTickDuration != 0 {
		t.Errorf("AvgTickDuration = %v, want 0", stats.AvgTickDuration)
	}
	if stats.TicksPerSecond != 0 {
		t.Errorf("TicksPerSecond = %v, want 0", stats.TicksPerSecond)
	}
}

func TestPerfCollectorRecordsTicks(t *testing.T) {
	p := NewPerfCollector(10)

	for i := 0; i < 3; i++ {
		p.StartTick()
		p.StartPhase(PhasePhysics)
		time.Sleep(time.Millisecond)
		p.EndTick()
	}

	stats := p.Stats()
	if stats.AvgTickDuration < time.Millisecond {
		t.Errorf("AvgTickDuration = %v, want >= 1ms", stats.AvgTickDuration)
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("MinTickDuration %v > MaxTickDuration %v",
			stats.MinTickDuration, stats.MaxTickDuration)
	}
	if stats.TicksPerSecond <= 0 {
		t.Errorf("TicksPerSecond = %v, want > 0", stats.TicksPerSecond)
	}
	if pct := stats.PhasePct[PhasePhysics]; pct <= 0 {
		t.Errorf("PhasePct[physics] = %v, want > 0", pct)
	}
}

func TestPerfCollectorWindowWraps(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 10; i++ {
		p.StartTick()
		p.EndTick()
	}

	if p.sampleCount != 4 {
		t.Errorf("sampleCount = %d, want 4", p.sampleCount)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 500 * time.Microsecond,
		MinTickDuration: 200 * time.Microsecond,
		MaxTickDuration: 900 * time.Microsecond,
		TicksPerSecond:  2000,
		PhasePct: map[string]float64{
			PhasePhysics:  60,
			PhaseBehavior: 25,
		},
	}

	row := stats.ToCSV(600)
	if row.WindowEnd != 600 {
		t.Errorf("WindowEnd = %d, want 600", row.WindowEnd)
	}
	if row.AvgTickUS != 500 {
		t.Errorf("AvgTickUS = %d, want 500", row.AvgTickUS)
	}
	if row.PhysicsPct != 60 {
		t.Errorf("PhysicsPct = %v, want 60", row.PhysicsPct)
	}
	if row.BehaviorPct != 25 {
		t.Errorf("BehaviorPct = %v, want 25", row.BehaviorPct)
	}
	if row.MetabolismPct != 0 {
		t.Errorf("MetabolismPct = %v, want 0", row.MetabolismPct)
	}
}
