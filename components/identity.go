package components

// Identity names a creature for snapshots, telemetry, and rendering.
// IDs are assigned at spawn and never reused within a run.
type Identity struct {
	ID       uint32
	TypeName string
}
