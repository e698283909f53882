package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Update runs one or more simulation steps based on speed setting.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.speed; i++ {
		g.Step()
	}
}

// UpdateHeadless runs simulation steps without any input or rendering.
func (g *Game) UpdateHeadless() {
	steps := g.opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		g.Step()
	}
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.speed > 1 {
		g.speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.speed < 10 {
		g.speed++
	}

	// Single-step while paused
	if g.paused && rl.IsKeyPressed(rl.KeyS) {
		g.Step()
	}
}
