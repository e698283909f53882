package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/physics"
)

// toScreen converts world coordinates (meters, y up, origin at center) to
// screen coordinates (pixels, y down, origin at top-left).
func (g *Game) toScreen(p physics.Vec2) rl.Vector2 {
	d := &g.cfg.Derived
	return rl.Vector2{
		X: d.ScreenW32/2 + p.X*d.PPM32,
		Y: d.ScreenH32/2 - p.Y*d.PPM32,
	}
}

// Draw renders the game.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(8, 18, 34, 255))

	g.drawLightZone()
	g.drawWalls()
	g.drawCreatures()
	g.drawHUD()

	rl.EndDrawing()
}

// drawLightZone renders the photosynthesis band as a translucent overlay.
func (g *Game) drawLightZone() {
	d := &g.cfg.Derived
	top := g.toScreen(physics.Vec2{X: -d.HalfW32, Y: d.LightZoneTopY})
	bot := g.toScreen(physics.Vec2{X: d.HalfW32, Y: d.LightZoneBotY})

	rl.DrawRectangle(
		int32(top.X), int32(top.Y),
		int32(bot.X-top.X), int32(bot.Y-top.Y),
		rl.NewColor(255, 240, 160, 24),
	)
}

// drawWalls outlines the aquarium boundary.
func (g *Game) drawWalls() {
	d := &g.cfg.Derived
	topLeft := g.toScreen(physics.Vec2{X: -d.HalfW32, Y: d.HalfH32})
	botRight := g.toScreen(physics.Vec2{X: d.HalfW32, Y: -d.HalfH32})

	rl.DrawRectangleLines(
		int32(topLeft.X), int32(topLeft.Y),
		int32(botRight.X-topLeft.X), int32(botRight.Y-topLeft.Y),
		rl.NewColor(70, 110, 140, 255),
	)
}

// stateColor maps a behavior state to its display tint.
func stateColor(state components.State) rl.Color {
	switch state {
	case components.Resting:
		return rl.NewColor(110, 130, 220, 255)
	case components.SeekingFood:
		return rl.NewColor(240, 170, 70, 255)
	case components.Fleeing:
		return rl.NewColor(230, 80, 80, 255)
	case components.Wandering:
		return rl.NewColor(120, 210, 160, 255)
	default:
		return rl.NewColor(150, 150, 150, 255)
	}
}

// drawCreatures renders every creature as joint links plus segment circles.
func (g *Game) drawCreatures() {
	ppm := g.cfg.Derived.PPM32

	query := g.allFilter.Query()
	for query.Next() {
		ident, att, beh, seg := query.Get()

		color := stateColor(beh.State)

		// Dim toward gray as energy drains.
		if att.MaxEnergy > 0 {
			frac := att.Energy / att.MaxEnergy
			color.A = uint8(90 + frac*165)
		}

		// Joint links first so segments draw on top.
		for i := 1; i < len(seg.Bodies); i++ {
			a, ok := g.phys.Translation(seg.Bodies[i-1])
			if !ok {
				continue
			}
			b, ok := g.phys.Translation(seg.Bodies[i])
			if !ok {
				continue
			}
			rl.DrawLineV(g.toScreen(a), g.toScreen(b), rl.Fade(color, 0.5))
		}

		radius := seg.SegmentRadius * ppm
		for i, bh := range seg.Bodies {
			pos, ok := g.phys.Translation(bh)
			if !ok {
				continue
			}
			r := radius
			if i == 0 && ident.TypeName == components.TypeSnake {
				r = radius * 1.3 // head slightly larger
			}
			rl.DrawCircleV(g.toScreen(pos), r, color)
		}
	}
}

// drawHUD renders the stats overlay and the speed slider.
func (g *Game) drawHUD() {
	snakes, plankton := g.populationCounts()

	rl.DrawText(fmt.Sprintf("Tick: %d", g.tick), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Snakes: %d  Plankton: %d", snakes, plankton), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Speed: %dx  [</>]", g.speed), 10, 60, 20, rl.White)
	if g.paused {
		rl.DrawText("PAUSED [space] step [s]", 10, 85, 20, rl.Yellow)
	}

	newSpeed := gui.SliderBar(
		rl.Rectangle{X: 10, Y: g.cfg.Derived.ScreenH32 - 30, Width: 160, Height: 20},
		"1x", "10x",
		float32(g.speed), 1, 10,
	)
	g.speed = int(newSpeed)

	if gui.Button(rl.Rectangle{X: 180, Y: g.cfg.Derived.ScreenH32 - 30, Width: 80, Height: 20}, pauseLabel(g.paused)) {
		g.paused = !g.paused
	}
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

// populationCounts tallies creatures by species for the HUD.
func (g *Game) populationCounts() (snakes, plankton int) {
	query := g.allFilter.Query()
	for query.Next() {
		ident, _, _, _ := query.Get()
		switch ident.TypeName {
		case components.TypeSnake:
			snakes++
		case components.TypePlankton:
			plankton++
		}
	}
	return snakes, plankton
}
