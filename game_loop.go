package main

import (
	"log"
	"time"

	"slither-sim/game"
)

const (
	// TickRate drives the host loop; the simulation itself only sees dt
	TickRate = 30 // ticks per second

	// Viewport culling for the wire — the client only needs what it can see
	ViewportWidth  = 1536.0
	ViewportHeight = 864.0
	ViewportBuffer = 200.0

	// MaxWirePathPoints caps per-snake path points sent per state message;
	// longer paths are downsampled
	MaxWirePathPoints = 120
)

// GameLoop drives the simulation at a fixed cadence, feeding it wall-clock
// dt. The world clamps dt itself, so pauses (debugger, swap) are truncated
// rather than extrapolated.
type GameLoop struct {
	world *game.World
	conns *ConnManager
}

// NewGameLoop creates a game loop bound to world and conn manager.
func NewGameLoop(world *game.World, conns *ConnManager) *GameLoop {
	return &GameLoop{world: world, conns: conns}
}

// Run starts the loop. Blocks until process exits.
func (gl *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()
	log.Printf("game loop started at %d ticks/sec", TickRate)

	last := time.Now()
	for now := range ticker.C {
		dt := now.Sub(last).Seconds()
		last = now
		gl.tick(dt)
	}
}

// tick executes a single host frame: sample input, step the world, broadcast.
func (gl *GameLoop) tick(dt float64) {
	conn := gl.conns.Active()
	if conn != nil {
		if inp := conn.GetInput(); inp.Valid {
			gl.world.SetPlayerInput(inp.Angle, inp.Boost)
		}
	}

	events := gl.world.Step(dt)

	for _, d := range events.Deaths {
		log.Printf("snake %s died to %s (score %.0f)", d.Name, d.Killer, d.Score)
	}

	if conn == nil {
		return
	}
	if err := conn.Send(gl.buildState(events.Leaderboard)); err != nil {
		log.Printf("send error to %s: %v", conn.ID, err)
	}
	for _, d := range events.Deaths {
		if d.IsPlayer {
			_ = conn.Send(DeathMsg{Type: MsgDeath, Killer: d.Killer, Score: int(d.Score)})
		}
	}
}

// buildState snapshots the world into a viewport-culled state message.
func (gl *GameLoop) buildState(board []game.LeaderboardEntry) StateMsg {
	msg := StateMsg{
		Type:        MsgState,
		Snakes:      []SnakeDTO{},
		Food:        []FoodDTO{},
		PowerUps:    []PowerUpDTO{},
		Leaderboard: make([]LeaderboardEntry, len(board)),
	}
	for i, e := range board {
		msg.Leaderboard[i] = LeaderboardEntry{ID: e.ID, Name: e.Name, Score: e.Score}
	}

	player := gl.world.Player()
	if player == nil {
		return msg
	}

	halfW := ViewportWidth/2 + ViewportBuffer
	halfH := ViewportHeight/2 + ViewportBuffer
	cx, cy := player.Pos.X, player.Pos.Y

	inView := func(x, y float64) bool {
		return x >= cx-halfW && x <= cx+halfW && y >= cy-halfH && y <= cy+halfH
	}

	gl.world.ReadState(func(st *game.State) {
		for _, s := range st.Snakes {
			if !s.Alive && s != player {
				continue
			}
			visible := inView(s.Pos.X, s.Pos.Y)
			if !visible {
				for _, p := range s.Path {
					if inView(p.X, p.Y) {
						visible = true
						break
					}
				}
			}
			if visible {
				msg.Snakes = append(msg.Snakes, snakeToDTO(s))
			}
		}
		for _, f := range st.Food {
			if inView(f.Pos.X, f.Pos.Y) {
				msg.Food = append(msg.Food, FoodDTO{
					X: roundTo1(f.Pos.X), Y: roundTo1(f.Pos.Y),
					Value: f.Value, Radius: f.Radius, Color: f.Color,
				})
			}
		}
		for _, p := range st.PowerUps {
			if inView(p.Pos.X, p.Pos.Y) {
				msg.PowerUps = append(msg.PowerUps, PowerUpDTO{
					X: roundTo1(p.Pos.X), Y: roundTo1(p.Pos.Y),
					Multiplier: p.Multiplier, Radius: p.Radius,
				})
			}
		}
		for _, p := range st.Particles {
			if inView(p.Pos.X, p.Pos.Y) {
				msg.Particles = append(msg.Particles, ParticleDTO{
					X: roundTo1(p.Pos.X), Y: roundTo1(p.Pos.Y),
					Life: roundTo1(p.Life), Color: p.Color,
				})
			}
		}
	})

	return msg
}

// snakeToDTO flattens a snake for the wire, downsampling long paths.
func snakeToDTO(s *game.Snake) SnakeDTO {
	stride := 1
	if len(s.Path) > MaxWirePathPoints {
		stride = (len(s.Path) + MaxWirePathPoints - 1) / MaxWirePathPoints
	}
	pairs := make([][2]float64, 0, len(s.Path)/stride+1)
	for i := 0; i < len(s.Path); i += stride {
		pairs = append(pairs, [2]float64{roundTo1(s.Path[i].X), roundTo1(s.Path[i].Y)})
	}
	boostInt := 0
	if s.BoostRequested {
		boostInt = 1
	}
	multiplier := 0
	if s.Multiplier > 1 {
		multiplier = s.Multiplier
	}
	return SnakeDTO{
		ID:         s.ID,
		Name:       s.Name,
		Path:       pairs,
		Heading:    roundTo1(s.Angle),
		Color:      s.Color,
		Pattern:    s.Pattern,
		Score:      int(s.Score),
		Width:      roundTo1(s.Width),
		Boosting:   boostInt,
		Multiplier: multiplier,
	}
}
