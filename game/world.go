package game

import (
	"math/rand"
	"sort"
	"sync"
)

// State is the authoritative simulation state: every top-level collection the
// orchestrator owns. Subordinate routines receive agents by reference and may
// mutate agent-internal fields, but additions and removals to these slices
// happen only in World's own tick phases.
type State struct {
	Tick      int
	Snakes    []*Snake
	Food      []*Food
	PowerUps  []*PowerUp
	Particles []Particle
}

// DeathEvent records one elimination for the host layer to log and surface.
type DeathEvent struct {
	Name     string
	Killer   string // killer's name, or "Boundary"
	Score    float64
	IsPlayer bool
}

// LeaderboardEntry is one row of the top-N ranking.
type LeaderboardEntry struct {
	ID    string
	Name  string
	Score int
}

// TickEvents is what one Step hands back to the host.
type TickEvents struct {
	Deaths      []DeathEvent
	Leaderboard []LeaderboardEntry
}

// World owns all simulation state and drives the per-tick pipeline.
// Step, Reset and SetPlayerInput may be called from different goroutines;
// the internal lock serializes them. Within a tick everything is a single
// synchronous pass with no suspension points.
type World struct {
	mu    sync.RWMutex
	cfg   Config
	state State
	grid  *SpatialGrid

	player     *Snake // nil until Reset
	inputAngle float64
	inputBoost bool
	hasInput   bool

	tick           int
	botNameCounter int
}

// NewWorld initializes the world with its full bot population and food.
func NewWorld(cfg Config) *World {
	w := &World{
		cfg:  cfg,
		grid: NewSpatialGrid(cfg.GridCellSize),
	}
	for i := 0; i < cfg.BotCount; i++ {
		w.state.Snakes = append(w.state.Snakes, w.newBot())
	}
	for i := 0; i < cfg.TargetFoodCount; i++ {
		w.state.Food = append(w.state.Food, randomFood(&w.cfg))
	}
	return w
}

// Config returns the fixed configuration this world was built with.
func (w *World) Config() Config {
	return w.cfg
}

// Reset re-initializes the full simulation with a fresh bot population and a
// player snake carrying the given label and starting score.
func (w *World) Reset(playerName string, startScore float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = State{}
	w.tick = 0
	w.hasInput = false

	w.player = NewSnake(&w.cfg, playerName,
		randomFrom(w.cfg.Colors), randomFrom(w.cfg.Patterns), false, startScore)
	w.state.Snakes = append(w.state.Snakes, w.player)

	for i := 0; i < w.cfg.BotCount; i++ {
		w.state.Snakes = append(w.state.Snakes, w.newBot())
	}
	for i := 0; i < w.cfg.TargetFoodCount; i++ {
		w.state.Food = append(w.state.Food, randomFood(&w.cfg))
	}
}

// SetPlayerInput records the latest steering signal for the player snake.
// Applied at the start of the next tick.
func (w *World) SetPlayerInput(angle float64, boost bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inputAngle = angle
	w.inputBoost = boost
	w.hasInput = true
}

// Player returns the current player snake, or nil before the first Reset.
func (w *World) Player() *Snake {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.player
}

// ReadState runs fn against the live state under the read lock. fn must not
// retain references past its return or mutate anything.
func (w *World) ReadState(fn func(*State)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(&w.state)
}

// Step advances the simulation by dt seconds (clamped to MaxDeltaTime —
// long host pauses are truncated, never extrapolated).
//
// Pipeline: rebuild grid → apply player input → update agents (bots decide
// first, shared kinematics for all) → food and power-up pickup → snake-vs-
// snake collisions → particle decay → compact the dead → refill populations.
func (w *World) Step(dt float64) TickEvents {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dt <= 0 {
		return TickEvents{Leaderboard: w.leaderboard()}
	}
	if dt > w.cfg.MaxDeltaTime {
		dt = w.cfg.MaxDeltaTime
	}
	w.tick++
	w.state.Tick = w.tick

	// Pre-tick snapshot of live heads; all sensing and collision queries this
	// tick run against it.
	w.grid.Clear()
	for _, s := range w.state.Snakes {
		if s.Alive {
			w.grid.Insert(s)
		}
	}

	if w.player != nil && w.player.Alive && w.hasInput {
		w.player.ApplyInput(w.inputAngle, w.inputBoost)
	}

	var events TickEvents

	// Agent updates. Boost drops are handed back by the snakes and appended
	// here so only the orchestrator ever resizes the food collection.
	var drops []*Food
	for _, s := range w.state.Snakes {
		if !s.Alive {
			continue
		}
		if s.IsBot {
			w.updateBot(s, dt)
		}
		if f := s.Update(&w.cfg, dt); f != nil {
			drops = append(drops, f)
		}
		if !s.Alive {
			events.Deaths = append(events.Deaths, w.killEffects(s, "Boundary"))
		}
	}
	w.state.Food = append(w.state.Food, drops...)

	w.resolveFood()
	w.resolvePowerUps()
	w.resolveCollisions(&events)

	w.updateParticles(dt)
	w.compactDead()
	w.replenish()

	events.Leaderboard = w.leaderboard()
	return events
}

// resolveFood feeds every live snake. Brute force over the full food set per
// snake, gated by a cheap axis-aligned rejection before the exact circle
// test; food is the big set, snakes the small multiplier.
// Consumed items are nilled in place and compacted after the pass.
func (w *World) resolveFood() {
	removed := false
	for _, s := range w.state.Snakes {
		if !s.Alive {
			continue
		}
		for i, f := range w.state.Food {
			if f == nil {
				continue
			}
			reach := s.Width + f.Radius
			dx := f.Pos.X - s.Pos.X
			dy := f.Pos.Y - s.Pos.Y
			if dx > reach || dx < -reach || dy > reach || dy < -reach {
				continue
			}
			if s.Pos.DistanceTo(f.Pos) < s.headRadius()+f.Radius {
				s.Score += f.Value * float64(s.Multiplier) * w.cfg.FoodScoreScale
				w.state.Food[i] = nil
				removed = true
			}
		}
	}
	if removed {
		kept := w.state.Food[:0]
		for _, f := range w.state.Food {
			if f != nil {
				kept = append(kept, f)
			}
		}
		w.state.Food = kept
	}
}

// resolvePowerUps runs the circular pickup test against the small capped
// power-up set. Pickup sets the snake's multiplier and restarts its timer.
func (w *World) resolvePowerUps() {
	removed := false
	for _, s := range w.state.Snakes {
		if !s.Alive {
			continue
		}
		for i, p := range w.state.PowerUps {
			if p == nil {
				continue
			}
			if s.Pos.DistanceTo(p.Pos) < s.headRadius()+p.Radius {
				s.grantMultiplier(&w.cfg, p.Multiplier)
				w.state.PowerUps[i] = nil
				removed = true
			}
		}
	}
	if removed {
		kept := w.state.PowerUps[:0]
		for _, p := range w.state.PowerUps {
			if p != nil {
				kept = append(kept, p)
			}
		}
		w.state.PowerUps = kept
	}
}

// resolveCollisions runs the head-vs-body check for every live snake against
// its grid neighborhood. Only the querying head-owner can die here — bodies
// are not mutually lethal — and scanning stops at its first hit. Victims are
// marked dead in place; removal happens in compactDead.
func (w *World) resolveCollisions(events *TickEvents) {
	for _, s := range w.state.Snakes {
		if !s.Alive {
			continue
		}
		hit := false
		for _, other := range w.grid.QueryAround(s.Pos.X, s.Pos.Y, w.cfg.CollisionSearchRadius) {
			if other == s || !other.Alive {
				continue
			}
			stride := pathStride(other.Width)
			for i := 0; i < len(other.Path); i += stride {
				if s.Pos.DistanceTo(other.Path[i]) < s.headRadius()+other.Width/2 {
					s.Alive = false
					events.Deaths = append(events.Deaths, w.killEffects(s, other.Name))
					hit = true
					break
				}
			}
			if hit {
				break
			}
		}
	}
}

// killEffects emits the death burst and scatters the dead snake's mass as
// food along its former path.
func (w *World) killEffects(s *Snake, killer string) DeathEvent {
	w.state.Particles = append(w.state.Particles, deathBurst(&w.cfg, s.Pos, s.Color)...)
	w.state.Food = append(w.state.Food, scatterFood(&w.cfg, s)...)
	return DeathEvent{
		Name:     s.Name,
		Killer:   killer,
		Score:    s.Score,
		IsPlayer: s == w.player,
	}
}

// updateParticles integrates particle motion and decays lifetimes, dropping
// expired ones in place.
func (w *World) updateParticles(dt float64) {
	kept := w.state.Particles[:0]
	for _, p := range w.state.Particles {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Life -= w.cfg.ParticleDecayPerSec * dt
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	w.state.Particles = kept
}

// compactDead sweeps dead bots out of the live collection. The dead player
// stays listed so the host can keep showing the terminal state until a reset.
func (w *World) compactDead() {
	kept := w.state.Snakes[:0]
	for _, s := range w.state.Snakes {
		if s.Alive || s == w.player {
			kept = append(kept, s)
		}
	}
	w.state.Snakes = kept
}

// replenish tops populations back up to their targets: missing bots are
// respawned immediately, food refills up to the per-tick cap, and power-ups
// appear opportunistically while below their cap.
func (w *World) replenish() {
	bots := 0
	for _, s := range w.state.Snakes {
		if s.IsBot {
			bots++
		}
	}
	for ; bots < w.cfg.BotCount; bots++ {
		w.state.Snakes = append(w.state.Snakes, w.newBot())
	}

	deficit := w.cfg.TargetFoodCount - len(w.state.Food)
	if deficit > w.cfg.FoodSpawnPerTick {
		deficit = w.cfg.FoodSpawnPerTick
	}
	for i := 0; i < deficit; i++ {
		w.state.Food = append(w.state.Food, randomFood(&w.cfg))
	}

	if len(w.state.PowerUps) < w.cfg.MaxPowerUps && rand.Float64() < w.cfg.PowerUpSpawnChance {
		w.state.PowerUps = append(w.state.PowerUps, randomPowerUp(&w.cfg))
	}
}

// newBot creates a bot snake with the next name from the injected pool.
func (w *World) newBot() *Snake {
	name := w.cfg.BotNames[w.botNameCounter%len(w.cfg.BotNames)]
	w.botNameCounter++
	return NewSnake(&w.cfg, name,
		randomFrom(w.cfg.Colors), randomFrom(w.cfg.Patterns), true, w.cfg.InitialScore)
}

// leaderboard returns the top N live snakes by score. Caller holds the lock.
func (w *World) leaderboard() []LeaderboardEntry {
	alive := make([]*Snake, 0, len(w.state.Snakes))
	for _, s := range w.state.Snakes {
		if s.Alive {
			alive = append(alive, s)
		}
	}
	sort.Slice(alive, func(i, j int) bool {
		return alive[i].Score > alive[j].Score
	})
	if len(alive) > w.cfg.LeaderboardSize {
		alive = alive[:w.cfg.LeaderboardSize]
	}
	entries := make([]LeaderboardEntry, len(alive))
	for i, s := range alive {
		entries[i] = LeaderboardEntry{ID: s.ID, Name: s.Name, Score: int(s.Score)}
	}
	return entries
}
