package game

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Snake represents one serpentine competitor, player- or bot-controlled.
// Index 0 of Path is the newest stored head position.
type Snake struct {
	ID      string
	Name    string
	IsBot   bool
	Pos     Vec2    // head position
	Angle   float64 // radians, current heading
	Desired float64 // radians, heading the snake is turning toward
	Score   float64
	Width   float64
	Path    []Vec2
	Color   string // rendering passthrough
	Pattern string // rendering passthrough
	Alive   bool

	BoostRequested bool

	Multiplier      int
	MultiplierTimer float64 // seconds remaining on Multiplier

	// Bot scratch state. aiOffset staggers scan ticks across the population.
	aiOffset    int
	wanderTimer float64 // seconds until the next wander nudge
	boostTimer  float64 // seconds remaining of an intentional speed burst
}

// NewSnake creates a snake at a random position inside the circular world,
// keeping SpawnMargin px away from the boundary. The path is pre-filled
// backward along the spawn heading so the body exists from the first tick.
func NewSnake(cfg *Config, name, color, pattern string, isBot bool, score float64) *Snake {
	pos := randomDiscPoint(cfg.WorldRadius - cfg.SpawnMargin)
	angle := rand.Float64() * 2 * math.Pi

	s := &Snake{
		ID:         uuid.New().String(),
		Name:       name,
		IsBot:      isBot,
		Pos:        pos,
		Angle:      angle,
		Desired:    angle,
		Score:      math.Max(0, score),
		Color:      color,
		Pattern:    pattern,
		Alive:      true,
		Multiplier: 1,
		aiOffset:   rand.Intn(1 << 16),
	}
	s.Width = cfg.targetWidth(s.Score)

	spacing := s.pathSpacing(cfg)
	s.Path = make([]Vec2, cfg.InitialPathPoints)
	for i := range s.Path {
		d := float64(i) * spacing
		s.Path[i] = Vec2{
			X: pos.X - d*math.Cos(angle),
			Y: pos.Y - d*math.Sin(angle),
		}
	}
	return s
}

// ApplyInput sets the externally supplied steering signal for the next ticks.
func (s *Snake) ApplyInput(angle float64, boost bool) {
	s.Desired = angle
	s.BoostRequested = boost
}

// pathSpacing is the minimum distance between stored path points. Tying it to
// width decouples stored-point density from travel speed and keeps memory
// bounded as the snake grows.
func (s *Snake) pathSpacing(cfg *Config) float64 {
	return s.Width * cfg.PathSpacingFactor
}

// headRadius is the collision radius of the head.
func (s *Snake) headRadius() float64 {
	return s.Width / 2
}

// tail returns the oldest stored path point, or the head for an empty path.
func (s *Snake) tail() Vec2 {
	if len(s.Path) == 0 {
		return s.Pos
	}
	return s.Path[len(s.Path)-1]
}

// Update advances the snake one tick. dt is in seconds, pre-clamped by the
// caller. Returns a pellet shed from the tail while boosting, or nil; the
// orchestrator owns the food collection, so the drop is handed back rather
// than inserted here.
//
// On boundary crossing the snake is marked dead in place and the update
// returns early — path and width are left untouched for that tick.
func (s *Snake) Update(cfg *Config, dt float64) *Food {
	// Multiplier decay
	if s.Multiplier > 1 {
		s.MultiplierTimer -= dt
		if s.MultiplierTimer <= 0 {
			s.Multiplier = 1
			s.MultiplierTimer = 0
		}
	}

	// Turn toward desired heading, never overshooting within one tick.
	// Wider snakes turn slower.
	diff := normalizeAngle(s.Desired - s.Angle)
	maxTurn := cfg.BaseTurnSpeed * (30.0 / (s.Width + 10.0)) * dt
	s.Angle += clamp(diff, -maxTurn, maxTurn)

	// Speed selection. Boost is refused at or below the score floor so the
	// snake can never boost itself to zero.
	speed := cfg.BaseSpeed
	var dropped *Food
	if s.BoostRequested && s.Score > cfg.BoostMinScore {
		speed = cfg.BoostSpeed
		s.Score = math.Max(0, s.Score-cfg.BoostCostPerSec*dt)
		if rand.Float64() < cfg.BoostDropChance {
			dropped = newFood(cfg, s.tail(), cfg.BoostDropValue, s.Color)
		}
	}
	if s.IsBot && s.Width > cfg.LargeBotWidth {
		speed -= cfg.LargeBotSpeedPenalty
	}

	s.Pos.X += math.Cos(s.Angle) * speed * dt
	s.Pos.Y += math.Sin(s.Angle) * speed * dt

	// Circular boundary is death
	if s.Pos.Len() > cfg.WorldRadius {
		s.Alive = false
		return dropped
	}

	s.updatePath(cfg)

	// Width eases toward its score-derived target, never snapping
	s.Width += (cfg.targetWidth(s.Score) - s.Width) * cfg.WidthSmoothing

	return dropped
}

// updatePath pushes the head onto the stored path when it has moved far
// enough, then enforces both the hard point cap and the score-derived target
// body length.
func (s *Snake) updatePath(cfg *Config) {
	spacing := s.pathSpacing(cfg)

	if len(s.Path) == 0 || s.Pos.DistanceTo(s.Path[0]) > spacing {
		s.Path = append(s.Path, Vec2{})
		copy(s.Path[1:], s.Path)
		s.Path[0] = s.Pos
	}

	if len(s.Path) > cfg.MaxPathPoints {
		s.Path = s.Path[:cfg.MaxPathPoints]
	}

	// Approximate length as count*spacing; shed tail points while over the
	// target so high scores widen the snake far more than they lengthen it.
	target := cfg.targetBodyLength(s.Score)
	for len(s.Path) > 2 && float64(len(s.Path))*spacing > target {
		s.Path = s.Path[:len(s.Path)-1]
	}
}

// grantMultiplier applies a picked-up power-up.
func (s *Snake) grantMultiplier(cfg *Config, multiplier int) {
	s.Multiplier = multiplier
	s.MultiplierTimer = cfg.MultiplierDuration
}
