package game

import (
	"math"
	"math/rand"
)

// Food is a consumable pellet. Immutable after creation except for removal.
type Food struct {
	Pos    Vec2
	Value  float64
	Radius float64
	Color  string
}

// PowerUp grants a temporary score multiplier on pickup.
type PowerUp struct {
	Pos        Vec2
	Multiplier int
	Radius     float64
}

// Particle is a purely cosmetic death-burst fragment. No collision role.
type Particle struct {
	Pos   Vec2
	Vel   Vec2
	Life  float64 // unit interval, decays over real time
	Color string
}

// newFood clamps value to the minimum and derives the pellet radius from it.
func newFood(cfg *Config, pos Vec2, value float64, color string) *Food {
	if value < cfg.MinFoodValue {
		value = cfg.MinFoodValue
	}
	return &Food{
		Pos:    pos,
		Value:  value,
		Radius: foodRadius(value),
		Color:  color,
	}
}

// foodRadius grows with value but stays bounded so huge pellets never dominate
// the collision pass.
func foodRadius(value float64) float64 {
	return math.Min(10.0, 3.0+value*1.5)
}

// randomFood places an ambient pellet uniformly inside the world disc.
// 90% are value 1, 10% value 3.
func randomFood(cfg *Config) *Food {
	pos := randomDiscPoint(cfg.WorldRadius)
	value := 1.0
	if rand.Float64() < 0.10 {
		value = 3.0
	}
	return newFood(cfg, pos, value, randomFrom(foodColors))
}

// randomPowerUp places a power-up uniformly inside the world disc, with its
// multiplier drawn from the configured tier table.
func randomPowerUp(cfg *Config) *PowerUp {
	return &PowerUp{
		Pos:        randomDiscPoint(cfg.WorldRadius - cfg.SpawnMargin),
		Multiplier: rollPowerUpTier(cfg.PowerUpTiers),
		Radius:     cfg.PowerUpRadius,
	}
}

// rollPowerUpTier samples the weighted tier table. Falls back to the first
// tier on a degenerate table so pickup always yields a multiplier.
func rollPowerUpTier(tiers []PowerUpTier) int {
	total := 0.0
	for _, t := range tiers {
		total += t.Weight
	}
	r := rand.Float64() * total
	for _, t := range tiers {
		r -= t.Weight
		if r < 0 {
			return t.Multiplier
		}
	}
	return tiers[0].Multiplier
}

// deathBurst spawns the cosmetic particle spray at a death position.
func deathBurst(cfg *Config, pos Vec2, color string) []Particle {
	particles := make([]Particle, cfg.DeathParticleCount)
	for i := range particles {
		angle := rand.Float64() * 2 * math.Pi
		speed := 60.0 + rand.Float64()*180.0
		particles[i] = Particle{
			Pos:   pos,
			Vel:   Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed},
			Life:  1.0,
			Color: color,
		}
	}
	return particles
}

// scatterFood converts a dead snake's mass into pellets sampled along its
// former path. Spacing between pellets tracks width, pellet value tracks
// width, and each pellet is jittered so drops don't stack into a line.
func scatterFood(cfg *Config, s *Snake) []*Food {
	if len(s.Path) == 0 {
		return nil
	}
	stride := int(s.Width / 8.0)
	if stride < 1 {
		stride = 1
	}
	value := s.Width * cfg.DeathFoodValueFactor
	food := make([]*Food, 0, len(s.Path)/stride+1)
	for i := 0; i < len(s.Path); i += stride {
		jitter := Vec2{
			(rand.Float64()*2 - 1) * cfg.DeathFoodJitter,
			(rand.Float64()*2 - 1) * cfg.DeathFoodJitter,
		}
		pos := clampToDisc(s.Path[i].Add(jitter), cfg.WorldRadius)
		food = append(food, newFood(cfg, pos, value, s.Color))
	}
	return food
}

// randomDiscPoint returns a uniformly random point inside the origin-centered
// disc of the given radius. Uses sqrt(r) for uniform area density.
func randomDiscPoint(radius float64) Vec2 {
	r := radius * math.Sqrt(rand.Float64())
	angle := rand.Float64() * 2 * math.Pi
	return Vec2{r * math.Cos(angle), r * math.Sin(angle)}
}

// clampToDisc projects a point back inside the world disc if it escaped.
func clampToDisc(p Vec2, radius float64) Vec2 {
	dist := p.Len()
	if dist <= radius {
		return p
	}
	scale := (radius - 1) / dist
	return p.Scale(scale)
}

var foodColors = []string{
	"#ff6b6b", "#ffd93d", "#6bcb77", "#4d96ff", "#ff922b",
	"#cc5de8", "#20c997", "#f06595", "#74c0fc", "#a9e34b",
}

func randomFrom(s []string) string {
	return s[rand.Intn(len(s))]
}
