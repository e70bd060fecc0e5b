package game

import "math"

// PowerUpTier is one row of the multiplier distribution table.
type PowerUpTier struct {
	Multiplier int
	Weight     float64 // relative probability, weights need not sum to 1
}

// Config holds every tunable of the simulation. Fixed at World construction,
// never mutated at runtime.
type Config struct {
	// World — circular map centered on the origin. Boundary is death (not wrap).
	WorldRadius float64
	// SpawnMargin keeps snakes away from the circular boundary on spawn
	SpawnMargin float64
	// MaxDeltaTime clamps dt so frame hitches cannot destabilize the integration
	MaxDeltaTime float64

	// Population
	BotCount        int
	TargetFoodCount int
	// FoodSpawnPerTick caps refill rate so a mass die-off repopulates gradually
	FoodSpawnPerTick int
	MaxPowerUps      int
	// PowerUpSpawnChance is the per-tick probability of spawning one power-up
	// while below MaxPowerUps
	PowerUpSpawnChance float64
	PowerUpRadius      float64
	// MultiplierDuration is how long a picked-up multiplier lasts, seconds
	MultiplierDuration float64
	PowerUpTiers       []PowerUpTier

	// Snake kinematics
	BaseSpeed  float64 // px/sec
	BoostSpeed float64 // px/sec while boosting
	// BaseTurnSpeed in rad/sec at reference width; effective turn rate is
	// BaseTurnSpeed * 30 / (width + 10), so wide snakes arc slower
	BaseTurnSpeed float64
	// BoostMinScore: boosting is refused at or below this score
	BoostMinScore float64
	BoostCostPerSec float64
	// BoostDropChance is the per-tick probability of shedding a tail pellet
	// while boosting
	BoostDropChance float64
	BoostDropValue  float64
	// Bots wider than LargeBotWidth lose LargeBotSpeedPenalty px/sec
	LargeBotWidth        float64
	LargeBotSpeedPenalty float64

	// Width law: width = min(WidthCap, MinWidth + log10(max(10,score)) * WidthGrowthFactor)
	MinWidth          float64
	WidthGrowthFactor float64
	WidthCap          float64
	// WidthSmoothing is the fraction of the width gap closed per tick
	WidthSmoothing float64

	// Path — stored head history, newest first
	MaxPathPoints int
	// PathSpacingFactor: minimum distance between stored points = width * factor
	PathSpacingFactor float64
	// Target body length saturates: min(MaxBodyLength, BaseBodyLength + score * BodyLengthPerScore)
	BaseBodyLength    float64
	BodyLengthPerScore float64
	MaxBodyLength     float64
	InitialPathPoints int

	// Scoring
	InitialScore float64
	// FoodScoreScale converts food value into score: value * multiplier * scale
	FoodScoreScale float64
	MinFoodValue   float64

	// Spatial grid
	GridCellSize float64
	// CollisionSearchRadius bounds the grid neighborhood queried around each
	// head for snake-vs-snake checks
	CollisionSearchRadius float64

	// Bot AI
	// AIScanInterval: each bot re-decides only every Nth tick, staggered by id
	AIScanInterval int
	// LookAheadMargin: probe distance = width*4 + margin
	LookAheadMargin float64
	// BoundarySafety: probe past WorldRadius - BoundarySafety flags boundary danger
	BoundarySafety float64
	// Wander nudge interval band, seconds
	WanderIntervalMin float64
	WanderIntervalMax float64
	// WanderMaxDelta bounds a single wander heading nudge, radians
	WanderMaxDelta float64
	// BotBoostChance: per-scan probability of an intentional speed burst
	BotBoostChance   float64
	BotBoostDuration float64 // seconds a burst lasts

	// Death effects
	DeathParticleCount int
	// DeathFoodValueFactor: scattered pellet value = width * factor
	DeathFoodValueFactor float64
	// DeathFoodJitter: pellet scatter radius around sampled path points, px
	DeathFoodJitter float64
	ParticleDecayPerSec float64

	// Leaderboard
	LeaderboardSize int

	// Injected data tables (rendering passthrough)
	BotNames []string
	Colors   []string
	Patterns []string
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		WorldRadius:  4000.0,
		SpawnMargin:  400.0,
		MaxDeltaTime: 0.05,

		BotCount:           150,
		TargetFoodCount:    3000,
		FoodSpawnPerTick:   50,
		MaxPowerUps:        12,
		PowerUpSpawnChance: 0.01,
		PowerUpRadius:      14.0,
		MultiplierDuration: 10.0,
		PowerUpTiers: []PowerUpTier{
			{Multiplier: 2, Weight: 0.6},
			{Multiplier: 5, Weight: 0.3},
			{Multiplier: 10, Weight: 0.1},
		},

		BaseSpeed:            200.0,
		BoostSpeed:           450.0,
		BaseTurnSpeed:        4.0,
		BoostMinScore:        10.0,
		BoostCostPerSec:      15.0,
		BoostDropChance:      0.05,
		BoostDropValue:       0.5,
		LargeBotWidth:        100.0,
		LargeBotSpeedPenalty: 60.0,

		MinWidth:          15.0,
		WidthGrowthFactor: 25.0,
		WidthCap:          130.0,
		WidthSmoothing:    0.1,

		MaxPathPoints:      800,
		PathSpacingFactor:  0.35,
		BaseBodyLength:     200.0,
		BodyLengthPerScore: 0.5,
		MaxBodyLength:      4000.0,
		InitialPathPoints:  20,

		InitialScore:   10.0,
		FoodScoreScale: 10.0,
		MinFoodValue:   0.5,

		GridCellSize:          150.0,
		CollisionSearchRadius: 160.0,

		AIScanInterval:    5,
		LookAheadMargin:   60.0,
		BoundarySafety:    200.0,
		WanderIntervalMin: 1.5,
		WanderIntervalMax: 3.5,
		WanderMaxDelta:    1.0,
		BotBoostChance:    0.03,
		BotBoostDuration:  1.5,

		DeathParticleCount:   24,
		DeathFoodValueFactor: 0.1,
		DeathFoodJitter:      18.0,
		ParticleDecayPerSec:  1.2,

		LeaderboardSize: 10,

		BotNames: []string{
			"Viper", "Cobra", "Mamba", "Python", "Anaconda",
			"Sidewinder", "Taipan", "Krait", "Boomslang", "Adder",
			"Copperhead", "Rattler", "Moccasin", "Coral", "Boa",
			"Asp", "Habu", "Fer-de-lance", "Bushmaster", "Kingsnake",
		},
		Colors: []string{
			"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6",
			"#1abc9c", "#e67e22", "#e91e63", "#00bcd4", "#8bc34a",
			"#ff5722", "#607d8b", "#795548", "#673ab7", "#03a9f4",
			"#4caf50", "#ffeb3b", "#ff9800", "#f44336", "#9c27b0",
		},
		Patterns: []string{"solid", "striped", "banded", "spotted"},
	}
}

// targetWidth applies the logarithmic width law for a given score.
func (c *Config) targetWidth(score float64) float64 {
	w := c.MinWidth + math.Log10(math.Max(10, score))*c.WidthGrowthFactor
	return math.Min(c.WidthCap, w)
}

// targetBodyLength is the saturating score-to-length law.
func (c *Config) targetBodyLength(score float64) float64 {
	return math.Min(c.MaxBodyLength, c.BaseBodyLength+score*c.BodyLengthPerScore)
}
