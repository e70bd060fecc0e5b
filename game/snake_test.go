package game

import (
	"math"
	"testing"
)

// testSnake builds a deterministic snake at the origin heading +x.
func testSnake(width, score float64) *Snake {
	return &Snake{
		Pos:        Vec2{},
		Angle:      0,
		Desired:    0,
		Width:      width,
		Score:      score,
		Alive:      true,
		Multiplier: 1,
	}
}

func TestStraightTranslation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseSpeed = 450
	cfg.WorldRadius = 100000

	s := testSnake(40, 50)
	s.Update(&cfg, 1.0)

	if math.Abs(s.Pos.X-450) > 1e-9 || math.Abs(s.Pos.Y) > 1e-9 {
		t.Fatalf("head at (%f,%f), want (450,0)", s.Pos.X, s.Pos.Y)
	}
}

func TestWidthLawScenario(t *testing.T) {
	cfg := DefaultConfig()
	// 15 + log10(100)*25 = 65
	if w := cfg.targetWidth(100); math.Abs(w-65) > 1e-9 {
		t.Fatalf("targetWidth(100) = %f, want 65", w)
	}
}

func TestWidthLawFloorAndCap(t *testing.T) {
	cfg := DefaultConfig()
	// Scores below 10 are treated as 10 by the log law
	if w0, w1 := cfg.targetWidth(0), cfg.targetWidth(10); w0 != w1 {
		t.Fatalf("targetWidth(0)=%f != targetWidth(10)=%f", w0, w1)
	}
	if w := cfg.targetWidth(1e12); w != cfg.WidthCap {
		t.Fatalf("targetWidth at extreme score = %f, want cap %f", w, cfg.WidthCap)
	}
}

func TestWidthTargetMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	prev := cfg.targetWidth(0)
	for score := 10.0; score < 1e7; score *= 3 {
		w := cfg.targetWidth(score)
		if w < prev {
			t.Fatalf("target width decreased: %f -> %f at score %f", prev, w, score)
		}
		prev = w
	}
}

func TestWidthConvergesWithoutOvershoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9

	s := testSnake(40, 100)
	target := cfg.targetWidth(100) // 65
	prev := s.Width
	for i := 0; i < 200; i++ {
		s.Update(&cfg, 0.02)
		if s.Width < prev-1e-9 {
			t.Fatalf("width shrank while below target: %f -> %f", prev, s.Width)
		}
		if s.Width > target+1e-9 {
			t.Fatalf("width overshot target: %f > %f", s.Width, target)
		}
		prev = s.Width
	}
	if target-s.Width > 0.5 {
		t.Fatalf("width failed to converge: %f, target %f", s.Width, target)
	}
}

func TestPathNeverExceedsCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9
	cfg.MaxPathPoints = 30
	cfg.BaseBodyLength = 1e9 // length law must not mask the hard cap here

	s := testSnake(15, 10)
	for i := 0; i < 2000; i++ {
		s.Update(&cfg, 0.03)
		if len(s.Path) > cfg.MaxPathPoints {
			t.Fatalf("path length %d exceeds cap %d at tick %d", len(s.Path), cfg.MaxPathPoints, i)
		}
	}
}

func TestPathPointSpacing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9

	s := testSnake(40, 100)
	for i := 0; i < 100; i++ {
		s.Update(&cfg, 0.01)
	}
	spacing := s.pathSpacing(&cfg)
	if len(s.Path) < 3 {
		t.Fatalf("expected stored path points, got %d", len(s.Path))
	}
	// Newest points were pushed under the adaptive threshold
	if d := s.Path[0].DistanceTo(s.Path[1]); d < spacing*0.9 {
		t.Fatalf("stored points too dense: %f, spacing %f", d, spacing)
	}
}

func TestBodyLengthSaturates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9
	cfg.BaseBodyLength = 120
	cfg.BodyLengthPerScore = 0

	s := testSnake(15, 10)
	for i := 0; i < 1000; i++ {
		s.Update(&cfg, 0.03)
	}
	spacing := s.pathSpacing(&cfg)
	approxLen := float64(len(s.Path)) * spacing
	if approxLen > cfg.BaseBodyLength+spacing {
		t.Fatalf("body length %f exceeds saturated target %f", approxLen, cfg.BaseBodyLength)
	}
}

func TestBoostDrainClampsScoreAtZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9
	cfg.BoostDropChance = 0

	s := testSnake(40, cfg.BoostMinScore+0.1)
	s.BoostRequested = true
	s.Update(&cfg, 1.0) // drain exceeds remaining score

	if s.Score != 0 {
		t.Fatalf("score after over-drain = %f, want 0", s.Score)
	}
	if math.Abs(s.Pos.X-cfg.BoostSpeed) > 1e-9 {
		t.Fatalf("boosted displacement = %f, want %f", s.Pos.X, cfg.BoostSpeed)
	}
}

func TestBoostRefusedAtFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9
	cfg.BoostDropChance = 0

	s := testSnake(40, cfg.BoostMinScore)
	s.BoostRequested = true
	s.Update(&cfg, 1.0)

	if s.Score != cfg.BoostMinScore {
		t.Fatalf("score drained despite refused boost: %f", s.Score)
	}
	if math.Abs(s.Pos.X-cfg.BaseSpeed) > 1e-9 {
		t.Fatalf("displacement = %f, want base speed %f", s.Pos.X, cfg.BaseSpeed)
	}
}

func TestBoostShedsTailPellet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9
	cfg.BoostDropChance = 1.0

	s := testSnake(40, 500)
	s.Path = []Vec2{{0, 0}, {-20, 0}, {-40, 0}}
	s.BoostRequested = true
	tail := s.tail()

	dropped := s.Update(&cfg, 0.02)
	if dropped == nil {
		t.Fatalf("expected a shed pellet with drop chance 1")
	}
	if dropped.Value != cfg.BoostDropValue {
		t.Fatalf("pellet value = %f, want %f", dropped.Value, cfg.BoostDropValue)
	}
	if dropped.Pos != tail {
		t.Fatalf("pellet at %v, want tail %v", dropped.Pos, tail)
	}
}

func TestMultiplierResetsExactlyAtZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9

	s := testSnake(40, 100)
	s.Multiplier = 5
	s.MultiplierTimer = 0.04

	s.Update(&cfg, 0.05)
	if s.Multiplier != 1 {
		t.Fatalf("multiplier = %d after timer expiry, want 1", s.Multiplier)
	}
	if s.MultiplierTimer != 0 {
		t.Fatalf("multiplier timer = %f after expiry, want 0", s.MultiplierTimer)
	}
}

func TestMultiplierPersistsWhileTimerRuns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9

	s := testSnake(40, 100)
	s.Multiplier = 5
	s.MultiplierTimer = 1.0

	s.Update(&cfg, 0.1)
	if s.Multiplier != 5 {
		t.Fatalf("multiplier = %d with timer running, want 5", s.Multiplier)
	}
	if math.Abs(s.MultiplierTimer-0.9) > 1e-9 {
		t.Fatalf("multiplier timer = %f, want 0.9", s.MultiplierTimer)
	}
}

func TestBoundaryDeathSameTick(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 500

	s := testSnake(40, 100)
	s.Pos = Vec2{495, 0}
	s.Path = []Vec2{{495, 0}, {480, 0}}
	pathLen := len(s.Path)
	widthBefore := s.Width

	s.Update(&cfg, 0.1) // base speed carries the head past the boundary

	if s.Alive {
		t.Fatalf("snake alive after crossing boundary")
	}
	// Translation is not undone, but path and width mutation are skipped
	if s.Pos.X <= cfg.WorldRadius {
		t.Fatalf("head position was not advanced across the boundary: %f", s.Pos.X)
	}
	if len(s.Path) != pathLen || s.Path[0] != (Vec2{495, 0}) {
		t.Fatalf("path mutated on the death tick")
	}
	if s.Width != widthBefore {
		t.Fatalf("width mutated on the death tick")
	}
}

func TestTurnClampsWithoutOvershoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9

	s := testSnake(40, 100)
	s.Desired = 0.01
	s.Update(&cfg, 0.1)

	if math.Abs(s.Angle-0.01) > 1e-9 {
		t.Fatalf("angle = %f, want exactly desired 0.01", s.Angle)
	}
}

func TestWiderSnakeTurnsSlower(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9

	thin := testSnake(15, 10)
	wide := testSnake(130, 1e6)
	thin.Desired = math.Pi / 2
	wide.Desired = math.Pi / 2

	thin.Update(&cfg, 0.05)
	wide.Update(&cfg, 0.05)

	if thin.Angle <= wide.Angle {
		t.Fatalf("thin turned %f, wide turned %f; wide should turn slower", thin.Angle, wide.Angle)
	}
}

func TestLargeBotSpeedPenalty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldRadius = 1e9

	bot := testSnake(cfg.LargeBotWidth+1, 1e6)
	bot.IsBot = true
	bot.Update(&cfg, 1.0)

	want := cfg.BaseSpeed - cfg.LargeBotSpeedPenalty
	if math.Abs(bot.Pos.X-want) > 1e-9 {
		t.Fatalf("large bot displacement = %f, want %f", bot.Pos.X, want)
	}

	player := testSnake(cfg.LargeBotWidth+1, 1e6)
	player.Update(&cfg, 1.0)
	if math.Abs(player.Pos.X-cfg.BaseSpeed) > 1e-9 {
		t.Fatalf("player displacement = %f, penalty must not apply", player.Pos.X)
	}
}

func TestNewSnakeSpawn(t *testing.T) {
	cfg := DefaultConfig()
	for i := 0; i < 20; i++ {
		s := NewSnake(&cfg, "test", "#fff", "solid", true, cfg.InitialScore)
		if d := s.Pos.Len(); d > cfg.WorldRadius-cfg.SpawnMargin {
			t.Fatalf("spawned at distance %f, outside margin", d)
		}
		if len(s.Path) != cfg.InitialPathPoints {
			t.Fatalf("prefilled path has %d points, want %d", len(s.Path), cfg.InitialPathPoints)
		}
		if s.Path[0] != s.Pos {
			t.Fatalf("newest path point must be the head")
		}
		// Prefill runs backward along the spawn heading
		d01 := s.Pos.DistanceTo(s.Path[1])
		dLast := s.Pos.DistanceTo(s.Path[len(s.Path)-1])
		if dLast <= d01 {
			t.Fatalf("path prefill not ordered backward from head")
		}
	}
}
