package game

import (
	"math"
	"math/rand"
)

// Bot steering. A bot re-evaluates its decision only on its scan ticks —
// (tick + aiOffset) % AIScanInterval == 0 — so aggregate AI cost stays flat
// as the population grows. Between scans the previously chosen heading and
// boost intent persist, and the shared kinematics in Snake.Update runs every
// tick regardless.

// updateBot advances timers and, on a scan tick, re-runs the steering policy.
func (w *World) updateBot(s *Snake, dt float64) {
	s.wanderTimer -= dt
	if s.boostTimer > 0 {
		s.boostTimer -= dt
	}

	if (w.tick+s.aiOffset)%w.cfg.AIScanInterval == 0 {
		w.botScan(s)
	}

	s.BoostRequested = s.boostTimer > 0
}

// botScan is one steering decision: boundary danger beats collision danger
// beats wandering. Danger of either kind forces a boost burst to accelerate
// out of the threat.
func (w *World) botScan(s *Snake) {
	cfg := w.cfg

	lookAhead := s.Width*4 + cfg.LookAheadMargin
	probe := Vec2{
		X: s.Pos.X + math.Cos(s.Angle)*lookAhead,
		Y: s.Pos.Y + math.Sin(s.Angle)*lookAhead,
	}

	danger := false
	if probe.Len() > cfg.WorldRadius-cfg.BoundarySafety {
		// About to run out of world: head straight back toward the origin
		danger = true
		s.Desired = math.Atan2(-s.Pos.Y, -s.Pos.X)
	} else {
		danger = w.probeCollision(s, probe)
	}

	if danger {
		s.boostTimer = cfg.BotBoostDuration
		s.wanderTimer = randomWanderInterval(&cfg)
		return
	}

	if s.wanderTimer <= 0 {
		s.Desired = normalizeAngle(s.Desired + (rand.Float64()*2-1)*cfg.WanderMaxDelta)
		s.wanderTimer = randomWanderInterval(&cfg)
	}
	// Intermittent speed bursts instead of continuous boosting
	if rand.Float64() < cfg.BotBoostChance {
		s.boostTimer = cfg.BotBoostDuration
	}
}

// probeCollision checks the forward probe point against nearby snake bodies
// via the grid. Paths are sampled at a stride that grows with the other
// snake's width, so the cost per neighbor is bounded no matter how long it
// is. On the first sampled point inside the combined half-widths the bot
// deflects perpendicular to its heading, away from the obstacle.
func (w *World) probeCollision(s *Snake, probe Vec2) bool {
	for _, other := range w.grid.QueryAround(probe.X, probe.Y, w.cfg.CollisionSearchRadius) {
		if other == s || !other.Alive {
			continue
		}
		stride := pathStride(other.Width)
		for i := 0; i < len(other.Path); i += stride {
			pt := other.Path[i]
			if probe.DistanceTo(pt) < s.headRadius()+other.Width/2 {
				side := normalizeAngle(s.Pos.angleTo(pt) - s.Angle)
				if side >= 0 {
					s.Desired = normalizeAngle(s.Angle - math.Pi/2)
				} else {
					s.Desired = normalizeAngle(s.Angle + math.Pi/2)
				}
				return true
			}
		}
	}
	return false
}

// pathStride is the sampling step used when walking another snake's path.
// Wider snakes have proportionally sparser stored points of interest, so
// collision and sensing checks skip more of them.
func pathStride(width float64) int {
	return 1 + int(width/12.0)
}

// randomWanderInterval returns a duration in the configured wander band.
func randomWanderInterval(cfg *Config) float64 {
	return cfg.WanderIntervalMin + rand.Float64()*(cfg.WanderIntervalMax-cfg.WanderIntervalMin)
}
